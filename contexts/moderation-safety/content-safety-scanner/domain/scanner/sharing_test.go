package scanner

import (
	"testing"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
)

func TestShouldGateFileSharingBeforePayment(t *testing.T) {
	s := newTestScanner()
	decision := s.ShouldGateFileSharing("contract.pdf", "application/pdf", entities.FileContext{OfferStatus: entities.OfferStatusPending})
	if !decision.ShouldGate || !decision.RequiresApproval || decision.RiskScore != 3 {
		t.Fatalf("expected gated document before payment, got %+v", decision)
	}
	if decision.MaxFileSizeBytes != 10*1024*1024 || len(decision.AllowedMimeTypes) != 7 {
		t.Fatalf("expected allow-list and size cap, got %+v", decision)
	}
}

func TestShouldGateFileSharingAfterPayment(t *testing.T) {
	s := newTestScanner()
	decision := s.ShouldGateFileSharing("contract.pdf", "application/pdf", entities.FileContext{OfferStatus: entities.OfferStatusPaidEscrow})
	if decision.ShouldGate || decision.RiskScore != 1 || decision.RiskLevel != entities.RiskLow {
		t.Fatalf("expected low risk document after payment, got %+v", decision)
	}

	decision = s.ShouldGateFileSharing("my_contact_details.docx", "", entities.FileContext{OfferStatus: entities.OfferStatusInProgress})
	if !decision.ShouldGate || !decision.RequiresApproval || decision.RiskScore != 3 {
		t.Fatalf("expected keyword document to require approval, got %+v", decision)
	}

	decision = s.ShouldGateFileSharing("draft-cut.mp4", "video/mp4", entities.FileContext{OfferStatus: entities.OfferStatusInProgress})
	if decision.ShouldGate || decision.RiskScore != 0 {
		t.Fatalf("expected media after payment to pass, got %+v", decision)
	}
}

func TestShouldGateFileSharingTreatsUnknownStatusAsUnsecured(t *testing.T) {
	s := newTestScanner()
	for _, status := range []string{"no_payment", "draft", "mystery", ""} {
		decision := s.ShouldGateFileSharing("photo.png", "image/png", entities.FileContext{OfferStatus: entities.ParseOfferStatus(status)})
		if !decision.ShouldGate {
			t.Fatalf("status %q: expected file to be gated", status)
		}
	}
}

func TestValidateExternalLink(t *testing.T) {
	s := newTestScanner()
	pending := entities.LinkContext{OfferStatus: entities.OfferStatusPending}
	secured := entities.LinkContext{OfferStatus: entities.OfferStatusPaidEscrow}

	cases := []struct {
		name   string
		url    string
		ctx    entities.LinkContext
		valid  bool
		risk   entities.RiskLevel
		review bool
	}{
		{name: "blocked after payment", url: "https://wa.me/60123456789", ctx: secured, valid: false, risk: entities.RiskCritical},
		{name: "blocked subdomain", url: "https://us02web.zoom.us/j/123", ctx: secured, valid: false, risk: entities.RiskCritical},
		{name: "blocked google meet", url: "https://meet.google.com/abc", ctx: secured, valid: false, risk: entities.RiskCritical},
		{name: "allowed tool before payment", url: "https://docs.google.com/document/d/1", ctx: pending, valid: true, risk: entities.RiskLow},
		{name: "allowed www prefix", url: "https://www.dropbox.com/s/x", ctx: pending, valid: true, risk: entities.RiskLow},
		{name: "other before payment", url: "https://portfolio.example.com", ctx: pending, valid: false, risk: entities.RiskMedium, review: true},
		{name: "other after payment", url: "https://portfolio.example.com", ctx: secured, valid: true, risk: entities.RiskMedium, review: true},
		{name: "non http scheme", url: "ftp://files.example.com", ctx: secured, valid: false, risk: entities.RiskLow},
		{name: "missing host", url: "example.com/path", ctx: secured, valid: false, risk: entities.RiskLow},
		{name: "unparseable", url: "http://[::1", ctx: secured, valid: false, risk: entities.RiskLow},
	}
	for _, tc := range cases {
		got := s.ValidateExternalLink(tc.url, tc.ctx)
		if got.IsValid != tc.valid || got.RiskLevel != tc.risk || got.RequiresReview != tc.review {
			t.Fatalf("%s: unexpected validation %+v", tc.name, got)
		}
	}
}
