package scanner

import (
	"errors"
	"testing"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	domainerrors "creatorhub/contexts/moderation-safety/content-safety-scanner/domain/errors"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"bob@x.com":   "bo***@x.com",
		"a@x.com":     "a***@x.com",
		"no-at-sign":  "***",
		"trailing@":   "***",
		"":            "",
		"  jo@y.io  ": "jo***@y.io",
	}
	for input, want := range cases {
		if got := MaskEmail(input); got != want {
			t.Fatalf("mask %q: expected %q, got %q", input, want, got)
		}
	}
}

func TestMaskProfileContactsForOtherViewer(t *testing.T) {
	s := newTestScanner()
	profile := entities.Profile{
		ID:          "creator-1",
		DisplayName: "Bob Creates",
		Bio:         "reach me at bob@x.com",
		Email:       "bob@x.com",
		Instagram:   "https://instagram.com/bob",
	}
	masked := s.MaskProfileContacts(profile, "brand-9")
	if masked.Email != "bo***@x.com" {
		t.Fatalf("expected masked email, got %q", masked.Email)
	}
	if masked.Bio != "reach me at [REDACTED]" {
		t.Fatalf("expected redacted bio, got %q", masked.Bio)
	}
	if masked.Instagram != "[Contact info hidden]" {
		t.Fatalf("expected hidden social link, got %q", masked.Instagram)
	}
	if masked.DisplayName != "Bob Creates" || masked.TikTok != "" {
		t.Fatalf("expected clean fields untouched, got %+v", masked)
	}
	if profile.Email != "bob@x.com" || profile.Bio != "reach me at bob@x.com" {
		t.Fatalf("input profile was mutated: %+v", profile)
	}
}

func TestMaskProfileContactsForOwner(t *testing.T) {
	s := newTestScanner()
	profile := entities.Profile{ID: "creator-1", Email: "bob@x.com", Bio: "reach me at bob@x.com"}
	if got := s.MaskProfileContacts(profile, "creator-1"); got != profile {
		t.Fatalf("expected owner to see unmasked profile, got %+v", got)
	}
}

func TestParseProfileField(t *testing.T) {
	field, err := ParseProfileField(" Campaign_Brief ")
	if err != nil || field != entities.FieldCampaignBrief {
		t.Fatalf("expected campaign_brief, got %q err=%v", field, err)
	}
	if _, err := ParseProfileField("fax_number"); !errors.Is(err, domainerrors.ErrUnknownField) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestSanitizeFieldDispatchesByKind(t *testing.T) {
	s := newTestScanner()
	cases := []struct {
		field entities.ProfileField
		value string
		want  string
	}{
		{field: entities.FieldMessage, value: "mail bob@x.com", want: "mail [REDACTED]"},
		{field: entities.FieldBio, value: "I edit travel vlogs", want: "I edit travel vlogs"},
		{field: entities.FieldEmail, value: "bob@x.com", want: "bo***@x.com"},
		{field: entities.FieldTikTok, value: "tiktok.com/@bob", want: "[Contact info hidden]"},
		{field: entities.FieldWebsite, value: "", want: ""},
	}
	for _, tc := range cases {
		got, err := s.SanitizeField(tc.field, tc.value)
		if err != nil {
			t.Fatalf("sanitize %s failed: %v", tc.field, err)
		}
		if got != tc.want {
			t.Fatalf("sanitize %s: expected %q, got %q", tc.field, tc.want, got)
		}
	}
	if _, err := s.SanitizeField("pager", "x"); !errors.Is(err, domainerrors.ErrUnknownField) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}
