package scanner

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
)

const DefaultMaxFileSizeBytes int64 = 10 * 1024 * 1024

// FilePolicy lists what is shared freely and what marks a file as a likely
// carrier of contact details.
type FilePolicy struct {
	AllowedMimeTypes   []string
	DocumentExtensions []string
	DocumentMimeTypes  []string
	FilenameKeywords   []string
	MaxFileSizeBytes   int64
}

func DefaultFilePolicy() FilePolicy {
	return FilePolicy{
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
			"video/mp4",
			"video/quicktime",
			"video/webm",
		},
		DocumentExtensions: []string{
			"pdf", "doc", "docx", "txt", "rtf", "odt",
			"xls", "xlsx", "csv", "ppt", "pptx", "pages",
		},
		DocumentMimeTypes: []string{
			"application/pdf",
			"application/msword",
			"application/rtf",
			"application/vnd.openxmlformats-officedocument.",
			"application/vnd.ms-",
			"application/vnd.oasis.opendocument.",
			"application/vnd.apple.pages",
			"text/plain",
			"text/csv",
			"text/rtf",
		},
		FilenameKeywords: []string{
			"contact", "email", "phone", "whatsapp",
			"telegram", "number", "address", "details",
		},
		MaxFileSizeBytes: DefaultMaxFileSizeBytes,
	}
}

// ShouldGateFileSharing scores a file upload in a conversation. Anything
// shared before payment is secured is gated.
func (s Scanner) ShouldGateFileSharing(fileName string, fileType string, ctx entities.FileContext) entities.FileGatingDecision {
	policy := s.Files
	thresholds := s.Table.Thresholds()
	name := strings.ToLower(strings.TrimSpace(fileName))
	mimeType := strings.ToLower(strings.TrimSpace(fileType))

	score := 0
	reasons := make([]string, 0, 3)
	if isDocument(name, mimeType, policy) {
		score += thresholds.Low
		reasons = append(reasons, "document file type")
	}
	if keyword, ok := containsKeyword(name, policy.FilenameKeywords); ok {
		score += thresholds.Medium
		reasons = append(reasons, fmt.Sprintf("file name mentions %q", keyword))
	}
	if !ctx.OfferStatus.Secured() {
		score += thresholds.Medium
		reasons = append(reasons, "payment not secured")
	}

	allowed := make([]string, len(policy.AllowedMimeTypes))
	copy(allowed, policy.AllowedMimeTypes)
	return entities.FileGatingDecision{
		ShouldGate:       score >= thresholds.Medium,
		RequiresApproval: score >= thresholds.High,
		RiskScore:        score,
		RiskLevel:        thresholds.Level(score),
		Reasons:          reasons,
		AllowedMimeTypes: allowed,
		MaxFileSizeBytes: policy.MaxFileSizeBytes,
	}
}

func isDocument(name string, mimeType string, policy FilePolicy) bool {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	for _, item := range policy.DocumentExtensions {
		if ext != "" && ext == item {
			return true
		}
	}
	for _, item := range policy.DocumentMimeTypes {
		if mimeType != "" && strings.HasPrefix(mimeType, item) {
			return true
		}
	}
	return false
}

func containsKeyword(name string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// LinkPolicy holds host lists. A host matches an entry when it equals the
// entry or is a subdomain of it.
type LinkPolicy struct {
	BlockedHosts []string
	AllowedHosts []string
}

func DefaultLinkPolicy() LinkPolicy {
	return LinkPolicy{
		BlockedHosts: []string{
			"whatsapp.com", "wa.me",
			"t.me", "telegram.me", "telegram.org",
			"discord.com", "discord.gg", "discordapp.com",
			"skype.com", "zoom.us", "meet.google.com",
			"m.me", "messenger.com",
			"signal.me", "signal.org",
			"line.me", "wechat.com", "weixin.qq.com",
			"teams.microsoft.com", "teams.live.com",
			"viber.com", "kik.com",
		},
		AllowedHosts: []string{
			"drive.google.com", "docs.google.com",
			"dropbox.com", "onedrive.live.com", "1drv.ms",
			"box.com", "canva.com", "figma.com", "frame.io",
			"wetransfer.com", "we.tl", "notion.so",
			"miro.com", "sharepoint.com",
		},
	}
}

func (s Scanner) ValidateExternalLink(rawURL string, ctx entities.LinkContext) entities.LinkValidation {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return entities.LinkValidation{RiskLevel: entities.RiskLow, Reason: "link could not be parsed"}
	}
	scheme := strings.ToLower(parsed.Scheme)
	host := strings.TrimSuffix(strings.ToLower(parsed.Hostname()), ".")
	if (scheme != "http" && scheme != "https") || host == "" {
		return entities.LinkValidation{RiskLevel: entities.RiskLow, Host: host, Reason: "link must be an http or https URL with a host"}
	}
	host = strings.TrimPrefix(host, "www.")

	if matchesHost(host, s.Links.BlockedHosts) {
		return entities.LinkValidation{
			RiskLevel: entities.RiskCritical,
			Host:      host,
			Reason:    "messaging and call links are not allowed",
		}
	}
	if matchesHost(host, s.Links.AllowedHosts) {
		return entities.LinkValidation{
			IsValid:   true,
			RiskLevel: entities.RiskLow,
			Host:      host,
			Reason:    "approved business tool",
		}
	}
	if !ctx.OfferStatus.Secured() {
		return entities.LinkValidation{
			RiskLevel:      entities.RiskMedium,
			RequiresReview: true,
			Host:           host,
			Reason:         "external links are allowed only after payment is secured",
		}
	}
	return entities.LinkValidation{
		IsValid:        true,
		RiskLevel:      entities.RiskMedium,
		RequiresReview: true,
		Host:           host,
		Reason:         "external link requires review",
	}
}

func matchesHost(host string, entries []string) bool {
	for _, entry := range entries {
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}
