package scanner

import (
	"strings"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	domainerrors "creatorhub/contexts/moderation-safety/content-safety-scanner/domain/errors"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/patterns"
)

// MaskEmail keeps the first two characters of the local part and the whole
// domain. A value without a usable @ is fully masked.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "***"
	}
	local := []rune(email[:at])
	keep := 2
	if len(local) < keep {
		keep = len(local)
	}
	return string(local[:keep]) + "***" + email[at:]
}

// MaskProfileContacts returns a copy of profile as seen by viewerID. The
// owner sees the profile unchanged.
func (s Scanner) MaskProfileContacts(profile entities.Profile, viewerID string) entities.Profile {
	masked := profile
	if viewerID != "" && viewerID == profile.ID {
		return masked
	}

	masked.Email = MaskEmail(profile.Email)
	masked.DisplayName = s.redactFreeText(profile.DisplayName)
	masked.Bio = s.redactFreeText(profile.Bio)
	masked.Description = s.redactFreeText(profile.Description)
	masked.Website = s.hideLink(profile.Website)
	masked.Instagram = s.hideLink(profile.Instagram)
	masked.TikTok = s.hideLink(profile.TikTok)
	masked.YouTube = s.hideLink(profile.YouTube)
	masked.Twitter = s.hideLink(profile.Twitter)
	masked.Facebook = s.hideLink(profile.Facebook)
	masked.LinkedIn = s.hideLink(profile.LinkedIn)
	return masked
}

func ParseProfileField(name string) (entities.ProfileField, error) {
	field := entities.ProfileField(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := field.Kind(); !ok {
		return "", domainerrors.ErrUnknownField
	}
	return field, nil
}

// SanitizeField cleans one user supplied value according to the kind of
// field it belongs to.
func (s Scanner) SanitizeField(field entities.ProfileField, value string) (string, error) {
	kind, ok := field.Kind()
	if !ok {
		return "", domainerrors.ErrUnknownField
	}
	switch kind {
	case entities.FieldKindEmail:
		return MaskEmail(value), nil
	case entities.FieldKindSocialLink:
		return s.hideLink(value), nil
	default:
		return s.redactFreeText(value), nil
	}
}

func (s Scanner) redactFreeText(value string) string {
	result := s.AnalyzeContent(value)
	if result.IsClean {
		return value
	}
	return result.RedactedContent
}

func (s Scanner) hideLink(value string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	if s.AnalyzeContent(value).IsClean {
		return value
	}
	return patterns.HiddenPlaceholder
}
