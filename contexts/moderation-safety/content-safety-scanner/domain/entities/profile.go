package entities

type Profile struct {
	ID          string
	DisplayName string
	Bio         string
	Description string
	Email       string
	Website     string
	Instagram   string
	TikTok      string
	YouTube     string
	Twitter     string
	Facebook    string
	LinkedIn    string
}

// ProfileField is the closed set of user supplied fields the sanitizer
// knows how to clean.
type ProfileField string

const (
	FieldDisplayName   ProfileField = "display_name"
	FieldBio           ProfileField = "bio"
	FieldDescription   ProfileField = "description"
	FieldEmail         ProfileField = "email"
	FieldWebsite       ProfileField = "website"
	FieldInstagram     ProfileField = "instagram"
	FieldTikTok        ProfileField = "tiktok"
	FieldYouTube       ProfileField = "youtube"
	FieldTwitter       ProfileField = "twitter"
	FieldFacebook      ProfileField = "facebook"
	FieldLinkedIn      ProfileField = "linkedin"
	FieldMessage       ProfileField = "message"
	FieldCampaignBrief ProfileField = "campaign_brief"
)

type FieldKind int

const (
	FieldKindFreeText FieldKind = iota
	FieldKindSocialLink
	FieldKindEmail
)

var profileFields = map[ProfileField]FieldKind{
	FieldDisplayName:   FieldKindFreeText,
	FieldBio:           FieldKindFreeText,
	FieldDescription:   FieldKindFreeText,
	FieldMessage:       FieldKindFreeText,
	FieldCampaignBrief: FieldKindFreeText,
	FieldEmail:         FieldKindEmail,
	FieldWebsite:       FieldKindSocialLink,
	FieldInstagram:     FieldKindSocialLink,
	FieldTikTok:        FieldKindSocialLink,
	FieldYouTube:       FieldKindSocialLink,
	FieldTwitter:       FieldKindSocialLink,
	FieldFacebook:      FieldKindSocialLink,
	FieldLinkedIn:      FieldKindSocialLink,
}

func (f ProfileField) Kind() (FieldKind, bool) {
	kind, ok := profileFields[f]
	return kind, ok
}
