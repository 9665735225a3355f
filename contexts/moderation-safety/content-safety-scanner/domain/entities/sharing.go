package entities

type FileContext struct {
	OfferStatus OfferStatus
}

type FileGatingDecision struct {
	ShouldGate       bool
	RequiresApproval bool
	RiskScore        int
	RiskLevel        RiskLevel
	Reasons          []string
	AllowedMimeTypes []string
	MaxFileSizeBytes int64
}

type LinkContext struct {
	OfferStatus OfferStatus
}

type LinkValidation struct {
	IsValid        bool
	RiskLevel      RiskLevel
	RequiresReview bool
	Host           string
	Reason         string
}
