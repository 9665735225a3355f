package http

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

type ViolationDTO struct {
	Category    string `json:"category"`
	Rule        string `json:"rule"`
	MatchedText string `json:"matched_text"`
	Position    int    `json:"position"`
	Length      int    `json:"length"`
}

type AnalysisDTO struct {
	IsClean            bool           `json:"is_clean"`
	RiskScore          int            `json:"risk_score"`
	RiskLevel          string         `json:"risk_level"`
	Violations         []ViolationDTO `json:"violations"`
	RedactedContent    string         `json:"redacted_content"`
	RequiresModeration bool           `json:"requires_moderation"`
	ShouldBlock        bool           `json:"should_block"`
	PatternVersion     string         `json:"pattern_version"`
}

type AnalyzeContentRequest struct {
	Content string `json:"content"`
}

type AnalyzeContentResponse struct {
	Status    string      `json:"status"`
	Data      AnalysisDTO `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type SanitizeMessageRequest struct {
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id"`
}

type SanitizeMessageResponse struct {
	Status string `json:"status"`
	Data   struct {
		Content        string   `json:"content"`
		ShouldBlock    bool     `json:"should_block"`
		RequiresReview bool     `json:"requires_review"`
		RiskLevel      string   `json:"risk_level"`
		Categories     []string `json:"categories"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type ProfileDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
	Instagram   string `json:"instagram,omitempty"`
	TikTok      string `json:"tiktok,omitempty"`
	YouTube     string `json:"youtube,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Facebook    string `json:"facebook,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
}

type MaskProfileRequest struct {
	Profile ProfileDTO `json:"profile"`
}

type MaskProfileResponse struct {
	Status    string     `json:"status"`
	Data      ProfileDTO `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type SanitizeFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type SanitizeFieldResponse struct {
	Status string `json:"status"`
	Data   struct {
		Field string `json:"field"`
		Value string `json:"value"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type FileGateRequest struct {
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	OfferStatus string `json:"offer_status"`
}

type FileGateResponse struct {
	Status string `json:"status"`
	Data   struct {
		ShouldGate       bool     `json:"should_gate"`
		RequiresApproval bool     `json:"requires_approval"`
		RiskScore        int      `json:"risk_score"`
		RiskLevel        string   `json:"risk_level"`
		Reasons          []string `json:"reasons"`
		AllowedMimeTypes []string `json:"allowed_mime_types"`
		MaxFileSizeBytes int64    `json:"max_file_size_bytes"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type LinkValidationRequest struct {
	URL         string `json:"url"`
	OfferStatus string `json:"offer_status"`
}

type LinkValidationResponse struct {
	Status string `json:"status"`
	Data   struct {
		IsValid        bool   `json:"is_valid"`
		RiskLevel      string `json:"risk_level"`
		RequiresReview bool   `json:"requires_review"`
		Host           string `json:"host,omitempty"`
		Reason         string `json:"reason"`
	} `json:"data"`
	Timestamp string `json:"timestamp"`
}

type ViolationLogDTO struct {
	LogID          string         `json:"log_id"`
	SenderID       string         `json:"sender_id"`
	ConversationID string         `json:"conversation_id"`
	RiskScore      int            `json:"risk_score"`
	RiskLevel      string         `json:"risk_level"`
	Categories     []string       `json:"categories"`
	Violations     []ViolationDTO `json:"violations"`
	PatternVersion string         `json:"pattern_version"`
	Blocked        bool           `json:"blocked"`
	CreatedAt      string         `json:"created_at"`
}

type ListViolationsResponse struct {
	Status    string            `json:"status"`
	Data      []ViolationLogDTO `json:"data"`
	Timestamp string            `json:"timestamp"`
}
