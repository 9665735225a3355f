package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/application"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/entities"
	"creatorhub/contexts/moderation-safety/content-safety-scanner/ports"
	httptransport "creatorhub/contexts/moderation-safety/content-safety-scanner/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) AnalyzeContentHandler(
	ctx context.Context,
	req httptransport.AnalyzeContentRequest,
) (httptransport.AnalyzeContentResponse, error) {
	result := h.Service.AnalyzeContent(ctx, req.Content)
	return httptransport.AnalyzeContentResponse{
		Status:    "success",
		Data:      toAnalysisDTO(result),
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) SanitizeMessageHandler(
	ctx context.Context,
	senderID string,
	req httptransport.SanitizeMessageRequest,
) (httptransport.SanitizeMessageResponse, error) {
	result := h.Service.SanitizeMessage(ctx, req.Content, senderID, req.ConversationID)
	resp := httptransport.SanitizeMessageResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Content = result.Content
	resp.Data.ShouldBlock = result.ShouldBlock
	resp.Data.RequiresReview = result.RequiresReview
	resp.Data.RiskLevel = string(result.Analysis.RiskLevel)
	resp.Data.Categories = categoryStrings(result.Analysis.Categories())
	return resp, nil
}

func (h Handler) MaskProfileHandler(
	ctx context.Context,
	viewerID string,
	req httptransport.MaskProfileRequest,
) (httptransport.MaskProfileResponse, error) {
	masked := h.Service.MaskProfile(ctx, fromProfileDTO(req.Profile), viewerID)
	return httptransport.MaskProfileResponse{
		Status:    "success",
		Data:      toProfileDTO(masked),
		Timestamp: timestamp(),
	}, nil
}

func (h Handler) SanitizeFieldHandler(
	ctx context.Context,
	req httptransport.SanitizeFieldRequest,
) (httptransport.SanitizeFieldResponse, error) {
	value, err := h.Service.SanitizeField(ctx, req.Field, req.Value)
	if err != nil {
		return httptransport.SanitizeFieldResponse{}, err
	}
	resp := httptransport.SanitizeFieldResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.Field = req.Field
	resp.Data.Value = value
	return resp, nil
}

func (h Handler) FileGateHandler(
	ctx context.Context,
	req httptransport.FileGateRequest,
) (httptransport.FileGateResponse, error) {
	decision, err := h.Service.GateFileSharing(ctx, req.FileName, req.FileType, req.OfferStatus)
	if err != nil {
		return httptransport.FileGateResponse{}, err
	}
	resp := httptransport.FileGateResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.ShouldGate = decision.ShouldGate
	resp.Data.RequiresApproval = decision.RequiresApproval
	resp.Data.RiskScore = decision.RiskScore
	resp.Data.RiskLevel = string(decision.RiskLevel)
	resp.Data.Reasons = decision.Reasons
	resp.Data.AllowedMimeTypes = decision.AllowedMimeTypes
	resp.Data.MaxFileSizeBytes = decision.MaxFileSizeBytes
	return resp, nil
}

func (h Handler) ValidateLinkHandler(
	ctx context.Context,
	req httptransport.LinkValidationRequest,
) (httptransport.LinkValidationResponse, error) {
	validation, err := h.Service.ValidateLink(ctx, req.URL, req.OfferStatus)
	if err != nil {
		return httptransport.LinkValidationResponse{}, err
	}
	resp := httptransport.LinkValidationResponse{Status: "success", Timestamp: timestamp()}
	resp.Data.IsValid = validation.IsValid
	resp.Data.RiskLevel = string(validation.RiskLevel)
	resp.Data.RequiresReview = validation.RequiresReview
	resp.Data.Host = validation.Host
	resp.Data.Reason = validation.Reason
	return resp, nil
}

func (h Handler) ListViolationsHandler(
	ctx context.Context,
	filter ports.ViolationFilter,
) (httptransport.ListViolationsResponse, error) {
	logs, err := h.Service.ListViolations(ctx, filter)
	if err != nil {
		return httptransport.ListViolationsResponse{}, err
	}
	items := make([]httptransport.ViolationLogDTO, 0, len(logs))
	for _, item := range logs {
		items = append(items, httptransport.ViolationLogDTO{
			LogID:          item.LogID,
			SenderID:       item.SenderID,
			ConversationID: item.ConversationID,
			RiskScore:      item.RiskScore,
			RiskLevel:      string(item.RiskLevel),
			Categories:     categoryStrings(item.Categories),
			Violations:     toViolationDTOs(item.Violations),
			PatternVersion: item.PatternVersion,
			Blocked:        item.Blocked,
			CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.ListViolationsResponse{
		Status:    "success",
		Data:      items,
		Timestamp: timestamp(),
	}, nil
}

func toAnalysisDTO(result entities.ContentAnalysisResult) httptransport.AnalysisDTO {
	return httptransport.AnalysisDTO{
		IsClean:            result.IsClean,
		RiskScore:          result.RiskScore,
		RiskLevel:          string(result.RiskLevel),
		Violations:         toViolationDTOs(result.Violations),
		RedactedContent:    result.RedactedContent,
		RequiresModeration: result.RequiresModeration,
		ShouldBlock:        result.ShouldBlock,
		PatternVersion:     result.PatternVersion,
	}
}

func toViolationDTOs(items []entities.Violation) []httptransport.ViolationDTO {
	out := make([]httptransport.ViolationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, httptransport.ViolationDTO{
			Category:    string(item.Category),
			Rule:        item.Rule,
			MatchedText: item.MatchedText,
			Position:    item.Position,
			Length:      item.Length,
		})
	}
	return out
}

func categoryStrings(items []entities.Category) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, string(item))
	}
	return out
}

func fromProfileDTO(dto httptransport.ProfileDTO) entities.Profile {
	return entities.Profile{
		ID:          dto.ID,
		DisplayName: dto.DisplayName,
		Bio:         dto.Bio,
		Description: dto.Description,
		Email:       dto.Email,
		Website:     dto.Website,
		Instagram:   dto.Instagram,
		TikTok:      dto.TikTok,
		YouTube:     dto.YouTube,
		Twitter:     dto.Twitter,
		Facebook:    dto.Facebook,
		LinkedIn:    dto.LinkedIn,
	}
}

func toProfileDTO(profile entities.Profile) httptransport.ProfileDTO {
	return httptransport.ProfileDTO{
		ID:          profile.ID,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Description: profile.Description,
		Email:       profile.Email,
		Website:     profile.Website,
		Instagram:   profile.Instagram,
		TikTok:      profile.TikTok,
		YouTube:     profile.YouTube,
		Twitter:     profile.Twitter,
		Facebook:    profile.Facebook,
		LinkedIn:    profile.LinkedIn,
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
