package dto

import "flashgen/internal/domain"

// MaxTextLength caps the characters accepted in a JSON generation request.
// Keep in sync with the validate tag on GenerateRequest.Text.
const MaxTextLength = 200000

// GenerateRequest is the body of POST /api/flashcards
// @Description Source text and optional subject for flashcard generation
type GenerateRequest struct {
	Text    string `json:"text" validate:"max=200000" example:"Photosynthesis is the process by which green plants..."`
	Subject string `json:"subject" validate:"omitempty,subject" example:"Science"`
}

// UploadForm carries the non-file fields of POST /api/flashcards/upload
type UploadForm struct {
	Subject string `form:"subject" validate:"omitempty,subject"`
}

// SubjectsResponse lists the accepted subjects
// @Description Available subjects
type SubjectsResponse struct {
	Subjects []string `json:"subjects"`
}

// NewSubjectsResponse builds the response from the domain subjects.
func NewSubjectsResponse(subjects []domain.Subject) SubjectsResponse {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = string(s)
	}
	return SubjectsResponse{Subjects: names}
}

// FlashcardResponse is the API view of a generation result
// @Description Generated flashcards
type FlashcardResponse struct {
	RequestID string          `json:"request_id"`
	Subject   string          `json:"subject"`
	Cards     []FlashcardItem `json:"cards"`
	CardCount int             `json:"card_count"`
	Warning   *WarningBody    `json:"warning,omitempty"`
}

// FlashcardItem is one question/answer pair
type FlashcardItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// WarningBody reports a non-fatal outcome such as NO_CARDS_FOUND
type WarningBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewFlashcardResponse converts a domain result.
func NewFlashcardResponse(r *domain.GenerationResult) FlashcardResponse {
	items := make([]FlashcardItem, len(r.Cards))
	for i, c := range r.Cards {
		items[i] = FlashcardItem{Question: c.Question, Answer: c.Answer}
	}
	resp := FlashcardResponse{
		RequestID: r.RequestID,
		Subject:   string(r.Subject),
		Cards:     items,
		CardCount: r.CardCount,
	}
	if r.Warning != nil {
		resp.Warning = &WarningBody{Code: string(r.Warning.Code), Message: r.Warning.Message}
	}
	return resp
}

// HealthResponse reports model and cache readiness
// @Description Service health
type HealthResponse struct {
	Status     string `json:"status"`
	Model      string `json:"model"`
	ModelReady bool   `json:"model_ready"`
	ModelError string `json:"model_error,omitempty"`
	Cache      string `json:"cache"`
}
