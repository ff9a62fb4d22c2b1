package domain

import (
	"fmt"
	"strings"
)

// Subject is a topical hint injected into the generation prompt.
type Subject string

const (
	SubjectGeneral    Subject = "General"
	SubjectScience    Subject = "Science"
	SubjectHistory    Subject = "History"
	SubjectMath       Subject = "Math"
	SubjectLiterature Subject = "Literature"
)

// Subjects lists every supported subject in display order.
func Subjects() []Subject {
	return []Subject{SubjectGeneral, SubjectScience, SubjectHistory, SubjectMath, SubjectLiterature}
}

// ParseSubject resolves a subject name case-insensitively. An empty name
// resolves to SubjectGeneral.
func ParseSubject(name string) (Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SubjectGeneral, nil
	}
	for _, s := range Subjects() {
		if strings.EqualFold(string(s), name) {
			return s, nil
		}
	}
	return "", NewInvalidInputError(fmt.Sprintf("Invalid subject: %s", name)).
		WithContext("allowed", Subjects())
}

// Phrase is the subject wording used inside the prompt.
func (s Subject) Phrase() string {
	if s == SubjectGeneral {
		return ""
	}
	return strings.ToLower(string(s))
}

// Flashcard is a question/answer study pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewFlashcard trims both sides and rejects cards with an empty side.
func NewFlashcard(question, answer string) (Flashcard, bool) {
	q := strings.TrimSpace(question)
	a := strings.TrimSpace(answer)
	if q == "" || a == "" {
		return Flashcard{}, false
	}
	return Flashcard{Question: q, Answer: a}, true
}

// FlashcardSet is an ordered collection of cards in the order they were
// recovered from the model output.
type FlashcardSet []Flashcard

// GenerationResult is the terminal artifact of one pipeline run.
type GenerationResult struct {
	RequestID string       `json:"request_id"`
	Subject   Subject      `json:"subject"`
	Cards     FlashcardSet `json:"cards"`
	CardCount int          `json:"card_count"`
	Warning   *DomainError `json:"warning,omitempty"`
}

// NewGenerationResult builds a result and attaches the NoCardsFound warning
// when the set is empty.
func NewGenerationResult(requestID string, subject Subject, cards FlashcardSet) *GenerationResult {
	if cards == nil {
		cards = FlashcardSet{}
	}
	result := &GenerationResult{
		RequestID: requestID,
		Subject:   subject,
		Cards:     cards,
		CardCount: len(cards),
	}
	if len(cards) == 0 {
		result.Warning = NewNoCardsFoundWarning()
	}
	return result
}
