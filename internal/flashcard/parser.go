package flashcard

import (
	"strings"

	"flashgen/internal/domain"
)

const (
	inlineQuestionMarker = " Q:"
	inlineAnswerMarker   = " A:"
	questionPrefix       = "Q:"
	answerPrefix         = "A:"
)

type parseMode int

const (
	multiLineMode parseMode = iota
	singleLineMode
)

func (m parseMode) String() string {
	if m == singleLineMode {
		return "single-line"
	}
	return "multi-line"
}

// detectMode picks single-line parsing when the output holds both inline
// markers and no newline is left once the markers are removed.
func detectMode(raw string) parseMode {
	if !strings.Contains(raw, inlineQuestionMarker) || !strings.Contains(raw, inlineAnswerMarker) {
		return multiLineMode
	}
	stripped := strings.ReplaceAll(raw, inlineQuestionMarker, "")
	stripped = strings.ReplaceAll(stripped, inlineAnswerMarker, "")
	if strings.Contains(stripped, "\n") {
		return multiLineMode
	}
	return singleLineMode
}

// Parse recovers question/answer cards from raw model output. It never
// fails; output without complete pairs yields an empty set.
func Parse(raw string) domain.FlashcardSet {
	switch detectMode(raw) {
	case singleLineMode:
		return parseSingleLine(raw)
	default:
		return parseMultiLine(raw)
	}
}

func parseSingleLine(raw string) domain.FlashcardSet {
	cards := domain.FlashcardSet{}
	for _, segment := range strings.Split(raw, inlineQuestionMarker) {
		question, answer, found := strings.Cut(segment, inlineAnswerMarker)
		if !found {
			continue
		}
		if card, ok := domain.NewFlashcard(question, answer); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

func parseMultiLine(raw string) domain.FlashcardSet {
	cards := domain.FlashcardSet{}
	pending := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, questionPrefix):
			pending = strings.TrimSpace(line[len(questionPrefix):])
		case strings.HasPrefix(line, answerPrefix) && pending != "":
			if card, ok := domain.NewFlashcard(pending, line[len(answerPrefix):]); ok {
				cards = append(cards, card)
			}
			pending = ""
		}
	}
	return cards
}

// ModeOf names the parsing mode Parse would select for raw.
func ModeOf(raw string) string {
	return detectMode(raw).String()
}
