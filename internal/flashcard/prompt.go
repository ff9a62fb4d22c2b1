package flashcard

import (
	"fmt"

	"flashgen/internal/domain"
)

// MaxPromptContent is the number of characters of source text placed in the prompt.
const MaxPromptContent = 4000

const promptTemplate = "Create 4 to 5 flashcards from the following %s content. " +
	"Each flashcard should consist of a well-formed question and a concise, informative answer. " +
	"Use the format:\nQ: [question]\nA: [answer]\n\nContent:\n%s"

// BuildPrompt renders the generation prompt for text and subject.
func BuildPrompt(text string, subject domain.Subject) string {
	return fmt.Sprintf(promptTemplate, subject.Phrase(), truncateRunes(text, MaxPromptContent))
}

func truncateRunes(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
