package generation

import (
	"regexp"
	"unicode/utf8"

	"flashgen/internal/logger"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// Tokenizer measures text in token-equivalent units for the input cap.
type Tokenizer interface {
	Count(text string) int
	// Truncate returns the longest prefix of text holding at most maxTokens units.
	Truncate(text string, maxTokens int) string
}

// NewTokenizer returns a tiktoken tokenizer for encoding, falling back to
// word units when the encoding cannot be loaded.
func NewTokenizer(encoding string) Tokenizer {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.Get().Warn("tiktoken encoding unavailable, counting words instead",
			zap.String("encoding", encoding), zap.Error(err))
		return WordTokenizer{}
	}
	return &TiktokenTokenizer{enc: enc}
}

// TiktokenTokenizer counts BPE tokens.
type TiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

func (t *TiktokenTokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

func (t *TiktokenTokenizer) Truncate(text string, maxTokens int) string {
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return trimPartialRune(t.enc.Decode(tokens[:maxTokens]))
}

// trimPartialRune drops the trailing bytes of a rune split by a token
// boundary. Invalid bytes elsewhere are left alone.
func trimPartialRune(s string) string {
	for i := 0; i < utf8.UTFMax-1 && s != ""; i++ {
		if r, size := utf8.DecodeLastRuneInString(s); r != utf8.RuneError || size != 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

var wordPattern = regexp.MustCompile(`\S+\s*`)

// WordTokenizer treats each whitespace-delimited word as one unit. Truncation
// keeps the original spacing of the retained prefix.
type WordTokenizer struct{}

func (WordTokenizer) Count(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

func (WordTokenizer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	words := wordPattern.FindAllStringIndex(text, maxTokens+1)
	if len(words) <= maxTokens {
		return text
	}
	return text[:words[maxTokens-1][1]]
}
