// Package flashcard holds the pure stages of the generation pipeline:
// content normalization, prompt construction and parsing of raw model
// output into question/answer cards. Nothing here performs I/O.
package flashcard
