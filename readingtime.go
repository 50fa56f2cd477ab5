package folio

import (
	"math"
	"unicode"

	"github.com/filledstacks/folio/markdown"
)

// WordsPerMinute is the reading speed behind ReadingTime.
const WordsPerMinute = 200

// ReadingTime estimates how long text takes to read. Words are runs of
// non-space characters; every CJK ideograph or kana counts as a word of its
// own. Minutes is the word count divided by WordsPerMinute, rounded to two
// decimals and then up to a whole minute.
func ReadingTime(text string) ReadingStats {
	words := countWords(text)
	raw := float64(words) / WordsPerMinute
	rounded := math.Round(raw*100) / 100
	return ReadingStats{
		Minutes: int(math.Ceil(rounded)),
		Words:   words,
	}
}

// AnnotateReadingTime computes reading statistics over the plain text of the
// entry's markdown body and stores them in its frontmatter.
func AnnotateReadingTime(e *PostEntry) {
	stats := ReadingTime(markdown.PlainText(e.Body))
	e.Frontmatter.Minutes = stats.Minutes
	e.Frontmatter.Words = stats.Words
}

func countWords(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		switch {
		case isCJK(r):
			words++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		case isCJKPunct(r):
			inWord = false
		default:
			if !inWord {
				words++
				inWord = true
			}
		}
	}
	return words
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

func isCJKPunct(r rune) bool {
	return (r >= 0x3000 && r <= 0x303f) || (r >= 0xff00 && r <= 0xff0f)
}
