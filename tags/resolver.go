package tags

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyVocabulary is returned when Resolve is called against an empty
// vocabulary. This indicates broken local setup, not a remote failure.
var ErrEmptyVocabulary = errors.New("tag vocabulary is empty")

// Resolve maps free text to the closest vocabulary entry. Matching is
// case-insensitive and deterministic: the highest-scoring tag wins, and a
// tie goes to the tag declared first.
func Resolve(text string) (Tag, error) {
	return resolveAgainst(vocabulary, text)
}

func resolveAgainst(vocab []Tag, text string) (Tag, error) {
	if len(vocab) == 0 {
		return "", ErrEmptyVocabulary
	}

	needle := normalize(text)

	best := vocab[0]
	bestScore := similarity(needle, normalize(string(vocab[0])))
	for _, t := range vocab[1:] {
		if score := similarity(needle, normalize(string(t))); score > bestScore {
			best = t
			bestScore = score
		}
	}
	return best, nil
}

// normalize lowercases the input and collapses non-alphanumeric runs to
// single spaces.
func normalize(input string) string {
	var b strings.Builder
	lastSpace := true

	for _, r := range strings.ToLower(input) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// similarity scores two normalized strings in [0, 1] using edit distance,
// with a small boost when one contains the other so that partial phrases
// ("funny cat videos") still land on the intended tag.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}

	score := 1 - float64(editDistance(a, b))/float64(longest)

	if strings.Contains(a, b) || strings.Contains(b, a) {
		score += 0.25
	}

	if score > 1 {
		score = 1
	} else if score < 0 {
		score = 0
	}
	return score
}

// editDistance is the Levenshtein distance between two strings, computed
// over runes with a single rolling row.
func editDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cur := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}

	return row[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
