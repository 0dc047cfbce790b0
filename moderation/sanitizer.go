package moderation

import (
	"chat-fanout/errors"
	"log/slog"
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// Sanitizer censors forbidden words in message bodies.
// Matching ignores case, punctuation, spacing and common leet speak.
type Sanitizer struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

type Sanitized struct {
	Body     string
	Censored []string
	Lang     string
}

// foldedText keeps, for every folded rune, its index in the original text
type foldedText struct {
	runes   []rune
	origins []int
}

func NewSanitizer(censoredWords []string, censoredChar rune, log *slog.Logger) (*Sanitizer, error) {
	var patterns [][]rune
	for _, word := range censoredWords {
		if pattern := fold([]rune(word)).runes; len(pattern) > 0 {
			patterns = append(patterns, pattern)
		}
	}
	if len(patterns) == 0 {
		return nil, errors.ErrEmptyDictionary
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Sanitizer{matcher: m, censoredChar: censoredChar, log: log}, nil
}

// Sanitize censors the body and tags it with its language
func (s *Sanitizer) Sanitize(body string) Sanitized {
	censored, words := s.Censor(body)
	if len(words) > 0 {
		s.log.Debug("Censored words found", "count", len(words))
	}
	return Sanitized{Body: censored, Censored: words, Lang: DetectLanguage(body)}
}

// Censor replaces every matched rune of the original text, spacing and punctuation around are kept
func (s *Sanitizer) Censor(original string) (string, []string) {
	text := fold([]rune(original))
	if len(text.runes) == 0 {
		return original, nil
	}
	terms := s.matcher.MultiPatternSearch(text.runes, false)
	if len(terms) == 0 {
		return original, nil
	}

	runes := []rune(original)
	words := make([]string, 0, len(terms))
	for _, term := range terms {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start < 0 || end > len(text.origins) {
			continue
		}
		for i := text.origins[start]; i <= text.origins[end-1]; i++ {
			runes[i] = s.censoredChar
		}
		words = append(words, string(term.Word))
	}
	return string(runes), words
}

// DetectLanguage returns the ISO 639-1 code of the text, empty when it can't be told
func DetectLanguage(text string) string {
	if text == "" {
		return ""
	}
	return whatlanggo.Detect(text).Lang.Iso6391()
}

func fold(input []rune) foldedText {
	out := foldedText{runes: make([]rune, 0, len(input)), origins: make([]int, 0, len(input))}
	for i, r := range input {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		out.runes = append(out.runes, unicode.ToLower(r))
		out.origins = append(out.origins, i)
	}
	return out
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}
