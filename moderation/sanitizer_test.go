package moderation

import (
	"chat-fanout/errors"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

func TestSanitizer_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	sanitizer, err := NewSanitizer([]string{"spam", "scam", "phishing"}, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Single word",
			input:    "This is spam indeed",
			expected: "This is **** indeed",
			words:    []string{"spam"},
		},
		{
			name:     "Repeated words",
			input:    "scam scam",
			expected: "**** ****",
			words:    []string{"scam", "scam"},
		},
		{
			name:     "Leet speak and punctuation inside the word",
			input:    "Click: $.c.4.m now",
			expected: "Click: ******* now",
			words:    []string{"scam"},
		},
		{
			name:     "Uppercase and trailing punctuation",
			input:    "PHISHING!",
			expected: "********!",
			words:    []string{"phishing"},
		},
		{
			name:     "Multi byte runes around a match",
			input:    "Un été de spam",
			expected: "Un été de ****",
			words:    []string{"spam"},
		},
		{
			name:     "Clean body",
			input:    "See you tomorrow",
			expected: "See you tomorrow",
		},
		{
			name:     "Empty body",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, words := sanitizer.Censor(tt.input)
			req.Equal(tt.expected, body)
			req.Equal(tt.words, words)
		})
	}
}

func TestNewSanitizer_Empty_Dictionary(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	_, err := NewSanitizer(nil, replacementChar, log)
	req.ErrorIs(err, errors.ErrEmptyDictionary)

	// Words made only of noise are dropped
	_, err = NewSanitizer([]string{"...", " ", ""}, replacementChar, log)
	req.ErrorIs(err, errors.ErrEmptyDictionary)
}

func TestSanitizer_Sanitize_Tags_Language(t *testing.T) {
	req := require.New(t)
	sanitizer, err := NewSanitizer([]string{"spam"}, '#', logs.GetLoggerFromLevel(slog.LevelError))
	req.NoError(err)

	sanitized := sanitizer.Sanitize("Bonjour à tous, je vous écris pour vous parler du spam que nous recevons chaque matin")
	req.Equal("fr", sanitized.Lang)
	req.Equal([]string{"spam"}, sanitized.Censored)
	req.Contains(sanitized.Body, "####")
	req.Empty(DetectLanguage(""))
}
