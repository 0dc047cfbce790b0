package moderation

import (
	"chat-fanout/errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestLoadDictionary(t *testing.T) {
	req := require.New(t)
	fsys := fstest.MapFS{
		"censored/fr.txt":     {Data: []byte("arnaque\r\nspam\n\n")},
		"censored/en.txt":     {Data: []byte("scam\nspam\n")},
		"censored/README.md":  {Data: []byte("not a dictionary")},
		"censored/old/de.txt": {Data: []byte("betrug\n")},
	}

	dictionary, err := LoadDictionary(fsys, "censored")
	req.NoError(err)
	req.Equal([]string{"en", "fr"}, dictionary.Languages)
	req.ElementsMatch([]string{"arnaque", "spam", "scam"}, dictionary.Words)
}

func TestLoadDictionary_Empty(t *testing.T) {
	req := require.New(t)
	fsys := fstest.MapFS{"censored/en.txt": {Data: []byte("\n  \n")}}

	_, err := LoadDictionary(fsys, "censored")
	req.ErrorIs(err, errors.ErrEmptyDictionary)

	_, err = LoadDictionary(fsys, "missing")
	req.Error(err)
}
