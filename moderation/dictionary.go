package moderation

import (
	"bufio"
	"bytes"
	"chat-fanout/errors"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Dictionary is the merged content of the censored word files of a directory
type Dictionary struct {
	Words     []string
	Languages []string
}

// LoadDictionary reads every "{lang}.txt" file of dir, one word per line.
// Blank lines are skipped and duplicated words across languages are kept once.
func LoadDictionary(fsys fs.FS, dir string) (Dictionary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return Dictionary{}, err
	}

	var dictionary Dictionary
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return Dictionary{}, err
		}
		// Scanner copes with \r\n
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if word := strings.TrimSpace(scanner.Text()); word != "" {
				dictionary.Words = append(dictionary.Words, word)
			}
		}
		if err = scanner.Err(); err != nil {
			return Dictionary{}, err
		}
		dictionary.Languages = append(dictionary.Languages, strings.TrimSuffix(entry.Name(), ".txt"))
	}

	dictionary.Words = lo.Uniq(dictionary.Words)
	if len(dictionary.Words) == 0 {
		return Dictionary{}, errors.ErrEmptyDictionary
	}
	slices.Sort(dictionary.Languages)
	return dictionary, nil
}
