package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// parseLabelFile reads a label CSV from r. Each record's first field is an
// image path relative to the data directory; the remaining fields are label
// words. Blank lines are skipped. Records vary in field count, so the reader
// runs without a fixed field check.
func parseLabelFile(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []Entry
	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidEntry, line, err)
		}

		path := strings.TrimSpace(rec[0])
		if path == "" {
			if len(rec) == 1 {
				continue // blank line
			}
			return nil, fmt.Errorf("%w: line %d: empty image path", ErrInvalidEntry, line)
		}

		var labels []string
		for _, f := range rec[1:] {
			f = strings.TrimSpace(f)
			if f != "" {
				labels = append(labels, f)
			}
		}

		entries = append(entries, Entry{Path: path, Labels: labels})
	}

	return entries, nil
}

// loadLabelFile opens and parses the label file at path.
// Returns ErrLabelFileNotFound if the file does not exist.
func loadLabelFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrLabelFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageError, err)
	}
	defer f.Close()

	return parseLabelFile(f)
}

// labelVocabulary returns the number of unique label words across entries.
func labelVocabulary(entries []Entry) int {
	words := make(map[string]struct{})
	for _, e := range entries {
		for _, w := range e.Labels {
			words[w] = struct{}{}
		}
	}
	return len(words)
}
