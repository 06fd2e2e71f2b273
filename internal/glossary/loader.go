package glossary

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Glossary files are named {domain}_terms_{language}.csv, e.g.
// agric_terms_twi.csv. Files that do not match the pattern are skipped.
var fileNameRe = regexp.MustCompile(`^([A-Za-z0-9-]+)_terms_([A-Za-z-]+)\.csv$`)

// LoadDir builds an index from all glossary CSV files in dir. Each file must
// have columns id, term, translation (a header row is optional). Rows with a
// missing term or translation are skipped; a malformed file never aborts the
// load of the others.
func LoadDir(dir string) (*Index, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary directory: %w", err)
	}

	idx := NewIndex()
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		m := fileNameRe.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}
		domain, language := m[1], m[2]
		if err := loadFile(idx, filepath.Join(dir, f.Name()), language, domain); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping glossary file %s: %v\n", f.Name(), err)
		}
	}
	return idx, nil
}

// loadFile appends the entries of one CSV file to the index.
func loadFile(idx *Index, path, language, domain string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // malformed rows are skipped, not fatal

	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A broken row should not discard the rest of the file.
			continue
		}
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		if len(record) < 3 {
			continue
		}
		idx.Add(Entry{
			ID:          strings.TrimSpace(record[0]),
			Term:        record[1],
			Translation: record[2],
			Language:    language,
			Domain:      domain,
		})
	}
	return nil
}

func isHeader(record []string) bool {
	return len(record) >= 3 &&
		strings.EqualFold(strings.TrimSpace(record[1]), "term") &&
		strings.EqualFold(strings.TrimSpace(record[2]), "translation")
}
