// Package spreadsheet parses uploaded candidate lists. Uploads are expected
// to carry one header row followed by rows of (email, name); .xlsx and .csv
// are supported. Rows that fail validation are dropped, not fatal.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"interviewscheduler/internal/domain"
)

// DefaultMaxBytes caps upload size so a runaway file cannot exhaust memory.
const DefaultMaxBytes = 5 << 20

// Parser implements domain.CandidateParser.
type Parser struct {
	maxBytes int64
}

// NewParser returns a Parser with the given size cap; non-positive means
// DefaultMaxBytes.
func NewParser(maxBytes int64) *Parser {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Parser{maxBytes: maxBytes}
}

// Parse reads the upload and returns the valid candidates. The file type is
// chosen by extension, defaulting to xlsx. A parse that yields zero valid
// rows returns ErrEmptyImport: it signals a format mismatch, never an empty
// roster.
func (p *Parser) Parse(r io.Reader, filename string) ([]domain.Candidate, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, domain.ErrImportTooLarge
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(data)
	default:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadFormat, err)
	}

	candidates := make([]domain.Candidate, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		if len(row) < 2 {
			continue
		}
		email := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if name == "" || !domain.ValidEmail(email) {
			continue
		}
		candidates = append(candidates, domain.Candidate{Name: name, Email: email})
	}
	if len(candidates) == 0 {
		return nil, domain.ErrEmptyImport
	}
	return candidates, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
