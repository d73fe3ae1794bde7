package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"census/internal/models"
)

// requiredColumns must be present in the header row
var requiredColumns = []string{
	"id", "state", "abbr",
	"poverty", "age", "income", "healthcare", "obesity", "smokes",
}

// CSVLoader implements Loader for plain CSV resources
type CSVLoader struct {
	root string
}

// NewCSVLoader creates a CSV loader resolving relative paths against root
func NewCSVLoader(root string) *CSVLoader {
	return &CSVLoader{root: root}
}

// Method returns the loader type
func (l *CSVLoader) Method() string {
	return "csv"
}

// Load implements the Loader interface
func (l *CSVLoader) Load(ctx context.Context, path string) ([]models.Record, error) {
	rc, err := open(ctx, l.root, path)
	if err != nil {
		return nil, NewLoadError(StageFetch, path, err)
	}
	defer rc.Close()

	return decode(ctx, rc, path)
}

// Cleanup is a no-op for CSV resources
func (l *CSVLoader) Cleanup() error {
	return nil
}

// decode reads a census CSV stream into validated records
func decode(ctx context.Context, r io.Reader, path string) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, NewLoadError(StageHeader, path, fmt.Errorf("failed to read CSV headers: %w", err))
	}

	headerMap := make(map[string]int, len(headers))
	for i, header := range headers {
		headerMap[strings.TrimSpace(header)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := headerMap[col]; !ok {
			return nil, NewLoadError(StageHeader, path, fmt.Errorf("missing column %q", col))
		}
	}

	var records []models.Record
	seen := make(map[string]int)
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, NewLoadError(StageParse, path, err)
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, NewLoadError(StageParse, path, fmt.Errorf("failed to read CSV row: %w", err))
		}

		rec, err := parseRow(headerMap, row)
		if err != nil {
			return nil, NewLoadError(StageParse, path, fmt.Errorf("line %d: %w", line, err))
		}
		if err := rec.Validate(); err != nil {
			return nil, NewLoadError(StageValidate, path, fmt.Errorf("line %d: %w", line, err))
		}
		if prev, dup := seen[rec.Abbr]; dup {
			return nil, NewLoadError(StageValidate, path,
				fmt.Errorf("line %d: duplicate abbreviation %q (first seen on line %d)", line, rec.Abbr, prev))
		}
		seen[rec.Abbr] = line
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, NewLoadError(StageValidate, path, errors.New("dataset has no records"))
	}

	log.Printf("Finished reading CSV, loaded %d records", len(records))
	return records, nil
}

// rowReader pulls typed fields out of a single CSV row
type rowReader struct {
	headers map[string]int
	row     []string
	err     error
}

func (rr *rowReader) text(col string) string {
	idx, ok := rr.headers[col]
	if !ok || idx >= len(rr.row) {
		return ""
	}
	return strings.TrimSpace(rr.row[idx])
}

func (rr *rowReader) number(col string) float64 {
	if rr.err != nil {
		return 0
	}
	s := rr.text(col)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		rr.err = fmt.Errorf("column %s: invalid number %q", col, s)
		return 0
	}
	return v
}

// optional parses col when the header declares it, zero otherwise
func (rr *rowReader) optional(col string) float64 {
	if _, ok := rr.headers[col]; !ok || rr.text(col) == "" {
		return 0
	}
	return rr.number(col)
}

func parseRow(headers map[string]int, row []string) (models.Record, error) {
	rr := &rowReader{headers: headers, row: row}

	rec := models.Record{
		State:      rr.text("state"),
		Abbr:       rr.text("abbr"),
		Poverty:    rr.number("poverty"),
		Age:        rr.number("age"),
		Income:     rr.number("income"),
		Healthcare: rr.number("healthcare"),
		Obesity:    rr.number("obesity"),
		Smokes:     rr.number("smokes"),

		PovertyMoe:     rr.optional("povertyMoe"),
		AgeMoe:         rr.optional("ageMoe"),
		IncomeMoe:      rr.optional("incomeMoe"),
		HealthcareLow:  rr.optional("healthcareLow"),
		HealthcareHigh: rr.optional("healthcareHigh"),
		ObesityLow:     rr.optional("obesityLow"),
		ObesityHigh:    rr.optional("obesityHigh"),
		SmokesLow:      rr.optional("smokesLow"),
		SmokesHigh:     rr.optional("smokesHigh"),
	}
	if rr.err != nil {
		return rec, rr.err
	}

	id, err := strconv.Atoi(rr.text("id"))
	if err != nil {
		return rec, fmt.Errorf("column id: invalid integer %q", rr.text("id"))
	}
	rec.ID = id
	return rec, nil
}
