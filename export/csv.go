// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/danielhkuo/form-results/models"
)

const TimeTakenHeader = "Time Taken"

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// FileName derives the download name from a survey name:
// spaces become underscores, anything outside [A-Za-z0-9_-] is dropped.
func FileName(surveyName string) string {
	base := unsafeFileChars.ReplaceAllString(strings.ReplaceAll(surveyName, " ", "_"), "")
	// A bare ".csv" would download as a hidden file with no name
	if base == "" {
		base = "survey"
	}
	return base + ".csv"
}

// Records builds the header row (question texts + Time Taken) and one row
// per response, questions in survey order. Text is still UTF-8 here.
func Records(survey *models.Survey, loc *time.Location) ([][]string, error) {
	records := make([][]string, 0, len(survey.Responses)+1)

	header := make([]string, 0, len(survey.Questions)+1)
	for _, q := range survey.Questions {
		header = append(header, q.Text)
	}
	header = append(header, TimeTakenHeader)
	records = append(records, header)

	for _, resp := range survey.Responses {
		row := make([]string, 0, len(survey.Questions)+1)
		for _, q := range survey.Questions {
			row = append(row, resp.Answer(q.ID))
		}
		taken, err := FormatTimeTaken(resp.TimeTaken, loc)
		if err != nil {
			return nil, fmt.Errorf("response %d: %w", resp.ID, err)
		}
		row = append(row, taken)
		records = append(records, row)
	}

	return records, nil
}

// NewWindows1252Writer returns a writer that transcodes UTF-8 input to
// Windows-1252. Runes with no Windows-1252 byte are written as the SUB
// control character (0x1A). Close flushes any buffered bytes.
func NewWindows1252Writer(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
}

// WriteCSV writes records as Windows-1252 encoded CSV.
func WriteCSV(w io.Writer, records [][]string) error {
	tw := NewWindows1252Writer(w)

	cw := csv.NewWriter(tw)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Build renders the complete export in memory so a failure part way through
// never reaches the client as a truncated file.
func Build(survey *models.Survey, loc *time.Location) ([]byte, error) {
	records, err := Records(survey, loc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
