// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/form-results/export"
	"github.com/danielhkuo/form-results/middleware"
	"github.com/danielhkuo/form-results/models"
)

// Renderer writes the results page for a survey when no action ran.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, survey *models.Survey) error
}

// JSON renders the survey document for API clients
type JSON struct{}

func (JSON) Render(w http.ResponseWriter, r *http.Request, survey *models.Survey) error {
	middleware.JSONResponse(w, http.StatusOK, survey)
	return nil
}

// HTML renders the results table with a CSV download link.
type HTML struct {
	loc *time.Location
}

func NewHTML(loc *time.Location) *HTML {
	return &HTML{loc: loc}
}

type resultsPage struct {
	Survey    *models.Survey
	Header    []string
	Rows      [][]string
	Count     string
	CreatedAt string
	Action    string
}

func (h *HTML) Render(w http.ResponseWriter, r *http.Request, survey *models.Survey) error {
	records, err := export.Records(survey, h.loc)
	if err != nil {
		return err
	}

	page := resultsPage{
		Survey:    survey,
		Header:    records[0],
		Rows:      records[1:],
		Count:     humanize.Comma(int64(len(survey.Responses))),
		CreatedAt: humanize.Time(survey.CreatedAt),
		Action:    models.ActionDownloadCSV,
	}

	var buf bytes.Buffer
	if err := resultsTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to render results page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

var resultsTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Survey.Name}} - Results</title>
</head>
<body>
<h1>{{.Survey.Name}}{{if .Survey.Deleted}} <small>(deleted)</small>{{end}}</h1>
<p>{{.Count}} responses &middot; created {{.CreatedAt}}</p>
<p><a href="?action={{.Action}}">Download CSV</a></p>
<table>
<thead>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))
