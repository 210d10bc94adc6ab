// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/danielhkuo/form-results/cliparse"
	"github.com/danielhkuo/form-results/db"
	"github.com/danielhkuo/form-results/models"
	"github.com/danielhkuo/form-results/store"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration. SurveyID points at the
// first survey a test creates.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		SurveyID:     1,
		Timezone:     "Asia/Manila",
		View:         cliparse.ViewJSON,
	}
}

// CreateTestSurvey creates a survey with the given questions (in order) and
// returns the survey ID and question IDs
func CreateTestSurvey(t *testing.T, conn *sql.DB, name string, questions ...string) (int64, []int64) {
	t.Helper()

	ctx := context.Background()
	s := store.New(conn)

	surveyID, err := s.CreateSurvey(ctx, name)
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}

	questionIDs := make([]int64, 0, len(questions))
	for i, text := range questions {
		id, err := s.AddQuestion(ctx, surveyID, text, i+1)
		if err != nil {
			t.Fatalf("Failed to create test question: %v", err)
		}
		questionIDs = append(questionIDs, id)
	}

	return surveyID, questionIDs
}

// AddTestResponse stores a response with a raw time_taken value, which lets
// tests store values the application would never write
func AddTestResponse(t *testing.T, conn *sql.DB, surveyID int64, timeTaken string, answers models.Answers) int64 {
	t.Helper()

	var responseID int64
	err := conn.QueryRow(`
		INSERT INTO survey_response (survey_id, time_taken)
		VALUES ($1, $2)
		RETURNING id
	`, surveyID, timeTaken).Scan(&responseID)
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	for questionID, value := range answers {
		_, err := conn.Exec(`
			INSERT INTO survey_answer (response_id, question_id, answer_value)
			VALUES ($1, $2, $3)
		`, responseID, questionID, value)
		if err != nil {
			t.Fatalf("Failed to create test answer: %v", err)
		}
	}

	return responseID
}

// IsDeleted reports the soft-delete flag of a survey
func IsDeleted(t *testing.T, conn *sql.DB, surveyID int64) bool {
	t.Helper()

	var deleted bool
	if err := conn.QueryRow(`SELECT deleted FROM survey WHERE id = $1`, surveyID).Scan(&deleted); err != nil {
		t.Fatalf("Failed to read survey %d: %v", surveyID, err)
	}
	return deleted
}

// MakeRequest creates an HTTP test request. For POST the form is sent as the
// body, otherwise it is encoded into the query string.
func MakeRequest(method, path string, form url.Values) *http.Request {
	if method == http.MethodPost {
		req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	if len(form) > 0 {
		path += "?" + form.Encode()
	}
	return httptest.NewRequest(method, path, nil)
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// DecodeCSV reads a Windows-1252 CSV body back into UTF-8 records
func DecodeCSV(t *testing.T, body []byte) [][]string {
	t.Helper()

	utf8, err := charmap.Windows1252.NewDecoder().Bytes(body)
	if err != nil {
		t.Fatalf("Failed to decode Windows-1252 body: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(utf8)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV body: %v", err)
	}
	return records
}
