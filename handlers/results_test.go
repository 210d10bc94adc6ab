// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/form-results/cliparse"
	"github.com/danielhkuo/form-results/models"
	"github.com/danielhkuo/form-results/store"
	"github.com/danielhkuo/form-results/testutil"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newTestHandler(t *testing.T, db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	t.Helper()
	handler, err := NewResultsHandler(store.New(db), cfg)
	require.NoError(t, err)
	return handler
}

func TestManageResults_Render(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	surveyID, qIDs := testutil.CreateTestSurvey(t, db, "Q1 Survey!!", "Name", "Comment")
	testutil.AddTestResponse(t, db, surveyID, "2023-06-01 10:00:00", models.Answers{qIDs[0]: "Ana", qIDs[1]: "Great"})

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = surveyID
	handler := newTestHandler(t, db, cfg)

	w := httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	var survey models.Survey
	testutil.AssertJSON(t, w, &survey)
	assert.Equal(t, surveyID, survey.ID)
	assert.Equal(t, "Q1 Survey!!", survey.Name)
	require.Len(t, survey.Questions, 2)
	require.Len(t, survey.Responses, 1)
	assert.Equal(t, "Great", survey.Responses[0].Answer(qIDs[1]))
}

func TestManageResults_DownloadCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	surveyID, qIDs := testutil.CreateTestSurvey(t, db, "Q1 Survey!!", "Name", "Favourite dish", "Comment")
	testutil.AddTestResponse(t, db, surveyID, "2023-06-01 10:00:00", models.Answers{qIDs[0]: "José", qIDs[1]: "Crème brûlée", qIDs[2]: `Said "wow", twice`})
	// Second respondent skipped the dish question
	testutil.AddTestResponse(t, db, surveyID, "2023-06-01 17:15:30", models.Answers{qIDs[0]: "Ann", qIDs[2]: "ok"})

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = surveyID
	handler := newTestHandler(t, db, cfg)

	w := httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"action": {"download_csv"}}))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "private", w.Header().Get("Pragma"))
	assert.Equal(t, "private, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Q1_Survey.csv", w.Header().Get("Content-Disposition"))

	records := testutil.DecodeCSV(t, w.Body.Bytes())

	// 3 questions, 2 responses
	require.Len(t, records, 3)
	for _, row := range records {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, []string{"Name", "Favourite dish", "Comment", "Time Taken"}, records[0])
	assert.Equal(t, []string{"José", "Crème brûlée", `Said "wow", twice`, "2023-06-01 18:00:00"}, records[1])
	assert.Equal(t, []string{"Ann", "", "ok", "2023-06-02 01:15:30"}, records[2])
}

func TestManageResults_DownloadCSV_NoResponses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	surveyID, _ := testutil.CreateTestSurvey(t, db, "Empty", "Only question")

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = surveyID
	handler := newTestHandler(t, db, cfg)

	w := httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"action": {"download_csv"}}))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "Only question,Time Taken\n", w.Body.String())
}

func TestManageResults_UnknownActionFallsThrough(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	surveyID, _ := testutil.CreateTestSurvey(t, db, "Survey", "Q")

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = surveyID
	handler := newTestHandler(t, db, cfg)

	for _, action := range []string{"noop", ""} {
		t.Run("action="+action, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"action": {action}}))

			testutil.AssertStatus(t, w, http.StatusOK)
			assert.Empty(t, w.Header().Get("Content-Disposition"))
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var survey models.Survey
			testutil.AssertJSON(t, w, &survey)
			assert.Equal(t, surveyID, survey.ID)
		})
	}
}

func TestManageResults_DeleteThenRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	targetID, _ := testutil.CreateTestSurvey(t, db, "Target", "Q")
	otherID, _ := testutil.CreateTestSurvey(t, db, "Other", "Q")

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = targetID
	handler := newTestHandler(t, db, cfg)

	t.Run("delete another survey", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ManageResults(w, testutil.MakeRequest("POST", "/results", url.Values{"del": {itoa(otherID)}}))

		testutil.AssertStatus(t, w, http.StatusOK)
		assert.True(t, testutil.IsDeleted(t, db, otherID))
		assert.False(t, testutil.IsDeleted(t, db, targetID))

		var survey models.Survey
		testutil.AssertJSON(t, w, &survey)
		assert.Equal(t, targetID, survey.ID)
		assert.False(t, survey.Deleted)
	})

	t.Run("delete the target itself", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"del": {itoa(targetID)}}))

		// Soft delete keeps the survey readable in the same request
		testutil.AssertStatus(t, w, http.StatusOK)

		var survey models.Survey
		testutil.AssertJSON(t, w, &survey)
		assert.Equal(t, targetID, survey.ID)
		assert.True(t, survey.Deleted)
	})

	t.Run("delete a missing survey", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"del": {"999"}}))

		testutil.AssertStatus(t, w, http.StatusOK)
	})
}

func TestManageResults_IgnoresInvalidDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	targetID, _ := testutil.CreateTestSurvey(t, db, "Target", "Q")

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = targetID
	handler := newTestHandler(t, db, cfg)

	for _, del := range []string{"0", "-1", "abc", ""} {
		t.Run("del="+del, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"del": {del}}))

			testutil.AssertStatus(t, w, http.StatusOK)
			assert.False(t, testutil.IsDeleted(t, db, targetID))
		})
	}
}

func TestManageResults_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.CreateTestSurvey(t, db, "Exists", "Q")

	tests := []struct {
		name           string
		surveyID       int64
		expectedStatus int
		expectedText   string
	}{
		{"survey not configured", 0, http.StatusBadRequest, "form_id: must be specified"},
		{"negative survey id", -4, http.StatusBadRequest, "form_id: must be a positive integer"},
		{"survey not found", 99, http.StatusNotFound, "survey 99 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.GetTestConfig()
			cfg.SurveyID = tt.surveyID
			handler := newTestHandler(t, db, cfg)

			w := httptest.NewRecorder()
			handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"action": {"download_csv"}}))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			assert.Empty(t, w.Header().Get("Content-Disposition"))

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, tt.expectedText, resp.Message)
		})
	}
}

func TestManageResults_DeleteRunsBeforeValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	otherID, _ := testutil.CreateTestSurvey(t, db, "Other", "Q")

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = 0
	handler := newTestHandler(t, db, cfg)

	w := httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"del": {itoa(otherID)}}))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	assert.True(t, testutil.IsDeleted(t, db, otherID))
}

func TestManageResults_UnparsableTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	surveyID, qIDs := testutil.CreateTestSurvey(t, db, "Broken", "Q")
	testutil.AddTestResponse(t, db, surveyID, "2023-06-01 10:00:00", models.Answers{qIDs[0]: "fine"})
	testutil.AddTestResponse(t, db, surveyID, "sometime last week", models.Answers{qIDs[0]: "broken"})

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = surveyID
	handler := newTestHandler(t, db, cfg)

	w := httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"action": {"download_csv"}}))

	// No partial file: error JSON instead of a CSV attachment
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotContains(t, w.Body.String(), "fine")
}

func TestManageSurveyResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.CreateTestSurvey(t, db, "Configured", "Q")
	pathID, _ := testutil.CreateTestSurvey(t, db, "From Path", "Q")

	handler := newTestHandler(t, db, testutil.GetTestConfig())

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"valid id", itoa(pathID), http.StatusOK},
		{"not a number", "abc", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
		{"missing survey", "404", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/surveys/"+tt.id+"/results", url.Values{"action": {"download_csv"}})
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.ManageSurveyResults(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "attachment; filename=From_Path.csv", w.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestManageSurveyResults_DeleteBeforeBadPathID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	otherID, _ := testutil.CreateTestSurvey(t, db, "Other", "Q")
	handler := newTestHandler(t, db, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/surveys/abc/results", url.Values{"del": {itoa(otherID)}})
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	handler.ManageSurveyResults(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "id: must be a number", resp.Message)
	assert.True(t, testutil.IsDeleted(t, db, otherID))
}

func TestNewResultsHandler_InvalidTimezone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.Timezone = "Mars/Olympus_Mons"

	handler, err := NewResultsHandler(store.New(db), cfg)
	require.Error(t, err)
	assert.Nil(t, handler)
	assert.Contains(t, err.Error(), "Mars/Olympus_Mons")
}

func TestRegisterAction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	surveyID, _ := testutil.CreateTestSurvey(t, db, "Survey", "Q")

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = surveyID
	handler := newTestHandler(t, db, cfg)

	var called *models.Survey
	handler.RegisterAction("count", func(w http.ResponseWriter, r *http.Request, survey *models.Survey) error {
		called = survey
		w.WriteHeader(http.StatusAccepted)
		return nil
	})
	handler.RegisterAction("explode", func(w http.ResponseWriter, r *http.Request, survey *models.Survey) error {
		return errors.New("boom")
	})

	w := httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"action": {"count"}}))
	testutil.AssertStatus(t, w, http.StatusAccepted)
	require.NotNil(t, called)
	assert.Equal(t, surveyID, called.ID)
	assert.Empty(t, w.Body.String())

	w = httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", url.Values{"action": {"explode"}}))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

func TestManageResults_HTMLView(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	surveyID, qIDs := testutil.CreateTestSurvey(t, db, "Lunch", "Main")
	testutil.AddTestResponse(t, db, surveyID, "2023-06-01 10:00:00", models.Answers{qIDs[0]: "Adobo"})

	cfg := testutil.GetTestConfig()
	cfg.SurveyID = surveyID
	cfg.View = cliparse.ViewHTML
	handler := newTestHandler(t, db, cfg)

	w := httptest.NewRecorder()
	handler.ManageResults(w, testutil.MakeRequest("GET", "/results", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "<td>Adobo</td><td>2023-06-01 18:00:00</td>")
}

func TestPositiveInt(t *testing.T) {
	assert.Equal(t, int64(5), positiveInt("5"))
	assert.Equal(t, int64(0), positiveInt("0"))
	assert.Equal(t, int64(0), positiveInt("-5"))
	assert.Equal(t, int64(0), positiveInt("5abc"))
	assert.Equal(t, int64(0), positiveInt(""))
}
