// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/form-results/apperrors"
	"github.com/danielhkuo/form-results/cliparse"
	"github.com/danielhkuo/form-results/export"
	"github.com/danielhkuo/form-results/middleware"
	"github.com/danielhkuo/form-results/models"
	"github.com/danielhkuo/form-results/view"
)

// SurveyStore is the persistence the results page needs.
type SurveyStore interface {
	LoadSurvey(ctx context.Context, id int64) (*models.Survey, error)
	MarkDeleted(ctx context.Context, id int64) (bool, error)
	LoadResponses(ctx context.Context, surveyID int64) ([]models.Response, error)
}

// ActionFunc handles a named action. An action owns the response: nothing
// is rendered after it returns. A returned error is only reported to the
// client if the action has not written anything yet.
type ActionFunc func(w http.ResponseWriter, r *http.Request, survey *models.Survey) error

// ResultsRequest holds the intake parameters of the results page.
type ResultsRequest struct {
	SurveyID int64  `form:"form_id" validate:"required,gt=0"`
	Delete   int64  `form:"del"`
	Action   string `form:"action" validate:"omitempty,max=64"`
}

type ResultsHandler struct {
	store    SurveyStore
	cfg      cliparse.Config
	loc      *time.Location
	view     view.Renderer
	actions  map[string]ActionFunc
	validate *validator.Validate
}

// NewResultsHandler fails if cfg.Timezone cannot be loaded, since every
// Time Taken value would otherwise be rendered in the wrong zone.
func NewResultsHandler(store SurveyStore, cfg cliparse.Config) (*ResultsHandler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("display timezone %q: %w", cfg.Timezone, err)
	}

	var renderer view.Renderer = view.NewHTML(loc)
	if cfg.View == cliparse.ViewJSON {
		renderer = view.JSON{}
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})

	h := &ResultsHandler{
		store:    store,
		cfg:      cfg,
		loc:      loc,
		view:     renderer,
		actions:  map[string]ActionFunc{},
		validate: validate,
	}
	h.RegisterAction(models.ActionDownloadCSV, h.DownloadCSV)
	return h, nil
}

// RegisterAction adds or replaces the handler for an action name
func (h *ResultsHandler) RegisterAction(name string, fn ActionFunc) {
	h.actions[name] = fn
}

// ManageResults handles GET|POST /results for the configured survey
func (h *ResultsHandler) ManageResults(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.cfg.SurveyID)
}

// ManageSurveyResults handles GET|POST /surveys/{id}/results
func (h *ResultsHandler) ManageSurveyResults(w http.ResponseWriter, r *http.Request) {
	surveyID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.serveTarget(w, r, 0, &apperrors.ValidationError{Field: "id", Message: "must be a number"})
		return
	}
	h.serve(w, r, surveyID)
}

func (h *ResultsHandler) serve(w http.ResponseWriter, r *http.Request, surveyID int64) {
	h.serveTarget(w, r, surveyID, nil)
}

// serveTarget runs the request pipeline. targetErr reports a target that
// could not be read from the route; it is returned after the delete step,
// like any other validation failure.
func (h *ResultsHandler) serveTarget(w http.ResponseWriter, r *http.Request, surveyID int64, targetErr error) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, &apperrors.ValidationError{Field: "form", Message: "malformed parameters"})
		return
	}

	req := ResultsRequest{
		SurveyID: surveyID,
		Delete:   positiveInt(r.Form.Get("del")),
		Action:   r.Form.Get("action"),
	}

	survey, err := h.loadSurvey(r.Context(), req, targetErr)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, requested := r.Form["action"]; requested {
		if action, ok := h.actions[req.Action]; ok {
			if err := action(w, r, survey); err != nil {
				h.fail(w, r, err)
			}
			return
		}
		slog.Info("ignoring unknown action", "action", req.Action, "request_id", middleware.RequestID(r.Context()))
	}

	if err := h.view.Render(w, r, survey); err != nil {
		h.fail(w, r, err)
	}
}

// loadSurvey soft-deletes req.Delete (if set) and then loads the target
// survey with its responses. The delete runs first and is independent of
// the target, so deleting the target still renders it.
func (h *ResultsHandler) loadSurvey(ctx context.Context, req ResultsRequest, targetErr error) (*models.Survey, error) {
	if req.Delete > 0 {
		marked, err := h.store.MarkDeleted(ctx, req.Delete)
		if err != nil {
			return nil, err
		}
		if marked {
			slog.Info("survey marked deleted", "survey_id", req.Delete, "request_id", middleware.RequestID(ctx))
		} else {
			slog.Warn("survey to delete not found", "survey_id", req.Delete, "request_id", middleware.RequestID(ctx))
		}
	}

	if targetErr != nil {
		return nil, targetErr
	}
	if err := h.validateRequest(req); err != nil {
		return nil, err
	}

	survey, err := h.store.LoadSurvey(ctx, req.SurveyID)
	if err != nil {
		return nil, err
	}

	survey.Responses, err = h.store.LoadResponses(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	return survey, nil
}

func (h *ResultsHandler) validateRequest(req ResultsRequest) error {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	message := "is invalid"
	switch fe.Tag() {
	case "required":
		message = "must be specified"
	case "gt":
		message = "must be a positive integer"
	case "max":
		message = "is too long"
	}
	return &apperrors.ValidationError{Field: fe.Field(), Message: message}
}

// DownloadCSV sends the survey responses as a Windows-1252 CSV attachment.
func (h *ResultsHandler) DownloadCSV(w http.ResponseWriter, r *http.Request, survey *models.Survey) error {
	data, err := export.Build(survey, h.loc)
	if err != nil {
		return err
	}

	w.Header().Set("Pragma", "private")
	w.Header().Set("Cache-Control", "private, must-revalidate")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName(survey.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		// Headers are already sent, so the client only sees a short body
		slog.Error("failed to write csv export", "survey_id", survey.ID, "error", err)
		return nil
	}

	slog.Info("survey exported",
		"survey_id", survey.ID,
		"rows", len(survey.Responses),
		"size", humanize.Bytes(uint64(len(data))),
		"request_id", middleware.RequestID(r.Context()),
	)
	return nil
}

func (h *ResultsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		slog.Error("results request failed", "error", err, "request_id", middleware.RequestID(r.Context()))
	}
	middleware.ErrorResponse(w, status, apperrors.Message(err))
}

// positiveInt parses s, returning 0 for anything that is not a positive integer
func positiveInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
