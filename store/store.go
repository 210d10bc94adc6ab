// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/form-results/apperrors"
	"github.com/danielhkuo/form-results/models"
)

// SQLStore reads and writes surveys through database/sql. Queries use $N
// placeholders, which both lib/pq and modernc.org/sqlite accept.
type SQLStore struct {
	db *sql.DB
}

func New(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// LoadSurvey returns the survey and its questions in display order.
// Soft-deleted surveys are still returned.
func (s *SQLStore) LoadSurvey(ctx context.Context, id int64) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.QueryRowContext(ctx, `
		SELECT id, survey_name, deleted, created_at
		FROM survey
		WHERE id = $1
	`, id).Scan(&survey.ID, &survey.Name, &survey.Deleted, &survey.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperrors.NotFoundError{Resource: "survey", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query survey: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_id, question_text, position
		FROM question
		WHERE survey_id = $1
		ORDER BY position, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	survey.Questions = []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Text, &q.Position); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		survey.Questions = append(survey.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	return &survey, nil
}

// MarkDeleted soft-deletes a survey. It reports whether a survey row matched.
func (s *SQLStore) MarkDeleted(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE survey SET deleted = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark survey deleted: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// LoadResponses returns every response to a survey in submission order.
func (s *SQLStore) LoadResponses(ctx context.Context, surveyID int64) ([]models.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, survey_id, time_taken
		FROM survey_response
		WHERE survey_id = $1
		ORDER BY id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.Response{}
	index := make(map[int64]int)
	for rows.Next() {
		resp := models.Response{Answers: models.Answers{}}
		if err := rows.Scan(&resp.ID, &resp.SurveyID, &resp.TimeTaken); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		index[resp.ID] = len(responses)
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}

	answerRows, err := s.db.QueryContext(ctx, `
		SELECT a.response_id, a.question_id, a.answer_value
		FROM survey_answer a
		JOIN survey_response r ON r.id = a.response_id
		WHERE r.survey_id = $1
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var responseID, questionID int64
		var value string
		if err := answerRows.Scan(&responseID, &questionID, &value); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		if i, ok := index[responseID]; ok {
			responses[i].Answers[questionID] = value
		}
	}
	if err := answerRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}

	return responses, nil
}

// CreateSurvey inserts a survey and returns its id
func (s *SQLStore) CreateSurvey(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO survey (survey_name, deleted, created_at)
		VALUES ($1, FALSE, $2)
		RETURNING id
	`, name, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert survey: %w", err)
	}
	return id, nil
}

// AddQuestion appends a question to a survey and returns its id
func (s *SQLStore) AddQuestion(ctx context.Context, surveyID int64, text string, position int) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO question (survey_id, question_text, position)
		VALUES ($1, $2, $3)
		RETURNING id
	`, surveyID, text, position).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	return id, nil
}

// AddResponse stores a submission and its answers in one transaction.
// timeTaken is stored in UTC.
func (s *SQLStore) AddResponse(ctx context.Context, surveyID int64, timeTaken time.Time, answers models.Answers) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO survey_response (survey_id, time_taken)
		VALUES ($1, $2)
		RETURNING id
	`, surveyID, timeTaken.UTC().Format(models.TimeTakenLayout)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert response: %w", err)
	}

	for questionID, value := range answers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO survey_answer (response_id, question_id, answer_value)
			VALUES ($1, $2, $3)
		`, id, questionID, value)
		if err != nil {
			return 0, fmt.Errorf("failed to insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit response: %w", err)
	}
	return id, nil
}
