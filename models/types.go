package models

import "time"

// Action names accepted by the results page
const (
	ActionDownloadCSV = "download_csv"
)

// TimeTakenLayout is how response timestamps are written to storage (UTC).
const TimeTakenLayout = "2006-01-02 15:04:05"

// Domain types

type Survey struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Deleted   bool       `json:"deleted"`
	CreatedAt time.Time  `json:"created_at"`
	Questions []Question `json:"questions"`
	Responses []Response `json:"responses"`
}

type Question struct {
	ID       int64  `json:"id"`
	SurveyID int64  `json:"survey_id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// question_id -> answer value
type Answers map[int64]string

type Response struct {
	ID        int64   `json:"id"`
	SurveyID  int64   `json:"survey_id"`
	Answers   Answers `json:"answers"`
	TimeTaken string  `json:"time_taken"` // stored in UTC
}

// Answer returns the value given for a question, or "" when the respondent
// has no answer stored for it.
func (r Response) Answer(questionID int64) string {
	return r.Answers[questionID]
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
