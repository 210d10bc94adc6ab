// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain and response types for the results service.

# Domain Types

  - Survey: form definition with ordered questions and its responses
  - Question: question text and display position
  - Response: one submission; Answers maps question id to value
  - Answers: map[int64]string keyed by question id

A response with no stored value for a question reports an empty answer:

	value := resp.Answer(question.ID) // "" when missing

# Response Types

  - ErrorResponse: error, message

# Constants

Actions:

	ActionDownloadCSV = "download_csv"

Storage layout for Response.TimeTaken (always UTC):

	TimeTakenLayout = "2006-01-02 15:04:05"
*/
package models
