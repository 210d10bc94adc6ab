// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements survey persistence on database/sql.

	s := store.New(conn)
	survey, err := s.LoadSurvey(ctx, 14)      // *apperrors.NotFoundError if missing
	responses, err := s.LoadResponses(ctx, 14) // submission order
	marked, err := s.MarkDeleted(ctx, 5)       // soft delete, false if no row

CreateSurvey, AddQuestion and AddResponse populate the tables for seeding
and tests. Answers are stored one row per question, so a response that
skipped a question simply has no entry in Response.Answers.
*/
package store
