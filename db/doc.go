// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from Config.DatabaseType:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, used for local runs and tests)

	conn, err := db.Open(cfg)

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - survey: survey name and soft-delete flag
  - question: question text and position per survey
  - survey_response: one row per submission, time_taken stored as UTC text
  - survey_answer: one value per (response, question)

# Relationships

	survey 1──* question
	survey 1──* survey_response
	survey_response 1──* survey_answer *──1 question

All foreign keys use ON DELETE CASCADE. Surveys are never removed by the
application; deletion only sets survey.deleted.
*/
package db
