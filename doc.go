// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the form results server.

The server shows the responses to a survey and lets staff download them as
a CSV file that opens cleanly in older spreadsheet software (Windows-1252).
It can also soft-delete a survey from the same page.

# Starting the Server

Settings come from CLI flags, environment variables, or a .env file:

	DATABASE_URL=results.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -survey 14

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string or SQLite file

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SURVEY_ID (-survey): survey shown at /results (default: 14)
  - DISPLAY_TIMEZONE (-tz): zone for Time Taken values (default: Asia/Manila)
  - RESULTS_VIEW (-view): html or json (default: html)

# Architecture

  - handlers: results page (delete, load, action dispatch, render)
  - export: CSV file name, encoding and date formatting
  - view: HTML and JSON renderers
  - store: survey persistence on database/sql
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain and response types
  - apperrors: error types and their HTTP statuses
  - db: driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
