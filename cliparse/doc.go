// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SurveyID: survey managed by /results (default: 14)
  - Timezone: IANA zone for Time Taken values (default: Asia/Manila)
  - View: html or json (default: html)

# CLI Flags and Environment Variables

	-p       PORT
	-d       DATABASE_URL
	-t       DATABASE_TYPE
	-survey  SURVEY_ID
	-tz      DISPLAY_TIMEZONE
	-view    RESULTS_VIEW

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing.

# Validation

ParseFlags returns an error if DATABASE_URL is missing, a numeric value
does not parse, the database type or view is unknown, or the timezone
cannot be loaded. Zone data is embedded, so the binary does not depend on
the host's zoneinfo.
*/
package cliparse
