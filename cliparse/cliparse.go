package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"

	ViewHTML = "html"
	ViewJSON = "json"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SurveyID     int64
	Timezone     string
	View         string
}

// Location resolves the display timezone. ParseFlags has already checked it loads.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ParseFlags validates flags and fills anything missing from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("form-results", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Results page settings
	fs.Int64Var(&cfg.SurveyID, "survey", 0, "Survey managed by /results")
	fs.StringVar(&cfg.Timezone, "tz", "", "Timezone for Time Taken values")
	fs.StringVar(&cfg.View, "view", "", "Results view (html or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.SurveyID == 0 {
		if idStr := os.Getenv("SURVEY_ID"); idStr != "" {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid SURVEY_ID env variable")
			}
			cfg.SurveyID = id
		} else {
			cfg.SurveyID = 14 // the results form this deployment manages
		}
	}

	if cfg.Timezone == "" {
		cfg.Timezone = os.Getenv("DISPLAY_TIMEZONE")
		if cfg.Timezone == "" {
			cfg.Timezone = "Asia/Manila"
		}
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.View == "" {
		cfg.View = os.Getenv("RESULTS_VIEW")
		if cfg.View == "" {
			cfg.View = ViewHTML
		}
	}
	if cfg.View != ViewHTML && cfg.View != ViewJSON {
		return Config{}, fmt.Errorf("unknown view %q", cfg.View)
	}

	return cfg, nil
}
