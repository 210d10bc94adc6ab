// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"errors"
	"strings"
	"time"

	"github.com/danielhkuo/form-results/apperrors"
	"github.com/danielhkuo/form-results/models"
)

const DisplayLayout = "2006-01-02 15:04:05"

// Layouts accepted for stored timestamps. Values without an offset are UTC.
var storedLayouts = []string{
	models.TimeTakenLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05.999999999 MST",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006-01-02",
}

var errUnknownLayout = errors.New("not a recognised date/time")

// FormatTimeTaken reads a stored UTC timestamp and renders it in loc.
func FormatTimeTaken(stored string, loc *time.Location) (string, error) {
	value := strings.TrimSpace(stored)
	for _, layout := range storedLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t.In(loc).Format(DisplayLayout), nil
		}
	}
	return "", &apperrors.ParseError{Value: stored, Err: errUnknownLayout}
}
