// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the results service.

# ResultsHandler

ResultsHandler is created with a SurveyStore and Config:

	resultsHandler, err := handlers.NewResultsHandler(store.New(db), cfg)

NewResultsHandler returns an error if cfg.Timezone cannot be loaded.

Each request runs in a fixed order:

 1. If del is a positive integer, that survey is soft-deleted.
 2. The target survey (Config.SurveyID, or the {id} path value) is
    validated and loaded with its responses.
 3. If an action parameter is present and registered, the action handles
    the rest of the request. Unknown actions are ignored.
 4. Otherwise the survey is rendered (HTML table or JSON).

Parameters may come from the query string or a form post.

# Actions

	download_csv → DownloadCSV (Windows-1252 CSV attachment)

More actions can be added without touching dispatch:

	resultsHandler.RegisterAction("archive", archiveFunc)

# Errors

Errors are mapped by apperrors.StatusCode: ValidationError 400,
NotFoundError 404, everything else 500. No error is written after an
action has started its response.
*/
package handlers
