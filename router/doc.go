// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the results service.

	mux, err := router.NewRouter(db, cfg)

# Endpoints

	GET  /health                - Health check
	GET  /                      - Version banner
	GET  /results               - Results page for Config.SurveyID
	POST /results               - Same, parameters from a form post
	GET  /surveys/{id}/results  - Results page for survey {id}
	POST /surveys/{id}/results  - Same, parameters from a form post

Query/form parameters on the results routes:

	del=<id>              soft-delete survey <id> first
	action=download_csv   download the responses as CSV

Results routes are wrapped with middleware.WithLogging.
*/
package router
