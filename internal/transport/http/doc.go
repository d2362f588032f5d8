// Package http implements the HTTP handlers of the tabprep serve mode.
//
// Handlers only parse requests, call a service and render the response with
// chi/render; the pipeline itself lives in the services package.
//
// # Endpoints
//
//	GET  /healthz            liveness
//	GET  /readyz             readiness, 503 when the output directory is unusable
//	POST /api/v1/preprocess  run the pipeline over {"files": [...]}
//
// # Error Responses
//
// Request problems (malformed JSON, invalid entries, a run already in
// progress) are rendered as errors.APIError. A failed run is rendered as the
// same failure object the batch command prints, with the status code given
// by errors.HTTPStatus for its kind.
package http
