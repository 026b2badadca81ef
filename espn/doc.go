// Package espn provides a client for the public ESPN sports data API.
//
// ESPN serves two JSON surfaces: the "site" API (scoreboards, teams, event
// summaries) and the "core" API (league metadata, athletes). This package
// builds request URLs for both, retries transient failures and returns the
// decoded payload in a Response. Converting a payload into typed entities is
// left to the model package.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Config: immutable settings validated at construction
//   - Executor: performs one HTTP attempt and classifies the outcome
//   - Retry: bounded exponential backoff around the executor
//   - Client: blocking endpoint client, one call per goroutine
//   - AsyncClient: returns a Call per request, awaited alone or with Gather
//   - Errors: a single *Error type matched against kind sentinels
//
// # Usage
//
//	cfg, err := espn.NewConfig(espn.WithMaxRetries(5))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := espn.NewClient(cfg, espn.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.GetScoreboard(ctx, "basketball", "nba",
//		espn.WithDate(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
//
// Concurrent calls with the async variant:
//
//	async, _ := espn.NewAsyncClient(cfg)
//	nba := async.GetScoreboard(ctx, "basketball", "nba")
//	nfl := async.GetScoreboard(ctx, "football", "nfl")
//	responses, err := espn.Gather(ctx, nba, nfl)
//
// # Connections
//
// Both clients create their *http.Client lazily, reuse it across calls and
// drop it on Close; the next call creates a new one. Both are safe to share
// between goroutines.
//
// # Error Handling
//
// Every failure crossing the package boundary is an *Error. Match the kind
// with errors.Is:
//
//   - ErrNotFound: HTTP 404, never retried
//   - ErrRateLimited: HTTP 429, retried
//   - ErrClient: 5xx, other 4xx, undecodable bodies and transport failures,
//     retried except for not-found
//   - ErrValidation: invalid Config values
//   - ErrIngestion: payloads the model package cannot map
//
// ErrNotFound and ErrRateLimited also match ErrClient, and every kind
// matches ErrService. When retries run out the last attempt's error is
// returned as is.
package espn
