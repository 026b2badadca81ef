package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Doer is the transport capability the executor consumes. *http.Client
// satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// executor performs exactly one HTTP attempt and classifies the outcome.
type executor struct {
	conn      func() Doer
	userAgent string
	limiter   *rate.Limiter
}

// execute issues one request. Every failure is returned as an *Error.
func (x *executor) execute(ctx context.Context, logger zerolog.Logger, method, rawURL string, params url.Values) (*Response, error) {
	if x.limiter != nil {
		if err := x.limiter.Wait(ctx); err != nil {
			return nil, newClientError(ReasonTransport, 0, rawURL, "Rate limiter wait aborted", crerr.Wrap(err, "wait for rate limiter"))
		}
	}

	target := rawURL
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, newClientError(ReasonTransport, 0, rawURL, "Failed to build ESPN request", crerr.Wrap(err, "build request"))
	}
	if x.userAgent != "" {
		req.Header.Set("User-Agent", x.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug().
		Str("method", method).
		Str("url", rawURL).
		Str("params", params.Encode()).
		Msg("espn_request")

	resp, err := x.conn().Do(req)
	if err != nil {
		logger.Error().Err(err).Str("url", rawURL).Msg("espn_transport_error")
		return nil, newClientError(ReasonTransport, 0, rawURL, "ESPN request failed", crerr.Wrapf(err, "%s %s", method, rawURL))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	return classify(logger, resp, rawURL)
}

// classify maps a completed response onto the taxonomy, checking in order:
// 404, 429, 5xx, other 4xx, then JSON decoding.
func classify(logger zerolog.Logger, resp *http.Response, rawURL string) (*Response, error) {
	status := resp.StatusCode

	switch {
	case status == http.StatusNotFound:
		logger.Warn().Str("url", rawURL).Msg("espn_resource_not_found")
		return nil, newNotFound(rawURL)
	case status == http.StatusTooManyRequests:
		logger.Warn().Str("url", rawURL).Msg("espn_rate_limited")
		return nil, newRateLimited(rawURL)
	case status >= 500:
		logger.Error().Int("status_code", status).Str("url", rawURL).Msg("espn_server_error")
		return nil, newClientError(ReasonServer, status, rawURL, fmt.Sprintf("ESPN server error: %d", status), nil)
	case status >= 400:
		logger.Error().Int("status_code", status).Str("url", rawURL).Msg("espn_client_error")
		return nil, newClientError(ReasonAPI, status, rawURL, fmt.Sprintf("ESPN API error: %d", status), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Str("url", rawURL).Msg("espn_transport_error")
		return nil, newClientError(ReasonTransport, status, rawURL, "Failed to read ESPN response", crerr.Wrap(err, "read body"))
	}

	var data map[string]any
	if err := sonic.Unmarshal(body, &data); err != nil {
		logger.Error().Err(err).Str("url", rawURL).Msg("espn_json_parse_error")
		return nil, newClientError(ReasonParse, status, rawURL, "Failed to parse ESPN response", crerr.Wrap(err, "decode JSON body"))
	}
	if data == nil {
		logger.Error().Str("url", rawURL).Msg("espn_json_parse_error")
		return nil, newClientError(ReasonParse, status, rawURL, "Failed to parse ESPN response", crerr.New("body is not a JSON object"))
	}

	out := &Response{Data: data, StatusCode: status, URL: rawURL, FinalURL: rawURL}
	if resp.Request != nil && resp.Request.URL != nil {
		out.FinalURL = resp.Request.URL.String()
	}
	return out, nil
}
