// Package upstream holds helpers shared by the outbound API clients.
package upstream

import (
	"errors"
	"net/url"

	"golang.org/x/time/rate"
)

const redacted = "REDACTED"

// secretParams are query parameters that carry credentials
var secretParams = []string{"key"}

// NewLimiter returns the outbound throttle. rps <= 0 disables it.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// RedactURLError masks credentials in the URL of a transport error.
// http.Client.Do reports failures as *url.Error with the full request URL,
// which would otherwise put API keys into logs and wrapped errors.
func RedactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	clean := *urlErr
	clean.URL = RedactURL(urlErr.URL)
	return &clean
}

// RedactURL replaces the values of credential query parameters
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}
	q := u.Query()
	changed := false
	for _, name := range secretParams {
		if q.Has(name) {
			q.Set(name, redacted)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
