// Package http provides net/http implementations of the larder fetch
// interfaces: direct page fetches, fetches through a text-extraction proxy,
// image downloads and oEmbed thumbnail lookups.
package http

import (
	"fmt"
	"net/http"

	"github.com/fwojciec/larder"
)

// UserAgent is a desktop Chrome user agent. Some hosts serve stripped
// pages or refuse requests without a browser-like agent.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0 Safari/537.36"

// Accept headers.
const (
	AcceptHTML  = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	AcceptImage = "image/avif,image/webp,image/apng,image/*,*/*;q=0.8"
)

// setBrowserHeaders sets the headers a browser sends on a fresh page load.
func setBrowserHeaders(req *http.Request, accept string) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Cache-Control", "no-cache")
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Unwrap exposes the failure as an application error: ENOTFOUND for 404
// and 410, EUNAVAILABLE otherwise.
func (e *StatusError) Unwrap() error {
	code := larder.EUNAVAILABLE
	if e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone {
		code = larder.ENOTFOUND
	}
	return larder.Errorf(code, "%s", e.Error())
}

func checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return nil
}
