package httpstatus

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrHttpStatus = errors.New("non-ok http status")

// CheckStatus wraps an http.Client call, turning non-2xx responses into an
// error that carries the status line and a trimmed copy of the body.
func CheckStatus(r *http.Response, err error) (*http.Response, error) {
	if err != nil || StatusOK(r) {
		return r, err
	}
	if body, readErr := io.ReadAll(r.Body); readErr == nil {
		if bodyStr := strings.TrimSpace(string(body)); bodyStr != "" {
			return r, fmt.Errorf("%w: %v (%v)", ErrHttpStatus, r.Status, bodyStr)
		}
	}
	return r, fmt.Errorf("%w: %v", ErrHttpStatus, r.Status)
}

func StatusOK(r *http.Response) bool {
	return 200 <= r.StatusCode && r.StatusCode < 300
}
