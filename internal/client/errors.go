package client

import (
	"errors"
	"fmt"

	"github.com/2beens/fitlog/internal/apierr"
)

var ErrNotSignedIn = errors.New("not signed in")

// APIError is a non 2xx response decoded from the error envelope.
type APIError struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// IsReauthRequired reports whether err means the stored token is no longer usable
// and the user has to sign in again.
func IsReauthRequired(err error) bool {
	if errors.Is(err, ErrNotSignedIn) {
		return true
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == apierr.CodeAuth || apiErr.Code == apierr.CodeTokenExpired
}

// HasCode reports whether err is an APIError with the given code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
