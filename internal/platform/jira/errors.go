package jira

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError reports a write call that Jira answered with a non-2xx status.
// Body is the response body, verbatim.
type RemoteError struct {
	Method   string
	Resource string
	Status   int
	Body     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Resource, e.Status, e.Body)
}

// IsNotFound checks if an error is a RemoteError with status 404.
func IsNotFound(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound
}

// IsUnauthorized checks if an error is a RemoteError with status 401 or 403.
func IsUnauthorized(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) &&
		(remoteErr.Status == http.StatusUnauthorized || remoteErr.Status == http.StatusForbidden)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
