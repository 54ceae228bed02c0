package httperror

import "fmt"

// ClientError reports a non-200 response from a remote service,
// keeping the upstream status code for the caller to surface.
type ClientError struct {
	Code    int
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("status: %d message: %s", e.Code, e.Message)
}
