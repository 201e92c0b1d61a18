package fetcher

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HTTPError reports a non-2xx upstream response. Transport failures and
// HTTPErrors are treated identically by the retry path.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("market api error (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("market api error (%d)", e.Status)
}

type errorResponse struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Error string `json:"error"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Status.ErrorMessage != "" {
			return &HTTPError{Status: status, Detail: apiErr.Status.ErrorMessage}
		}
		if apiErr.Error != "" {
			return &HTTPError{Status: status, Detail: apiErr.Error}
		}
	}
	if len(payload) > 0 {
		return &HTTPError{Status: status, Detail: strings.TrimSpace(string(payload))}
	}
	return &HTTPError{Status: status}
}
