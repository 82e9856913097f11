package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrNotFound     = errors.New("platform: not found")
	ErrUnauthorized = errors.New("platform: unauthorized")
	ErrConflict     = errors.New("platform: conflict")
)

// StatusError preserves the platform's HTTP status and message for statuses
// the portal has no sentinel for.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform: status %d", e.Status)
	}
	return fmt.Sprintf("platform: status %d: %s", e.Status, e.Message)
}

func decodeAPIError(resp *http.Response) error {
	message := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	default:
		return &StatusError{Status: resp.StatusCode, Message: message}
	}
}

func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Message   string `json:"message"`
		Msg       string `json:"msg"`
		ErrorDesc string `json:"error_description"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}

	for _, candidate := range []string{payload.Message, payload.Msg, payload.ErrorDesc} {
		if strings.TrimSpace(candidate) != "" {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}
