package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError is a transport-level failure: the server never produced a
// response (unreachable host, timeout, connection reset).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. Message is already human-readable: a
// structured list of field errors is joined into one string.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// fieldError is one entry of a FastAPI-style validation detail list.
type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// messageFromBody extracts a readable message from an error response body.
// Handles `{"detail": "..."}"` and `{"detail": [{"loc": [...], "msg": "..."}]}`,
// falling back to the HTTP status text for anything else.
func messageFromBody(status int, body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Detail) > 0 {
		var s string
		if err := json.Unmarshal(env.Detail, &s); err == nil && s != "" {
			return s
		}
		var fields []fieldError
		if err := json.Unmarshal(env.Detail, &fields); err == nil && len(fields) > 0 {
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				if len(f.Loc) > 0 {
					locs := make([]string, len(f.Loc))
					for i, l := range f.Loc {
						locs[i] = fmt.Sprint(l)
					}
					parts = append(parts, strings.Join(locs, ".")+": "+f.Msg)
				} else {
					parts = append(parts, f.Msg)
				}
			}
			return strings.Join(parts, ", ")
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}
