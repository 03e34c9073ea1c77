package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ErrorKind classifies a failed call against the upstream API so call sites
// can branch on the class of failure instead of probing error shapes.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation is a local pre-flight rejection; no request was sent.
	KindValidation
	// KindHTTPStatus is a response with a non-2xx status.
	KindHTTPStatus
	// KindNetwork covers transport and decode failures.
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindHTTPStatus:
		return "http_status"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by Client methods. Detail is always
// user-presentable: for HTTP failures it is the upstream "detail" field when
// one was sent, otherwise the generic fallback for that call.
type Error struct {
	Kind   ErrorKind
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Detail)
}

// Detail returns the user-presentable message from err when it is an API
// error, else the fallback.
func Detail(err error, fallback string) string {
	if apiErr, ok := err.(*Error); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Detail: err.Error()}
}

// statusError extracts the upstream "detail" field from an error response
// body, falling back to the supplied generic message.
func statusError(resp *http.Response, fallback string) *Error {
	detail := fallback
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			detail = payload.Detail
		}
	}
	return &Error{Kind: KindHTTPStatus, Status: resp.StatusCode, Detail: detail}
}
