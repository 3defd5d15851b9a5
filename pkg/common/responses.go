package common

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every endpoint returns
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo carries a machine-readable code alongside the message
type ErrorInfo struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MetaInfo annotates a response with request identity and, for registry
// listings, pagination
type MetaInfo struct {
	RequestID  string          `json:"request_id,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
	Version    string          `json:"version,omitempty"`
	Collection string          `json:"collection,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// PaginationInfo describes the page of a collection listing
type PaginationInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// RespondJSON writes data inside the standard envelope
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// RespondError writes an error envelope
func RespondError(w http.ResponseWriter, status int, code, message string) {
	writeEnvelope(w, status, APIResponse{
		Error: &ErrorInfo{Code: code, Message: message},
	})
}

// RespondWithMeta writes data with response metadata attached
func RespondWithMeta(w http.ResponseWriter, status int, data interface{}, meta *MetaInfo) {
	writeEnvelope(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
		Meta:    meta,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// ExtractRequestID resolves the request ID from forwarded headers, falling
// back to the value the request middleware stored in the context
func ExtractRequestID(r *http.Request) string {
	for _, header := range []string{"X-Request-ID", "X-Request-Id", "X-Amzn-Trace-Id"} {
		if id := r.Header.Get(header); id != "" {
			return id
		}
	}
	if id, ok := GetRequestID(r.Context()); ok {
		return id
	}
	return ""
}

// StandardErrorCodes names the error codes the analysis API emits
var StandardErrorCodes = struct {
	ValidationError    string
	NotFound           string
	Unauthorized       string
	TooManyRequests    string
	InternalError      string
	ServiceUnavailable string
}{
	ValidationError:    "VALIDATION_ERROR",
	NotFound:           "NOT_FOUND",
	Unauthorized:       "UNAUTHORIZED",
	TooManyRequests:    "TOO_MANY_REQUESTS",
	InternalError:      "INTERNAL_ERROR",
	ServiceUnavailable: "SERVICE_UNAVAILABLE",
}
