package models

import "time"

// ServiceLog is one structured audit entry emitted per handled request.
// Entries are shipped to the log sink fire-and-forget.
type ServiceLog struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Service    string    `json:"service"`
	Endpoint   string    `json:"endpoint"`
	HTTPMethod string    `json:"http_method"`
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	TraceID    string    `json:"trace_id"`
}
