// Package audit emits an append-only trail of credential and registry
// actions. Events are fire-and-forget: a delivery failure is logged and never
// fails the request that produced it.
package audit

import (
	"context"
	"time"

	"vcgate/internal/platform/middleware"
)

type Action string

const (
	ActionCredentialIssued     Action = "credential.issued"
	ActionCredentialVerified   Action = "credential.verified"
	ActionPresentationIssued   Action = "presentation.issued"
	ActionPresentationVerified Action = "presentation.verified"
	ActionDeviceRegistered     Action = "device.registered"
	ActionDeviceUpdated        Action = "device.updated"
	ActionIPBlocked            Action = "ip.blocked"
	ActionIPUnblocked          Action = "ip.unblocked"
)

// Event is one audit record. SubjectID may be empty for unauthenticated
// surfaces such as the blocklist.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	SubjectID string    `json:"subjectId,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	ClientIP  string    `json:"clientIp,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Publisher delivers audit events to the configured sink.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// FromRequestContext fills the request-scoped fields of an event from the
// middleware context.
func FromRequestContext(ctx context.Context, event Event) Event {
	event.RequestID = middleware.GetRequestID(ctx)

	meta := middleware.GetClientMetadata(ctx)
	event.ClientIP = meta.IP
	event.UserAgent = meta.RawAgent

	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	return event
}
