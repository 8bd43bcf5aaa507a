// Package audit provides the security-audit sink used by the service layer.
//
// Audit events are structured records of security-relevant occurrences:
// authentication attempts, privilege checks, data access, and anomalies such
// as validly signed tokens for accounts that no longer exist. Components
// receive a [Sink] at construction time and emit events through it;
// recording is fire-and-forget and never affects the outcome of the request
// being audited.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mkarev/go-user-service/internal/logger"
)

// Category classifies an audit event by the kind of occurrence it records.
type Category string

const (
	// CategoryAuthentication covers login attempts and bearer-token
	// resolution, both successful and failed.
	CategoryAuthentication Category = "authentication"

	// CategorySecurity covers anomalies and potential attacks: bad token
	// signatures, unknown subjects, inactive-account access, privilege
	// escalation attempts, duplicate registrations.
	CategorySecurity Category = "security"

	// CategoryDataAccess covers reads of account data on behalf of an
	// authenticated actor.
	CategoryDataAccess Category = "data_access"

	// CategoryUserAction covers state-changing operations performed by an
	// actor: registration, account updates.
	CategoryUserAction Category = "user_action"
)

// Severity grades how alarming an audit event is.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Event is a single audit record.
type Event struct {
	// Category classifies the event (see the Category constants).
	Category Category

	// Severity grades the event. Success events use SeverityInfo.
	Severity Severity

	// SubjectID identifies the account the event concerns, when known.
	// Zero when the subject could not be resolved (e.g. unknown email).
	SubjectID int64

	// Description is a short human-readable summary of what happened.
	Description string

	// Details carries additional structured context (reason codes, emails,
	// updated field names). Must never contain credential material.
	Details map[string]any
}

// Sink records audit events.
//
// Implementations must be safe for concurrent use and must never fail the
// caller: Record returns nothing and is expected to swallow any internal
// errors. The request that triggered an event proceeds regardless of whether
// the event was persisted.
type Sink interface {
	Record(ctx context.Context, event Event)
}

// logSink is the zerolog-backed [Sink] implementation. Events are written as
// structured log entries tagged with event_type "audit" so they can be routed
// to a dedicated audit stream by the log pipeline.
type logSink struct {
	logger *logger.Logger
}

// NewLogSink constructs a [Sink] that writes audit events through the given
// logger. Security-category events are logged at warn level, everything else
// at info level.
func NewLogSink(log *logger.Logger) Sink {
	return &logSink{logger: log}
}

// Record implements [Sink].
//
// The event is written through the request-scoped logger attached to ctx so
// that audit entries carry the request's trace_id. When ctx has no logger
// attached (e.g. startup events), the construction-time logger is used.
func (s *logSink) Record(ctx context.Context, event Event) {
	log := logger.FromContext(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = s.logger
	}

	entry := log.Info()
	if event.Category == CategorySecurity {
		entry = log.Warn()
	}

	entry = entry.
		Str("event_type", "audit").
		Str("event_category", string(event.Category)).
		Str("severity", string(event.Severity))

	if event.SubjectID != 0 {
		entry = entry.Int64("subject_id", event.SubjectID)
	}
	if len(event.Details) > 0 {
		entry = entry.Any("details", event.Details)
	}

	entry.Msg(event.Description)
}

// nopSink discards all events.
type nopSink struct{}

// Nop returns a [Sink] that discards every event. Intended for tests.
func Nop() Sink {
	return nopSink{}
}

// Record implements [Sink] as a no-op.
func (nopSink) Record(context.Context, Event) {}
