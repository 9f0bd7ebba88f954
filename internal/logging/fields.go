package logging

import (
	"log/slog"
	"time"
)

// Standard keys shared by every component.
const (
	FieldComponent     = "component"
	FieldStage         = "stage"
	FieldQuery         = "query"
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies a line for filtering, e.g. "catalog_loaded".
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact describes what the user loses when a warning fires.
	FieldImpact = "impact"
)

// Attr is re-exported so callers only import this package.
type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key, value string) Attr { return slog.String(key, value) }

// Error renders err under the "error" key. A nil error yields an empty attr,
// which handlers skip.
func Error(err error) Attr {
	if err == nil {
		return Attr{}
	}
	return slog.String("error", err.Error())
}
