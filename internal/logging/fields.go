package logging

import "log/slog"

// Structured log keys.
const (
	FieldService     = "service"
	FieldVersion     = "version"
	FieldProvider    = "provider"
	FieldOperation   = "op"
	FieldRequestID   = "request_id"
	FieldPath        = "path"
	FieldMethod      = "method"
	FieldStatusCode  = "status_code"
	FieldSessionID   = "session_id"
	FieldTopic       = "topic"
	FieldModeID      = "mode_id"
	FieldDailyGameID = "daily_game_id"
	FieldAnswerID    = "answer_id"
	FieldState       = "state"
	FieldErrorKind   = "error_kind"
	FieldCount       = "count"
	FieldDurationMS  = "duration_ms"
)

func commonAttrs(service, version string) []slog.Attr {
	var attrs []slog.Attr
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
