package logger

import "log/slog"

// Error records a single error under the key "error".
// Nil errors produce an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component tags the record with the emitting component name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// UserID records the local user identifier under the key "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Provider records the federated identity provider name.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}
