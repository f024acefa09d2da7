package octree

import "log/slog"

var (
	Debug  = false // set to true to validate trees on first query and log traversal details
	logger = slog.Default()
	// Compile time checks: a tree is a full element, so trees nest
	_ Element[Box]  = (*Tree[Box])(nil)
	_ Iterator[Box] = (*RayIterator[Box])(nil)
)

// SetLogger replaces the package logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// DebugLog logs msg with slog key/value args when Debug is on.
func DebugLog(msg string, args ...any) {
	if !Debug {
		return
	}
	logger.Debug(msg, args...)
}
