package log

import (
	"strings"

	"github.com/tacusci/logging/v2"
)

var Debug = func(format string, a ...interface{}) {
	logging.Debug(format, a...) //nolint
}

var Info = func(format string, a ...interface{}) {
	logging.Info(format, a...) //nolint
}

var Warn = func(format string, a ...interface{}) {
	logging.Warn(format, a...) //nolint
}

var Error = func(format string, a ...interface{}) {
	logging.Error(format, a...) //nolint
}

var Fatal = func(format string, a ...interface{}) {
	logging.Fatal(format, a...) //nolint
}

// SetLevel configures the underlying logger from a level name,
// unknown or empty names fall back to warn.
func SetLevel(name string) {
	logging.CallbackLabelLevel = 5
	logging.ColorLogLevelLabelOnly = true

	switch strings.ToLower(name) {
	case "info":
		logging.CurrentLoggingLevel = logging.InfoLevel
	case "debug":
		logging.CurrentLoggingLevel = logging.DebugLevel
		logging.CallbackLabel = true
	case "silent":
		logging.CurrentLoggingLevel = logging.SilentLevel
	default:
		logging.CurrentLoggingLevel = logging.WarnLevel
	}
}
