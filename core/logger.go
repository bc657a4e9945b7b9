package core

// Logger is any service that can log application events at various levels.
// args may carry an error, extra data or the acting user for reporting backends.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
