package core

// Logger is any leveled logger. Implementations may inspect args for
// well-known types (eg. a logged-in user) and report them separately.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
