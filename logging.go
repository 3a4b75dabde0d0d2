package stax

import (
	"fmt"
	"io"
	"os"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogWarning logs errors and warnings
	LogWarning
	// LogInfo logs errors, warnings, and info
	LogInfo
	// LogDebug logs errors, warnings, info, and debug
	LogDebug
)

// LogFormatter formats log messages
type LogFormatter func(level LogLevel, format string, args ...any) string

// DefaultLogFormatter provides default log formatting
func DefaultLogFormatter(level LogLevel, format string, args ...any) string {
	levelStr := "INFO"
	switch level {
	case LogError:
		levelStr = "ERROR"
	case LogWarning:
		levelStr = "WARN"
	case LogInfo:
		levelStr = "INFO"
	case LogDebug:
		levelStr = "DEBUG"
	}

	return fmt.Sprintf("[%s] %s", levelStr, fmt.Sprintf(format, args...))
}

// LoggingObserver logs machine lifecycle activity. It implements
// ExtendedObserver and can be attached to any machine with AddObserver.
type LoggingObserver struct {
	BaseObserver

	level     LogLevel
	prefix    string
	out       io.Writer
	formatter LogFormatter
}

// NewLoggingObserver creates a new logging observer writing to stdout.
func NewLoggingObserver(level LogLevel, prefix string) *LoggingObserver {
	return &LoggingObserver{
		level:     level,
		prefix:    prefix,
		out:       os.Stdout,
		formatter: DefaultLogFormatter,
	}
}

// SetFormatter sets the log formatter.
func (o *LoggingObserver) SetFormatter(formatter LogFormatter) {
	o.formatter = formatter
}

// SetOutput redirects the observer's output.
func (o *LoggingObserver) SetOutput(out io.Writer) {
	o.out = out
}

// log writes a message at the specified level
func (o *LoggingObserver) log(level LogLevel, format string, args ...any) {
	if level > o.level {
		return
	}

	prefix := ""
	if o.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", o.prefix)
	}

	message := ""
	if o.formatter != nil {
		message = o.formatter(level, format, args...)
	} else {
		message = fmt.Sprintf(format, args...)
	}

	fmt.Fprintf(o.out, "%s%s\n", prefix, message)
}

// OnStateEnter logs state entry
func (o *LoggingObserver) OnStateEnter(s State) {
	o.log(LogInfo, "Entering state: %s", s.Name())
}

// OnStateExit logs state exit
func (o *LoggingObserver) OnStateExit(s State) {
	o.log(LogInfo, "Exiting state: %s", s.Name())
}

// OnTransition logs stack operations
func (o *LoggingObserver) OnTransition(parent State, from, to State, op StackOp) {
	fromName := "-"
	if from != nil {
		fromName = from.Name()
	}

	toName := "-"
	if to != nil {
		toName = to.Name()
	}

	o.log(LogInfo, "Transition on %s: %s -> %s (%s)", parent.Name(), fromName, toName, op)
}

// OnUpdate logs leaf ticks
func (o *LoggingObserver) OnUpdate(s State, delta float64) {
	o.log(LogDebug, "Update %s: delta=%.4fs elapsed=%.4fs", s.Name(), delta, s.ElapsedTime())
}

// OnConditionFired logs fired conditions
func (o *LoggingObserver) OnConditionFired(s State, index int) {
	o.log(LogDebug, "Condition %d fired on state: %s", index, s.Name())
}

// OnEventTriggered logs handled events
func (o *LoggingObserver) OnEventTriggered(s State, event *Event) {
	o.log(LogDebug, "Event %s handled by state: %s (id=%s)", event.Name, s.Name(), event.ID)
}

// OnEventRejected logs unhandled events
func (o *LoggingObserver) OnEventRejected(s State, event *Event, reason string) {
	o.log(LogWarning, "Event %s rejected: %s", event.Name, reason)
}

// OnError logs failed transition operations
func (o *LoggingObserver) OnError(s State, err error) {
	o.log(LogError, "Error on state %s: %v", s.Name(), err)
}
