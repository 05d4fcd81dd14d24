package bibsin

import (
	"fmt"
	"os"
	"strconv"
)

// Severity classifies problems reported through the warning sink.
type Severity int8

const (
	Notice Severity = iota
	Warn
	SyntaxError
	InternalError
)

var severities = [...]string{
	Notice:        "notice",
	Warn:          "warning",
	SyntaxError:   "syntax error",
	InternalError: "internal error",
}

func (sev Severity) String() string {
	if 0 <= sev && int(sev) < len(severities) {
		return severities[sev]
	}
	return "severity(" + strconv.Itoa(int(sev)) + ")"
}

// WarnFunc receives every problem the library reports. file may be empty
// and line may be 0 when no position is known. A nil sink is valid; the
// session still counts warnings.
type WarnFunc func(sev Severity, file string, line int, msg string)

// StderrWarn is a ready-made sink that prints to standard error.
func StderrWarn(sev Severity, file string, line int, msg string) {
	if file == "" {
		fmt.Fprintf(os.Stderr, "bibsin: %s: %s\n", sev, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "bibsin: %s: %s:%d: %s\n", sev, file, line, msg)
}

// Error carries a positioned problem; EntryReader.Next returns it for
// each syntax error, after recovering to the next entry.
type Error struct {
	Sev  Severity
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.File == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func (s *Session) warnf(sev Severity, file string, line int, format string, args ...any) {
	if sev != Notice {
		s.warnings++
	}
	if s.opts.Warn != nil {
		msg := format
		if len(args) > 0 {
			msg = fmt.Sprintf(format, args...)
		}
		s.opts.Warn(sev, file, line, msg)
	}
}
