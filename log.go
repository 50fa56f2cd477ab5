package folio

import (
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

// NewLogger returns the logger shared by the builder and the preview server.
// Unknown levels fall back to info.
func NewLogger(level string, out io.Writer) *log.Logger {
	l := log.New("folio")
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	if out != nil {
		l.SetOutput(out)
	}
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
