package main

//
// Logging functionality
//

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/goflickr/goflickr/internal/log/handlers/cli"
)

// logStartTime is the time when we started logging
var logStartTime = time.Now()

// logHandler implements the log handler required by github.com/apex/log
type logHandler struct {
	// Writer is the underlying writer
	io.Writer
}

var _ log.Handler = &logHandler{}

// HandleLog implements log.Handler
func (h *logHandler) HandleLog(e *log.Entry) (err error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%14.6f] <%s> %s", time.Since(logStartTime).Seconds(), e.Level, e.Message)
	for _, name := range e.Fields.Names() {
		if name == "type" {
			continue
		}
		fmt.Fprintf(&sb, " %s=%v", name, e.Fields.Get(name))
	}
	sb.WriteString("\n")
	_, err = io.WriteString(h.Writer, sb.String())
	return
}

// newLogger returns the logger writing to w. In verbose mode we emit
// timestamped debug lines, otherwise we use the interactive handler.
func newLogger(options *Options, w io.Writer) *log.Logger {
	if options.Verbose {
		return &log.Logger{Level: log.DebugLevel, Handler: &logHandler{Writer: w}}
	}
	return &log.Logger{Level: log.InfoLevel, Handler: cli.New(w)}
}
