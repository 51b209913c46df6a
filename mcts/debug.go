package mcts

import (
	"bytes"
	"log"
)

// lumberjack keeps a trace of the search in memory.
type lumberjack struct {
	*log.Logger
	buf *bytes.Buffer
}

func makeLumberJack(enabled bool) lumberjack {
	if !enabled {
		return lumberjack{}
	}
	buf := new(bytes.Buffer)
	return lumberjack{
		Logger: log.New(buf, "", log.Lmicroseconds),
		buf:    buf,
	}
}

func (l *lumberjack) log(format string, attrs ...interface{}) {
	if l.Logger == nil {
		return
	}
	l.Logger.Printf(format, attrs...)
}

// Log returns the trace recorded so far. It is empty unless Config.Debug is set.
func (l *lumberjack) Log() string {
	if l.buf == nil {
		return ""
	}
	return l.buf.String()
}
