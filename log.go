//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"github.com/labstack/gommon/log"
)

var logger = newLogger()

func newLogger() (l *log.Logger) {
	l = log.New("spiralizer")
	l.SetHeader("${prefix} ${level}")
	l.SetLevel(log.WARN)

	return
}

// Logger returns the package logger, so callers may adjust level and output
func Logger() *log.Logger {
	return logger
}
