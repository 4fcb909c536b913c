// ABOUTME: CLI-wide logger setup, stderr-backed with a --verbose level switch
package main

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("bincodec")

var stderrFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s}%{color:reset} ▶ %{message}`,
)

func setupLogging(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)
	leveled := logging.AddModuleLevel(backend)
	if verbose {
		leveled.SetLevel(logging.DEBUG, "bincodec")
	} else {
		leveled.SetLevel(logging.WARNING, "bincodec")
	}
	logging.SetBackend(leveled)
}
