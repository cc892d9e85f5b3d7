package app

import (
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("dpgpid/app")

// SetupLogging applies level to every dpgpid logger. verbose forces debug.
func SetupLogging(level string, verbose bool) error {
	if verbose {
		level = "debug"
	}
	if level == "" {
		return nil
	}
	return logging.SetLogLevelRegex("^dpgpid/", level)
}
