package logger

import (
	"os"

	logger "github.com/sirupsen/logrus"
)

// Log is the logger shared by every function of the repository
var Log = logger.New()

func init() {
	// Log as JSON instead of the default ASCII formatter.
	Log.SetFormatter(&logger.JSONFormatter{})

	if level, err := logger.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		Log.SetLevel(level)
	}
}
