package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the process-wide logger. JSON output so log shippers
// can index the fields.
func Setup() *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)
	return logger
}
