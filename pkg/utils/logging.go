package utils

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func SetUpLogger(logLevelStr string) error {
	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return errors.Wrapf(err, "unable to parse the specified log level: '%s'", logLevelStr)
	}
	logrus.SetLevel(logLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.Debugf("log level set to '%s'", logrus.GetLevel())
	return nil
}

// RunLogger tags every entry of a single collection run with its id, so interleaved
// output from concurrent fetch and probe workers can be attributed.
func RunLogger(runID string) *logrus.Entry {
	return logrus.WithField("run", runID)
}
