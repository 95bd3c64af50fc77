package logging

import "github.com/sirupsen/logrus"

var (
	logger *logrus.Entry
)

type Fields = logrus.Fields

func init() {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
}

func SetLevel(l logrus.Level) {
	logger.Logger.SetLevel(l)
}

func Entry() *logrus.Entry {
	return logger
}

func WithError(e error) *logrus.Entry {
	return logger.WithError(e)
}

func WithField(k string, v interface{}) *logrus.Entry {
	return logger.WithField(k, v)
}

func Error(args ...interface{}) {
	logger.Error(args...)
}
