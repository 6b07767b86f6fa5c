// Package fhelog is a slim logrus wrapper used by cmd/fhestrcli: leveled
// logging plus structured fields. Grounded on open-policy-agent's
// log/log.go, reduced to a global logger, level setting, the leveled
// print functions and one structured-field helper.
package fhelog

import "github.com/sirupsen/logrus"

// Fields aliases logrus.Fields.
type Fields = logrus.Fields

var global = logrus.New()

// SetLevel parses and applies a logrus level name ("debug", "info",
// "warn", "error", ...).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	global.SetLevel(lvl)
	return nil
}

func Debug(args ...interface{})                 { global.Debug(args...) }
func Debugf(format string, args ...interface{}) { global.Debugf(format, args...) }
func Info(args ...interface{})                  { global.Info(args...) }
func Infof(format string, args ...interface{})  { global.Infof(format, args...) }
func Warn(args ...interface{})                  { global.Warn(args...) }
func Warnf(format string, args ...interface{})  { global.Warnf(format, args...) }
func Error(args ...interface{})                 { global.Error(args...) }
func Errorf(format string, args ...interface{}) { global.Errorf(format, args...) }

// WithField returns a log entry carrying one structured field.
func WithField(key string, value interface{}) *logrus.Entry {
	return global.WithField(key, value)
}
