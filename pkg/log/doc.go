// Package log defines the logging capability handed to the lint goals.
//
// Goals never format log output themselves beyond the message text. They receive a
// Log and call Debug, Info, Warn or Error with a complete message, checking
// IsDebugEnabled before building messages that are expensive to format.
//
// The production implementation is backed by logrus:
//
//	logger := logrus.New()
//	logger.SetLevel(logrus.DebugLevel)
//	l := log.NewLogrus(logger).WithGoal("report")
//	l.Debug("checking: src/main/kotlin/Example.kt")
//
// Tests use the doubles in the logtest subpackage.
package log
