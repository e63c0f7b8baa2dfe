// Package notify is the notification sink the dashboards surface outcomes
// through. Sinks are best-effort: a failing sink never fails the operation
// it reports on.
package notify

import "go.uber.org/zap"

type Sink interface {
	Success(msg string)
	Failure(msg string)
}

// ZapSink reports through the process logger. Always available.
type ZapSink struct {
	Log *zap.SugaredLogger
}

func (s *ZapSink) Success(msg string) { s.Log.Infow("notify", "outcome", "success", "msg", msg) }
func (s *ZapSink) Failure(msg string) { s.Log.Warnw("notify", "outcome", "failure", "msg", msg) }

// Multi fans out to several sinks.
type Multi []Sink

func (m Multi) Success(msg string) {
	for _, s := range m {
		s.Success(msg)
	}
}

func (m Multi) Failure(msg string) {
	for _, s := range m {
		s.Failure(msg)
	}
}
