package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

var _ logrus.Hook = (*SentryHook)(nil)

// SentryHook forwards log entries of the given levels to sentry.
type SentryHook struct {
	levels []logrus.Level
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return &SentryHook{
		levels: levels,
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	event := sentry.NewEvent()
	event.Level = sentryLevel(entry.Level)
	event.Message = entry.Message
	event.Timestamp = entry.Time

	extra := make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		if err, ok := v.(error); ok && k == logrus.ErrorKey {
			event.Exception = []sentry.Exception{{
				Type:  "error",
				Value: err.Error(),
			}}
			continue
		}
		extra[k] = v
	}
	event.Extra = extra

	if id := sentry.CaptureEvent(event); id == nil && sentry.CurrentHub().Client() != nil {
		return errors.New("sentry event not captured")
	}
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
