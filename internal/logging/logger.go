package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/2beens/fitlog/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned func flushes
// buffered sentry events and should be called on shutdown.
func Setup(params LoggerSetupParams) func() {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	flush := func() {}
	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			TracesSampleRate: 0.2,
			ServerName:       params.SentryServerName,
		})
		if err != nil {
			logrus.Errorf("sentry init: %s", err)
		} else {
			logrus.AddHook(NewSentryHook([]logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			flush = func() {
				ok := sentry.Flush(5 * time.Second)
				logrus.Debugf("sentry flush ok: %t", ok)
			}
			logrus.Infoln("sentry set up")
		}
	}

	logrus.SetOutput(output(params))
	return flush
}

func output(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    50,    // megabytes
		LocalTime:  false, // false -> use UTC
		Compress:   true,
		MaxBackups: 30,
		MaxAge:     365, // days
	}

	if params.LogToStdout {
		logrus.Println("writing logs to file and STDOUT")
		return pkg.NewCombinedWriter(os.Stdout, lumberJackLogger)
	}
	return lumberJackLogger
}

func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
