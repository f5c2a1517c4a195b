package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logrus instance shared by every package.
var Logger = logrus.New()
var once sync.Once

// CustomFormatter renders one event per line: date/time, source system,
// level, a fresh event UUID, the message and the caller location.
type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s, ", entry.Message))

	if entry.HasCaller() {
		b.WriteString(fmt.Sprintf(" Location: %s:%d in %s", entry.Caller.File, entry.Caller.Line, entry.Caller.Function))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger configures the global logger once: rotated file output under
// logPath plus the custom line format. An empty logPath keeps stderr, which
// is what the tests and the CLI's --verbose path want.
func InitLogger(logPath string) {
	once.Do(func() {
		if logPath != "" {
			if err := os.MkdirAll(dirOf(logPath), 0700); err != nil {
				logrus.Fatalf("Event ID: LOG_DIR_CREATE_FAILED, Description: Failed to create log directory: %v", err)
			}
			Logger.SetOutput(&lumberjack.Logger{
				Filename:   logPath,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			})
		}

		Logger.SetFormatter(&CustomFormatter{SystemName: "collab-core"})
		Logger.SetLevel(logrus.InfoLevel)
		Logger.SetReportCaller(true)

		Logger.Infof("Event ID: LOGGER_INITIALIZED, Description: Logger initialized, output to: %s", logPath)
	})
}

func dirOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx <= 0 {
		return "."
	}
	return path[:idx]
}
