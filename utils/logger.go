package utils

import (
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging sends the standard logger to stderr and, when file is set, to a
// rotated log file as well. The returned closer flushes the file writer.
func SetupLogging(file string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if strings.TrimSpace(file) == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}

	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotated))
	log.Printf("📄 Logging to %s", file)
	return rotated
}
