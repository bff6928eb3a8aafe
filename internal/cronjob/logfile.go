package cronjob

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogFile is the append-only, line-oriented log a scheduled job writes to.
// It is opened once per run and closed on exit; nothing here is global.
// Lines look like "2006-01-02 15:04:05 - LEVEL - message" and are mirrored
// to the process log so interactive runs stay readable.
type LogFile struct {
	path string
	file *os.File
}

// OpenLogFile rotates the file first when it is larger than maxSize bytes,
// renaming it to a timestamped backup. Rotation failure is logged and the
// run continues appending to the oversized file.
func OpenLogFile(path string, maxSize int64) (*LogFile, error) {
	rotateErr := rotateIfOversized(path, maxSize)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, err
	}

	lf := &LogFile{path: path, file: file}
	if rotateErr != nil {
		lf.Errorf("Failed to rotate log file %s: %v", path, rotateErr)
	}
	return lf, nil
}

func rotateIfOversized(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() <= maxSize {
		return nil
	}

	backup := backupPath(path, time.Now())
	return os.Rename(path, backup)
}

func backupPath(path string, now time.Time) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return fmt.Sprintf("%s.%s.log", base, now.Format("20060102_150405"))
}

func (l *LogFile) Infof(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

func (l *LogFile) Warnf(format string, args ...interface{}) {
	l.write("WARNING", format, args...)
}

func (l *LogFile) Errorf(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
}

func (l *LogFile) write(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s - %s - %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)

	if _, err := l.file.WriteString(line); err != nil {
		log.Printf("log write to %s failed: %v", l.path, err)
	}
	log.Printf("[%s] %s", level, message)
}

func (l *LogFile) Close() error {
	return l.file.Close()
}
