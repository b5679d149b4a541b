/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package logging

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger is something that can print, using Logf, a format string
type Logger interface {
	Logf(format string, v ...any)
}

// subsystemLogger is a logger that handles only one file out of all that are opened by its logger
type subsystemLogger struct {
	name   string
	logger *AppLogger
}

// Logf for a subsystem logger is just a wrap for the Logs of its internal logger, giving its only subsystem name
func (s *subsystemLogger) Logf(format string, v ...any) {
	s.logger.Logf(s.name, format, v...)
}

// logEntry is an helper struct that can be used to send a couple (subsystem, formatted string) onto the log channel
type logEntry struct {
	name      string
	formatted string
}

// AppLogger is an (almost) powerful logger that can write to multiple log files from one single struct.
// It's safe to share amongst goroutines since it has an internal lock
type AppLogger struct {
	dir string // Directory where the log files are created

	fileMapper map[string]*os.File    // Maps a subsystem to an OS file (used only to be able to deallocate it later)
	logMapper  map[string]*log.Logger // Maps a subsystem to the corresponding logger

	lock           sync.RWMutex
	currentLogFunc func(*log.Logger, string, ...any) // Current logging function (alternating between defaultLogf and nilLogf)

	inbox chan logEntry // Log channel, formatted strings are sent here instead of directly writing to files
}

// NewAppLogger creates and returns an AppLogger writing under dir, with the given logging flag
// When successful, error is nil
func NewAppLogger(dir string, logging bool) (*AppLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	a := &AppLogger{
		dir:            dir,
		fileMapper:     make(map[string]*os.File),
		logMapper:      make(map[string]*log.Logger),
		currentLogFunc: nilLogf,
		inbox:          make(chan logEntry, 600),
	}

	if logging {
		a.currentLogFunc = defaultLogf
	}

	return a, nil
}

// RegisterSubsystem registers a new subsystem, returning a Logger that can write to the file <name>.log.
// If successful, error is nil
func (a *AppLogger) RegisterSubsystem(name string) (Logger, error) {
	file, err := os.OpenFile(filepath.Join(a.dir, name+".log"), os.O_WRONLY|os.O_APPEND|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, err
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	a.logMapper[name] = log.New(file, fmt.Sprintf("[%s]: ", name), log.Ldate|log.Ltime)
	a.fileMapper[name] = file
	return &subsystemLogger{name, a}, nil
}

// GetSubsystemLogger retrieves a subsystem logger, if previously registered.
// If successful, error is nil
func (a *AppLogger) GetSubsystemLogger(name string) (Logger, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	if _, ok := a.logMapper[name]; !ok {
		return nil, fmt.Errorf("The subsystem was not registered")
	}
	return &subsystemLogger{name, a}, nil
}

// EnableLogging enables the logging done by this logger
func (a *AppLogger) EnableLogging() {
	a.lock.Lock()
	a.currentLogFunc = defaultLogf
	a.lock.Unlock()
}

// DisableLogging disables the logging done by this logger
func (a *AppLogger) DisableLogging() {
	a.lock.Lock()
	a.currentLogFunc = nilLogf
	a.lock.Unlock()
}

// Logf formats a string using format and v, and appends it to the logging channel, alongside the subsystem it belongs to
func (a *AppLogger) Logf(name, format string, v ...any) {
	a.inbox <- logEntry{name, fmt.Sprintf(format, v...)}
}

// Run waits either on the log channel or ctx.Done()
// When ctx.Done(), the caller has shut down and we deallocate resources
// When a message arrives on the log channel, we write it accordingly
func (a *AppLogger) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			a.CloseAll()
			return
		case msg := <-a.inbox:
			a.actualWrite(msg.name, msg.formatted)
		}
	}
}

// actualWrite is the function that writes the formatted string to the subsystem's file
// When successful, error is nil
func (a *AppLogger) actualWrite(name, formatted string) error {
	a.lock.Lock()
	logFunc := a.currentLogFunc
	logger, ok := a.logMapper[name]
	a.lock.Unlock()

	if !ok {
		return fmt.Errorf("Logger is not setup for this subsystem")
	}
	if logFunc != nil {
		logFunc(logger, formatted)
	}
	return nil
}

// CloseAll closes all the open files that the loggers are using
func (a *AppLogger) CloseAll() {
	a.lock.Lock()
	defer a.lock.Unlock()

	for _, file := range a.fileMapper {
		file.Sync()
		file.Close()
	}
	clear(a.fileMapper)
	clear(a.logMapper)
}

// defaultLogf is a log function that writes to a logger l
func defaultLogf(l *log.Logger, format string, a ...any) {
	l.Printf(format, a...)
}

// nilLogf is a log function that does nothing, which gets called when logging is disabled
func nilLogf(*log.Logger, string, ...any) {}
