// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"fmt"
	"io"
	"os"
)

// DiscardLogger is the logger of an actor spawned without WithLogger.
// Every entry is dropped; Fatal and Panic still stop the program.
var DiscardLogger Logger = silent{}

// silent drops log entries. With returns the logger itself.
type silent struct{}

var _ Logger = silent{}

func (silent) Debug(...any)          {}
func (silent) Debugf(string, ...any) {}
func (silent) Info(...any)           {}
func (silent) Infof(string, ...any)  {}
func (silent) Warn(...any)           {}
func (silent) Warnf(string, ...any)  {}
func (silent) Error(...any)          {}
func (silent) Errorf(string, ...any) {}

func (silent) Fatal(v ...any) {
	exit(fmt.Sprint(v...))
}

func (silent) Fatalf(format string, v ...any) {
	exit(fmt.Sprintf(format, v...))
}

func (silent) Panic(v ...any) {
	panic(fmt.Sprint(v...))
}

func (silent) Panicf(format string, v ...any) {
	panic(fmt.Sprintf(format, v...))
}

// LogLevel reports InfoLevel, the level actors log their failures above.
func (silent) LogLevel() Level {
	return InfoLevel
}

// Enabled only holds for the levels that stop the program.
func (silent) Enabled(level Level) bool {
	return level == FatalLevel || level == PanicLevel
}

func (s silent) With(...any) Logger {
	return s
}

func (silent) LogOutput() []io.Writer {
	return []io.Writer{io.Discard}
}

func (silent) Flush() error {
	return nil
}

// exit writes message to stderr and exits with status 1.
func exit(message string) {
	_, _ = fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}
