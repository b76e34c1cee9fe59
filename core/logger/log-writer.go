// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const timestampFormat = "2006/01/02 15:04:05 "

// WriterLogger - writes one line per message at or above its level. With no Out, lines go to
// whatever os.Stdout is at the time, which example tests capture
type WriterLogger struct {
	Out io.Writer

	// Prefix lines with UTC date and time
	Timestamp bool

	logLevel LogLevel
	mutex    sync.Mutex
}

// StdOutLogger - the zero WriterLogger, logging everything to stdout untimestamped
type StdOutLogger = WriterLogger

// NewStdErrLogger - for tools whose stdout is their output
func NewStdErrLogger() *WriterLogger {
	return &WriterLogger{Out: os.Stderr, Timestamp: true}
}

func (l *WriterLogger) Printf(level LogLevel, format string, a ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if level < l.logLevel {
		return
	}

	out := l.Out
	if out == nil {
		out = os.Stdout
	}

	stamp := ""
	if l.Timestamp {
		stamp = time.Now().UTC().Format(timestampFormat)
	}
	fmt.Fprintf(out, "%v%v: %v\n", stamp, logLevelPrefix[level], fmt.Sprintf(format, a...))
}

func (l *WriterLogger) Debugf(format string, a ...interface{}) { l.Printf(LogDebug, format, a...) }
func (l *WriterLogger) Infof(format string, a ...interface{})  { l.Printf(LogInfo, format, a...) }
func (l *WriterLogger) Errorf(format string, a ...interface{}) { l.Printf(LogError, format, a...) }

func (l *WriterLogger) SetLogLevel(level LogLevel) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.logLevel = level
}

func (l *WriterLogger) GetLogLevel() LogLevel {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.logLevel
}
