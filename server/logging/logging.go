/*
 * Copyright 2025 The Coedit Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logging provides logging facilities for the coedit server.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper of zap.SugaredLogger.
type Logger = *zap.SugaredLogger

var defaultLogger Logger
var logLevel = zapcore.InfoLevel
var loggerOnce sync.Once

// SetLogLevel sets the level of the global logger with one of
// ["debug", "info", "warn", "error", "panic", "fatal"]. It must be called
// before DefaultLogger() or New().
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "info":
		logLevel = zapcore.InfoLevel
	case "warn":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	case "panic":
		logLevel = zapcore.PanicLevel
	case "fatal":
		logLevel = zapcore.FatalLevel
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}

// New creates a new named logger.
func New(name string) Logger {
	return newLogger(name)
}

// DefaultLogger returns the default logger used by coedit.
func DefaultLogger() Logger {
	loggerOnce.Do(func() {
		defaultLogger = newLogger("default")
	})
	return defaultLogger
}

// Enabled returns true if the given level is enabled.
func Enabled(level zapcore.Level) bool {
	return level >= logLevel
}

// newLogger returns a new raw logger.
func newLogger(name string) Logger {
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(humanEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		logLevel,
	), zap.AddStacktrace(zap.ErrorLevel)).Named(name).Sugar()
}

func humanEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
