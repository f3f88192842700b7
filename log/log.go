// Copyright 2024 The powsim Authors
// This file is part of the powsim library.
//
// The powsim library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The powsim library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the powsim library. If not, see <http://www.gnu.org/licenses/>.

// Package log provides per-module leveled loggers with a keys-and-values
// API, backed by zap.
package log

import (
	"sync"

	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface handed out to modules. Context is given
// as alternating keys and values, e.g. logger.Info("block accepted", "id", b.ID).
type Logger interface {
	NewWith(keysAndValues ...interface{}) Logger
	Trace(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Crit(msg string, keysAndValues ...interface{})
}

var (
	baseMu     sync.Mutex
	baseLevel  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	baseLogger *zap.SugaredLogger
)

func init() {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(colorable.NewColorableStderr()),
		baseLevel,
	)
	baseLogger = zap.New(core).Sugar()
}

// NewModuleLogger returns the logger for the given module.
func NewModuleLogger(mi ModuleID) Logger {
	baseMu.Lock()
	defer baseMu.Unlock()
	return &zapLogger{baseLogger.With("module", mi.String())}
}

// ChangeGlobalLogLevel adjusts the level shared by all module loggers.
// verbosity runs 0=crit, 1=error, 2=warn, 3=info, 4 and above=debug.
func ChangeGlobalLogLevel(verbosity int) {
	switch {
	case verbosity <= 0:
		baseLevel.SetLevel(zapcore.FatalLevel)
	case verbosity == 1:
		baseLevel.SetLevel(zapcore.ErrorLevel)
	case verbosity == 2:
		baseLevel.SetLevel(zapcore.WarnLevel)
	case verbosity == 3:
		baseLevel.SetLevel(zapcore.InfoLevel)
	default:
		baseLevel.SetLevel(zapcore.DebugLevel)
	}
}

type zapLogger struct {
	sl *zap.SugaredLogger
}

func (l *zapLogger) NewWith(keysAndValues ...interface{}) Logger {
	return &zapLogger{l.sl.With(keysAndValues...)}
}

// Trace maps onto zap's debug level; zap has no finer level.
func (l *zapLogger) Trace(msg string, keysAndValues ...interface{}) {
	l.sl.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sl.Debugw(msg, keysAndValues...)
}

func (l *zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sl.Infow(msg, keysAndValues...)
}

func (l *zapLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sl.Warnw(msg, keysAndValues...)
}

func (l *zapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sl.Errorw(msg, keysAndValues...)
}

// Crit logs the message and terminates the process.
func (l *zapLogger) Crit(msg string, keysAndValues ...interface{}) {
	l.sl.Fatalw(msg, keysAndValues...)
}
