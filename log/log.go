// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Logger writes key/value pairs to the default handler.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes
	With(ctx ...any) Logger

	// Log logs a message at the specified level with context key/value pairs
	Log(level slog.Level, msg string, ctx ...any)

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)

	// Enabled reports whether l emits log records at the given context and level.
	Enabled(ctx context.Context, level slog.Level) bool
}

// logger resolves the root logger on every call, so package level loggers
// created before SetDefault still follow the installed handler.
type logger struct {
	ctx []any
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

func (l *logger) inner() ethlog.Logger {
	if len(l.ctx) == 0 {
		return ethlog.Root()
	}
	return ethlog.Root().With(l.ctx...)
}

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &logger{ctx: append(merged, ctx...)}
}

func (l *logger) Log(level slog.Level, msg string, ctx ...any) {
	l.inner().Log(level, msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.inner().Trace(msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.inner().Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner().Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner().Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner().Error(msg, ctx...) }
func (l *logger) Crit(msg string, ctx ...any)  { l.inner().Crit(msg, ctx...) }

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return ethlog.Root().Enabled(ctx, level)
}

// Root returns the root logger.
func Root() Logger {
	return &logger{}
}

// SetDefault installs h as the handler of the root logger.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

func Trace(msg string, ctx ...any) { ethlog.Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { ethlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { ethlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { ethlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { ethlog.Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { ethlog.Root().Crit(msg, ctx...) }
