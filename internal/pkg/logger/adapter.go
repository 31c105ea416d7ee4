package logger

import (
	"log/slog"

	"balance_resolver/internal/app/port"
)

// slogAdapter реализует интерфейс port.Logger поверх *slog.Logger.
// Без явного логгера используются глобальные функции пакета logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter создает новый экземпляр slogAdapter. При nil используются глобальные функции пакета logger.
func NewSlogAdapter(l *slog.Logger) port.Logger {
	return &slogAdapter{l: l}
}

// Info логирует информационное сообщение.
func (a *slogAdapter) Info(msg string, args ...any) {
	if a.l == nil {
		Info(msg, args...)
		return
	}
	a.l.Info(msg, args...)
}

// Debug логирует отладочное сообщение.
func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.l == nil {
		Debug(msg, args...)
		return
	}
	a.l.Debug(msg, args...)
}

// Warn логирует предупреждающее сообщение.
func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.l == nil {
		Warn(msg, args...)
		return
	}
	a.l.Warn(msg, args...)
}

// Error логирует сообщение об ошибке.
func (a *slogAdapter) Error(msg string, args ...any) {
	if a.l == nil {
		Error(msg, args...)
		return
	}
	a.l.Error(msg, args...)
}
