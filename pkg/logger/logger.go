// Package logger construye el logger zerolog de la aplicación.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controla formato y verbosidad de la salida.
type Config struct {
	Env   string // development: consola legible; cualquier otro: JSON
	Level string // trace, debug, info, warn, error
}

// Logger envuelve zerolog para inyectarlo en lugar de depender del global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno. También alinea el logger global
// de zerolog, que usan los casos de uso para avisos puntuales (por ejemplo,
// un documento que quedó pendiente tras emitir).
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// parseLevel traduce el nivel configurado; un valor desconocido cae en info.
func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Eventos por nivel, delegados al zerolog interno.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un contexto para agregar campos fijos a un sublogger.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger subyacente cuando se necesita la API completa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
