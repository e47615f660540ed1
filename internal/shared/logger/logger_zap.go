// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack), и метод для логирования HTTP-запросов.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger
}

// Options — настройки логгера. Нулевое значение даёт поведение по умолчанию:
// info, console-формат, файл runtime/logs/http.log.
type Options struct {
	Dir    string // каталог для логов
	Level  string // debug|info|warn|error
	Format string // console|json
	Stdout bool   // дублировать в stdout
}

// NewHTTPLogger создаёт файловый zap-логгер с настройками по умолчанию.
func NewHTTPLogger() *HTTPLogger {
	return New(Options{})
}

// New создаёт zap-логгер по Options.
//
// Логи пишутся в <Dir>/http.log с ротацией (MaxSize/MaxBackups/MaxAge) и сжатием архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(opts Options) *HTTPLogger {
	logDir := opts.Dir
	if logDir == "" {
		logDir = filepath.Join("runtime", "logs")
	}
	_ = os.MkdirAll(logDir, 0755)

	logFile := filepath.Join(logDir, "http.log")

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB ≈ ~300 000 строк
		MaxBackups: 10,  // сколько старых файлов хранить
		MaxAge:     30,  // дней
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	level := parseLevel(opts.Level)

	core := zapcore.NewCore(encoder, writer, level)
	if opts.Stdout {
		core = zapcore.NewTee(core, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}

	return &HTTPLogger{Logger: zap.New(core, zap.AddCaller())}
}

// NewNop возвращает логгер, который ничего не пишет. Удобно в тестах.
func NewNop() *HTTPLogger {
	return &HTTPLogger{Logger: zap.NewNop()}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// duration — длительность обработки запроса в миллисекундах.
func (logger *HTTPLogger) LogRequest(method, uri, requestID string, status, responseSize int, duration float64) {
	logger.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(s))
	if err != nil || s == "" {
		return zap.InfoLevel
	}
	return lvl
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
