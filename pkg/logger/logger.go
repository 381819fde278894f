// pkg/logger/logger.go

// Package logger 保存全程式共用的 zap logger 與欄位小工具，
// 其他套件只透過這裡記錄，不直接 import zap。
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field 即 zap.Field，讓呼叫端不必 import zap 也能組欄位。
type Field = zap.Field

// Log 在 Initialize 之前為 no-op，測試預設不會輸出任何東西。
var Log = zap.NewNop()

// Initialize 依等級字串（"debug"、"info"…）建立 production logger 並設為 Log。
// 時間欄位名稱為 "time"，格式為 ISO8601。
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("couldn't parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("couldn't build logger: %w", err)
	}
	Log = l
	return nil
}

// Replace 把 Log 換成 l，回傳還原原本 logger 的函式（測試用）。
func Replace(l *zap.Logger) func() {
	prev := Log
	Log = l
	return func() { Log = prev }
}

// Error 以 "error" 為鍵記錄錯誤。
func Error(err error) Field {
	return zap.Error(err)
}

// String 字串欄位。
func String(key, val string) Field {
	return zap.String(key, val)
}

// Int 整數欄位，例如 user_id。
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Int64 64 位元整數欄位，例如帳號。
func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

// Stringer 延遲呼叫 String()，只有在真正輸出時才會格式化（金額、uuid）。
func Stringer(key string, val fmt.Stringer) Field {
	return zap.Stringer(key, val)
}
