// Package logging builds the zap loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formflow/internal/config"
)

// New writes logs to w at the configured level: JSON lines by default, the
// console encoder with caller information when cfg.Development is set.
// Commands pass stderr to keep logs off the terminal the prompts are drawn on.
func New(w io.Writer, cfg config.LogConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if !cfg.Development {
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level)), nil
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.Development(), zap.AddCaller()), nil
}

// ParseLevel accepts zap level names; blank means info.
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}
