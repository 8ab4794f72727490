package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options - параметры логгера. Пустой OutputPath означает stdout.
type Options struct {
	Level      string
	OutputPath string
	Service    string
}

func New(opts Options) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(opts.Level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	output := opts.OutputPath
	if output == "" {
		output = "stdout"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	if opts.Level == "debug" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if opts.Service != "" {
		config.InitialFields = map[string]interface{}{"service": opts.Service}
	}

	return config.Build()
}
