package logger

import (
	"os"
	"strings"

	"github.com/markmiedema/nexuscheck-sub011/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger. InitLogger must run before services are
// constructed; they capture this value in their constructors.
var Log *zap.Logger

// Config controls how the global logger is built.
type Config struct {
	Level      string `json:"level"`
	Stage      string `json:"stage"`
	EnableJSON bool   `json:"enable_json"`
}

// InitLogger builds the global logger for a deployment stage. Production
// gets JSON structured output with service metadata; every other stage
// gets colored console output. The level comes from LOG_LEVEL when set.
func InitLogger(stage string) {
	InitLoggerWithConfig(Config{
		Level:      getEnvWithDefault("LOG_LEVEL", "info"),
		Stage:      stage,
		EnableJSON: stage == constants.ProdEnvironment,
	})
}

// InitLoggerWithConfig builds the global logger from an explicit config.
func InitLoggerWithConfig(config Config) {
	level := parseLevel(config.Level)

	var zapConfig zap.Config
	if config.EnableJSON {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.TimeKey = "timestamp"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.InitialFields = map[string]interface{}{
			"service": constants.ServiceName,
			"stage":   config.Stage,
		}
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.DisableStacktrace = config.EnableJSON && level > zapcore.DebugLevel

	logger, err := zapConfig.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Log = logger
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case constants.ErrorLevel:
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries; call it on shutdown.
func Sync() error {
	return Log.Sync()
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
