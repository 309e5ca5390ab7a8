package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"

	"diapredict/db"
	qhttp "diapredict/http"
	"diapredict/metrics"
	"diapredict/ml"
)

type Config struct {
	Http struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"log"`
}

const configPath = "config.yaml"

func main() {
	// 1. Load config
	config, err := loadConfig(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// 2. Build logger
	level := zap.NewAtomicLevel()
	if err := setLogLevel(level, config.Log.Level); err != nil {
		panic("invalid log level: " + err.Error())
	}
	logger := newLogger(config, level)
	defer logger.Sync()

	// 3. Load the embedded model; a bad parameter table must not serve requests
	model, err := ml.Load()
	if err != nil {
		logger.Fatal("failed to load model parameters", zap.Error(err))
	}
	logger.Info("model loaded", zap.Int("features", ml.NumFeatures))

	// 4. Prediction history (optional)
	if config.Database.Path != "" {
		if err := db.InitDB(config.Database.Path); err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("prediction history enabled", zap.String("path", config.Database.Path))
	}

	// 5. Metrics and handler wiring
	metrics.Register()
	qhttp.SetLogger(logger)
	qhttp.SetModel(model)
	if err := qhttp.InitCache(config.Cache.Size); err != nil {
		logger.Fatal("failed to initialize cache", zap.Error(err))
	}

	// 6. Watch the config file for log level changes
	stopWatch := watchConfig(logger, level)
	defer stopWatch()

	// 7. Start HTTP server
	serverConfig := qhttp.DefaultServerConfig()
	if config.Http.Port != 0 {
		serverConfig.Port = config.Http.Port
	}
	if config.Http.TimeoutSeconds != 0 {
		serverConfig.Timeout = time.Duration(config.Http.TimeoutSeconds) * time.Second
	}
	if len(config.Http.AllowedOrigins) != 0 {
		serverConfig.AllowedOrigins = config.Http.AllowedOrigins
	}

	server := qhttp.NewServer(serverConfig)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 8. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setLogLevel(level zap.AtomicLevel, name string) error {
	if name == "" {
		name = "info"
	}
	var parsed zapcore.Level
	if err := parsed.UnmarshalText([]byte(name)); err != nil {
		return err
	}
	level.SetLevel(parsed)
	return nil
}

func newLogger(config *Config, level zap.AtomicLevel) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if config.Log.File != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.Log.File,
			MaxSize:    config.Log.MaxSizeMB,
			MaxBackups: config.Log.MaxBackups,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}

// watchConfig reapplies the log level when the config file changes. Other
// settings require a restart.
func watchConfig(logger *zap.Logger, level zap.AtomicLevel) func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
		return func() {}
	}
	if err := watcher.Add(configPath); err != nil {
		logger.Warn("failed to watch config file", zap.Error(err))
		watcher.Close()
		return func() {}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				config, err := loadConfig(configPath)
				if err != nil {
					logger.Warn("failed to reload config", zap.Error(err))
					continue
				}
				if err := setLogLevel(level, config.Log.Level); err != nil {
					logger.Warn("invalid log level in config", zap.Error(err))
					continue
				}
				logger.Info("log level updated", zap.String("level", config.Log.Level))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return func() { watcher.Close() }
}
