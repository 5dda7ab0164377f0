// Command place_player_starts adds two Player Start markers to the level
// open in the editor. It takes no arguments; settings come from
// place_player_starts.cfg.json and PLAYERSTART_* environment variables.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/OCAP2/playerstart/internal/config"
	"github.com/OCAP2/playerstart/internal/logging"
	intOtel "github.com/OCAP2/playerstart/internal/otel"
	"github.com/OCAP2/playerstart/internal/placement"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// tool defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	ToolName string = "place_player_starts"
)

var (
	// SlogManager handles diagnostic logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()
)

func main() {
	ctx := context.Background()

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(logging.Outputs{}, "info")
	Logger = SlogManager.Logger()

	if err := loadConfig(configDirs()...); err != nil {
		config.SetDefaults()
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	}

	run(ctx, os.Stdout)
}

// run performs one invocation against the configured editor. Every failure
// is logged; nothing here ends the process with a non-zero status.
func run(ctx context.Context, console io.Writer) placement.Report {
	logsDir := config.GetString("logsDir")
	level := config.GetString("logLevel")

	logFilePath := logging.LogFilePath(logsDir, ToolName, SessionStartTime, "log")
	logFile, err := logging.OpenLogFile(logFilePath)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", logFilePath)
	} else {
		defer logFile.Close()
	}

	var out logging.Outputs
	if logFile != nil {
		out.File = logFile
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    out.File,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
			OTelProvider = nil
		} else {
			out.Provider = otelLogProvider()
		}
	}

	if config.GetBool("graylog.enabled") {
		gw, err := logging.NewGraylogWriter(config.GetString("graylog.address"))
		if err != nil {
			Logger.Warn("Graylog disabled", "error", err)
		} else {
			defer gw.Close()
			out.Graylog = gw
		}
	}

	SlogManager.Setup(out, level)
	Logger = SlogManager.Logger()
	Logger.Info("Starting up...", "version", CurrentVersion, "buildDate", BuildDate, "logFile", logFilePath)

	// the output log goes to the console and its own JSON file
	outputPath := logging.LogFilePath(logsDir, ToolName+".output", SessionStartTime, "jsonl")
	outputFile, err := logging.OpenLogFile(outputPath)
	var outputWriter io.Writer
	if err != nil {
		Logger.Warn("Output log file unavailable, console only", "error", err)
	} else {
		defer outputFile.Close()
		outputWriter = outputFile
	}
	outputLog := logging.NewConsoleOutputLog(console, outputWriter)

	componentLog := zerolog.Nop()
	if out.File != nil {
		componentLog = zerolog.New(out.File).With().Timestamp().Logger()
	}

	h := newHost(ctx, config.GetHostConfig())

	cfg, err := placementConfig()
	if err != nil {
		Logger.Warn("Invalid placement config, using defaults", "error", err)
		cfg = placement.DefaultConfig()
	}

	recorders, closeRecorders := openRecorders(ctx, componentLog, logsDir)
	defer closeRecorders()

	report := placement.Run(ctx, h, outputLog, cfg)
	Logger.Info("Placement finished",
		"status", report.Status,
		"existing", report.Existing,
		"created", report.Created(),
		"failed", report.Failed(),
		"duration", report.Duration,
	)

	recordRun(ctx, recorders, report)

	shutdown(ctx)
	return report
}

// recordRun hands report to each recorder in order. Failures are warnings.
func recordRun(ctx context.Context, recorders []namedRecorder, report placement.Report) {
	for _, r := range recorders {
		if err := r.Record(ctx, report); err != nil {
			Logger.Warn("Failed to record run", "recorder", r.Name, "error", err)
		}
	}
}

func placementConfig() (placement.Config, error) {
	pc, err := config.GetPlacementConfig()
	if err != nil {
		return placement.Config{}, err
	}
	return placement.FromConfig(pc)
}

func otelLogProvider() *sdklog.LoggerProvider {
	if OTelProvider == nil {
		return nil
	}
	return OTelProvider.LoggerProvider()
}

// configDirs lists where the config file is looked up: beside the
// executable first, then the working directory.
func configDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}

// loadConfig reads the first config file found in dirs.
func loadConfig(dirs ...string) (err error) {
	for _, dir := range dirs {
		if err = config.Load(dir); err == nil {
			Logger.Info("Loaded config", "dir", dir)
			return nil
		}
	}
	return err
}

func shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := SlogManager.Flush(ctx); err != nil {
		Logger.Warn("Failed to flush logs", "error", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down OTel provider", "error", err)
		}
		OTelProvider = nil
	}
}
