package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rezi-labs/cup/internal/adapter"
	"github.com/rezi-labs/cup/internal/domain"
	m "github.com/rezi-labs/cup/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "cup"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	parallelFlagName = "parallel"
	dryRunFlagName   = "dry-run"
	reportFlagName   = "report"
	markerFlagName   = "marker"
	remoteFlagName   = "remote"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"

	markerConfigKey   = "marker"
	remoteConfigKey   = "remote.default"
	parallelConfigKey = "run.parallel"
	dryRunConfigKey   = "run.dry_run"
	reportConfigKey   = "run.report"

	githubAPIURLKey  = "github.api_url"
	githubTokenKey   = "github.token"
	githubTimeoutKey = "github.timeout"
	githubBackendKey = "github.resolver"

	githubBackendAPI = "api"
	githubBackendGh  = "gh"

	defaultRemote = "GitHub"
	// defaultParallel of 0 means one worker per CPU of the machine running cup.
	defaultParallel = 0
	defaultReport = ""

	envPrefix = "CUP"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".cup.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// activeLogPath is the file the logger writes to once configured.
var activeLogPath string

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(markerConfigKey, domain.DefaultMarker)
	viper.SetDefault(remoteConfigKey, defaultRemote)
	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(dryRunConfigKey, false)
	viper.SetDefault(reportConfigKey, defaultReport)

	viper.SetDefault(githubAPIURLKey, adapter.DefaultGitHubAPIURL)
	viper.SetDefault(githubTokenKey, "")
	viper.SetDefault(githubTimeoutKey, int64(adapter.DefaultGitHubTimeout.Seconds()))
	viper.SetDefault(githubBackendKey, githubBackendAPI)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// runConfig is the resolved configuration of one update run.
type runConfig struct {
	Marker  string
	Remote  string
	Threads int
	DryRun  bool
	Report  m.Path
	Backend string
	GitHub  adapter.GitHubConfig
}

// loadRunConfig reads the run settings from viper, which already merges
// defaults, cup.yaml, CUP_* environment variables and bound flags.
func loadRunConfig() runConfig {
	return runConfig{
		Marker:  viper.GetString(markerConfigKey),
		Remote:  viper.GetString(remoteConfigKey),
		Threads: viper.GetInt(parallelConfigKey),
		DryRun:  viper.GetBool(dryRunConfigKey),
		Report:  m.Path(viper.GetString(reportConfigKey)),
		Backend: strings.ToLower(strings.TrimSpace(viper.GetString(githubBackendKey))),
		GitHub: adapter.GitHubConfig{
			APIURL:  viper.GetString(githubAPIURLKey),
			Token:   viper.GetString(githubTokenKey),
			Timeout: time.Duration(viper.GetInt64(githubTimeoutKey)) * time.Second,
		},
	}
}

// configFilePath returns the configuration file viper reads and init writes.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}

	return filepath.Join(configFolderPath, configFileName)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	activeLogPath = logPath

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
