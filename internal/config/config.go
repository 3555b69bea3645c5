package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/hiview/internal/app"
	"github.com/atomicstack/hiview/internal/lru"
	"github.com/atomicstack/hiview/internal/nav"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth      = "HIVIEW_WIDTH"
	envHeight     = "HIVIEW_HEIGHT"
	envShowFooter = "HIVIEW_FOOTER"
	envTrace      = "HIVIEW_TRACE"
	envLogFile    = "HIVIEW_LOG_FILE"
	envSort       = "HIVIEW_SORT"
	envCacheSize  = "HIVIEW_CACHE_SIZE"
	envConfig     = "HIVIEW_CONFIG"
)

// ErrHelp is wrapped, together with the usage text, when -h is requested.
var ErrHelp = flag.ErrHelp

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// from flags, then environment, then the config file, then built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	filePath, explicit := configPath(args, env)
	file, err := readFile(filePath, explicit)
	if err != nil {
		return Config{}, err
	}

	fset := flag.NewFlagSet("hiview", flag.ContinueOnError)
	usage := new(strings.Builder)
	fset.SetOutput(usage)

	width := fset.Int("width", envOrInt(env, envWidth, fileInt(file, "width", 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fset.Int("height", envOrInt(env, envHeight, fileInt(file, "height", 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fset.Bool("footer", envOrBool(env, envShowFooter, fileBool(file, "footer", true)), "show the key hint footer")
	trace := fset.Bool("trace", envOrBool(env, envTrace, fileBool(file, "trace", false)), "enable verbose JSON trace logging")
	logFile := fset.String("log-file", envOrDefault(env, envLogFile, fileString(file, "log-file", "")), "path to the log file")
	sortName := fset.String("sort", envOrDefault(env, envSort, fileString(file, "sort", nav.SortByDescendants.String())), "initial subkey order: descendants, name or lastwrite")
	cacheSize := fset.Int("cache-size", envOrInt(env, envCacheSize, fileInt(file, "cache-size", lru.DefaultCapacity)), "selection history entries kept per list")
	fset.String("config", filePath, "path to a config file (yaml, toml or json)")

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, fmt.Errorf("%w\n%s", ErrHelp, usage.String())
		}
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *cacheSize < 1 {
		return Config{}, fmt.Errorf("cache-size must be >= 1 (got %d)", *cacheSize)
	}
	mode, err := nav.ParseSortMode(*sortName)
	if err != nil {
		return Config{}, err
	}
	if fset.NArg() > 1 {
		return Config{}, fmt.Errorf("expected a single hive path, got %d arguments", fset.NArg())
	}

	loaded := ""
	if file != nil {
		loaded = file.ConfigFileUsed()
	}
	cfg := Config{
		App: app.Config{
			HivePath:   fset.Arg(0),
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Sort:       mode,
			CacheSize:  *cacheSize,
			ConfigFile: loaded,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
	}

	return cfg, nil
}

// configPath finds the config file named by -config or the environment,
// falling back to the XDG location. explicit reports whether the user named
// one.
func configPath(args []string, env map[string]string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	dir := env["XDG_CONFIG_HOME"]
	if dir == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hiview", "config.yaml"), false
}

// readFile loads the config file at path. A missing default file is not an
// error.
func readFile(path string, explicit bool) (*viper.Viper, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config file: %w", err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return v, nil
}

func fileString(v *viper.Viper, key, fallback string) string {
	if v == nil || !v.IsSet(key) {
		return fallback
	}
	return v.GetString(key)
}

func fileInt(v *viper.Viper, key string, fallback int) int {
	if v == nil || !v.IsSet(key) {
		return fallback
	}
	return v.GetInt(key)
}

func fileBool(v *viper.Viper, key string, fallback bool) bool {
	if v == nil || !v.IsSet(key) {
		return fallback
	}
	return v.GetBool(key)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, ErrHelp) {
		fmt.Fprintln(os.Stderr, strings.TrimPrefix(err.Error(), ErrHelp.Error()+"\n"))
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures a readable hive path was supplied.
func Validate(cfg Config) error {
	path := cfg.App.HivePath
	if path == "" {
		return errors.New("missing hive path (usage: hiview [flags] <hive>)")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("hive path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("hive path %s is a directory", path)
	}
	return nil
}
