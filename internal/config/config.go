package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pageform/internal/view"
)

// Config holds application level configuration aggregated from env/config files/flags.
type Config struct {
	Server struct {
		Addr            string
		KeepAlive       time.Duration
		ShutdownTimeout time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	UI struct {
		DebugFormat string
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"addr":         "server.addr",
	"log-level":    "log.level",
	"debug-format": "ui.debugformat",
}

// AddFlags registers the flags Load knows how to bind.
func AddFlags(flags *pflag.FlagSet) {
	flags.String("addr", "", "listen address (overrides server.addr)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("debug-format", "", "page two debug dump format: json or yaml")
}

// Load reads configuration from environment variables, an optional config
// file, and flags that were explicitly set. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("PAGEFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.keepalive", 15*time.Second)
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("ui.debugformat", string(view.FormatJSON))

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := view.ParseFormat(cfg.UI.DebugFormat); err != nil {
		return Config{}, err
	}
	if cfg.Server.KeepAlive <= 0 {
		return Config{}, fmt.Errorf("server keepalive must be positive, got %s", cfg.Server.KeepAlive)
	}

	return cfg, nil
}

// DebugFormat returns the validated page two dump format.
func (c Config) DebugFormat() view.Format {
	f, err := view.ParseFormat(c.UI.DebugFormat)
	if err != nil {
		return view.FormatJSON
	}
	return f
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
