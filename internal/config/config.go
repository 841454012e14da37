package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr              string
		ReadHeaderTimeout time.Duration
		ShutdownTimeout   time.Duration
	}
	Templates struct {
		Dir string // empty means use the embedded templates
	}
	Static struct {
		Dir string // empty means use the embedded assets
	}
	Debug          bool
	Minify         bool
	MetricsEnabled bool
}

// Load reads config from environment (COMMAS_ prefix) and optional commas.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("COMMAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("commas")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", "127.0.0.1:5000")
	v.SetDefault("http.read_header_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("debug", true)
	v.SetDefault("metrics.enabled", true)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.Templates.Dir = v.GetString("templates.dir")
	cfg.Static.Dir = v.GetString("static.dir")
	cfg.Debug = v.GetBool("debug")
	cfg.MetricsEnabled = v.GetBool("metrics.enabled")

	// Minification follows the opposite of debug unless set explicitly.
	cfg.Minify = !cfg.Debug
	if v.IsSet("minify") {
		cfg.Minify = v.GetBool("minify")
	}

	var err error
	if cfg.HTTP.ReadHeaderTimeout, err = time.ParseDuration(v.GetString("http.read_header_timeout")); err != nil {
		return nil, fmt.Errorf("invalid COMMAS_HTTP_READ_HEADER_TIMEOUT: %w", err)
	}
	if cfg.HTTP.ShutdownTimeout, err = time.ParseDuration(v.GetString("http.shutdown_timeout")); err != nil {
		return nil, fmt.Errorf("invalid COMMAS_HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}

	if cfg.HTTP.Addr == "" {
		return nil, fmt.Errorf("COMMAS_HTTP_ADDR must not be empty")
	}
	if err := checkDir(cfg.Templates.Dir); err != nil {
		return nil, fmt.Errorf("invalid COMMAS_TEMPLATES_DIR: %w", err)
	}
	if err := checkDir(cfg.Static.Dir); err != nil {
		return nil, fmt.Errorf("invalid COMMAS_STATIC_DIR: %w", err)
	}

	return cfg, nil
}

func checkDir(dir string) error {
	if dir == "" {
		return nil
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
