package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr  string
	Timeout     time.Duration
	Cooldown    time.Duration
	SessionFile string
}

// loadConfig layers defaults, an optional config file and IMAGEFEED_* env
// overrides.
func loadConfig() (*Config, error) {
	var cfgFile string
	flag.StringVar(&cfgFile, "config", "", "path to config file")
	flag.Parse()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v := viper.New()
	v.SetDefault("server_addr", "http://localhost:5000")
	v.SetDefault("timeout", "15s")
	v.SetDefault("vote_cooldown", "1s")
	v.SetDefault("session_file", filepath.Join(home, ".imagefeed", "session.json"))

	v.SetEnvPrefix("imagefeed")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		err = v.ReadInConfig()
		if err != nil {
			return nil, err
		}
	}

	return &Config{
		ServerAddr:  v.GetString("server_addr"),
		Timeout:     v.GetDuration("timeout"),
		Cooldown:    v.GetDuration("vote_cooldown"),
		SessionFile: v.GetString("session_file"),
	}, nil
}
