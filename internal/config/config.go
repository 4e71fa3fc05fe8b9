// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads command configuration.
//
// The precedence is:
//
//	command line flags > environment > configuration file
package config

import (
	"flag"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvPrefix prefixes the environment variable of every flag.
const EnvPrefix = "HUF_"

// Configuration is the complete configuration of the huf commands.
type Configuration struct {
	Verbose bool   `toml:"verbose"`
	Table   bool   `toml:"table"`
	Output  string `toml:"output"`
	Server  Server `toml:"server"`
}

// Server configures the hufd HTTP service.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Configuration {
	return Configuration{
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 64 << 20,
		},
	}
}

// Parse reads the configuration file named by -config (or HUF_CONFIG),
// then the flags in args, then fills flags that were not set from the
// environment. It returns the remaining positional arguments.
func Parse(name string, args []string) (Configuration, []string, error) {
	config := Default()

	configFile, explicit := findConfigFile(args), true
	if configFile == "" {
		configFile, explicit = envValueForFlag("config"), false
	}
	if err := parseConfigFile(configFile, explicit, &config); err != nil {
		return config, nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	setupFlags(fs, &config)
	if err := fs.Parse(args); err != nil {
		return config, nil, err
	}
	if err := setUnsetFlagsFromEnv(fs); err != nil {
		return config, nil, err
	}
	return config, fs.Args(), nil
}

// The config file has to be read before the flags so that the flags take
// precedence, so the -config flag is extracted directly.
func findConfigFile(args []string) string {
	configRx := regexp.MustCompile("^--?config(?:=(.*))?$")
	for index, arg := range args {
		if arg == "--" {
			break
		}
		match := configRx.FindStringSubmatch(arg)
		if match == nil {
			continue
		}
		if match[1] != "" {
			return match[1]
		}
		if len(args) > index+1 {
			return args[index+1]
		}
	}
	return ""
}

func parseConfigFile(configFile string, explicit bool, config *Configuration) error {
	if configFile == "" {
		return nil
	}
	_, err := toml.DecodeFile(configFile, config)
	if os.IsNotExist(err) && !explicit {
		return nil
	}
	return err
}

func setUnsetFlagsFromEnv(fs *flag.FlagSet) (err error) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	fs.VisitAll(func(f *flag.Flag) {
		if set[f.Name] || err != nil {
			return
		}
		if val := envValueForFlag(f.Name); val != "" {
			err = fs.Set(f.Name, val)
		}
	})
	return err
}

func envValueForFlag(name string) string {
	key := EnvPrefix + strings.ToUpper(strings.Replace(name, "-", "_", -1))
	return os.Getenv(key)
}
