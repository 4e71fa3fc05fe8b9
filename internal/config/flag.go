// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package config

import "flag"

func setupFlags(fs *flag.FlagSet, config *Configuration) {
	_ = fs.String("config", "", "The path to the TOML configuration file")

	fs.BoolVar(&config.Verbose, "v", config.Verbose, "Log debug information")
	fs.BoolVar(&config.Table, "table", config.Table, "Print the code table after compressing")
	fs.StringVar(&config.Output, "o", config.Output, "Output file (default: input with the extension swapped)")

	// Server configuration
	fs.StringVar(&config.Server.Addr, "addr", config.Server.Addr, "The address hufd listens on")
	fs.Int64Var(&config.Server.MaxBodyBytes, "max-body-bytes", config.Server.MaxBodyBytes, "The largest request body hufd accepts")
}
