// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// hufd serves huf compression and decompression over HTTP.
package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/intel/fasthuf/internal/config"
	"github.com/intel/fasthuf/internal/logger"
	"github.com/intel/fasthuf/internal/server"
)

func main() {
	conf, _, err := config.Parse("hufd", os.Args[1:])
	log := logger.New(conf.Verbose)
	if err != nil {
		log.Errorf("parsing config: %v", err)
		os.Exit(1)
	}
	if !conf.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := server.NewEngine(conf.Server, log)
	log.Infof("starting hufd at %s", conf.Server.Addr)
	if err := r.Run(conf.Server.Addr); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
