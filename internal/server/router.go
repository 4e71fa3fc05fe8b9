// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"github.com/gin-gonic/gin"

	"github.com/intel/fasthuf/internal/config"
	"github.com/intel/fasthuf/internal/logger"
)

// Register installs the routes of h on r.
func Register(r *gin.Engine, h *Handler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/compress", h.Compress)
		v1.POST("/decompress", h.Decompress)
	}
}

// NewEngine returns a gin engine serving the codec.
func NewEngine(conf config.Server, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	Register(r, NewHandler(log, conf.MaxBodyBytes))
	return r
}
