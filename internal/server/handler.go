// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package server exposes the huf codec over HTTP.
package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/intel/fasthuf/compress/huf"
	"github.com/intel/fasthuf/internal/logger"
)

const contentType = "application/octet-stream"

// Handler serves compression requests. Every request runs its own codec.
type Handler struct {
	log     logger.Logger
	maxBody int64
}

func NewHandler(log logger.Logger, maxBody int64) *Handler {
	return &Handler{log: log, maxBody: maxBody}
}

func (h *Handler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err == nil {
		return body, true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
	return nil, false
}

// Compress answers with the .huf stream of the request body.
func (h *Handler) Compress(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	out := bytes.NewBuffer(make([]byte, 0, len(body)/2+64))
	stats, err := huf.Compress(out, bytes.NewReader(body))
	if err != nil {
		h.log.Errorf("compress: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.log.Debugf("compressed %d bytes to %d bytes", stats.In, stats.Out)
	c.Header("X-Huf-Symbols", strconv.Itoa(stats.Symbols()))
	c.Header("X-Huf-Max-Code-Len", strconv.Itoa(stats.MaxCodeLen))
	c.Data(http.StatusOK, contentType, out.Bytes())
}

// Decompress answers with the original bytes of a .huf request body.
func (h *Handler) Decompress(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	out := bytes.NewBuffer(make([]byte, 0, 2*len(body)))
	n, err := huf.Decompress(out, bytes.NewReader(body))
	if err != nil {
		var corrupt *huf.CorruptInputError
		if errors.As(err, &corrupt) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "offset": corrupt.Offset})
			return
		}
		h.log.Errorf("decompress: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.log.Debugf("decompressed %d bytes to %d bytes", len(body), n)
	c.Data(http.StatusOK, contentType, out.Bytes())
}
