// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides a ready-made relimit event handler that
// reports execution progress through a charmbracelet/log logger.
//
// The handler is opt-in: relimit.Client logs nothing by default.
// Install it into the client's handler group, either for selected
// events with HandlerGroup.PushBack or for all interesting events with
// Install:
//
//	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "relimit"})
//	handlers := &relimit.HandlerGroup{}
//	logging.Install(handlers, logger)
//	client := &relimit.Client{Handlers: handlers}
package logging

import (
	"github.com/charmbracelet/log"

	"github.com/gogama/relimit"
	"github.com/gogama/relimit/request"
)

// NewHandler returns an event handler that logs execution progress to
// logger. Attempts are logged at debug level, attempt failures at warn
// level, and retry waits and execution ends at info level. Every
// record carries the execution ID so the attempts of one execution can
// be correlated.
func NewHandler(logger *log.Logger) relimit.Handler {
	if logger == nil {
		panic("relimit/logging: nil logger")
	}
	return &handler{logger: logger}
}

// Install creates a handler with NewHandler and pushes it onto g's
// chains for the events the handler reports on.
func Install(g *relimit.HandlerGroup, logger *log.Logger) {
	h := NewHandler(logger)
	g.PushBack(relimit.BeforeAttempt, h)
	g.PushBack(relimit.AfterAttempt, h)
	g.PushBack(relimit.BeforeWait, h)
	g.PushBack(relimit.AfterExecutionEnd, h)
}

type handler struct {
	logger *log.Logger
}

func (h *handler) Handle(evt relimit.Event, e *request.Execution) {
	switch evt {
	case relimit.BeforeAttempt:
		h.logger.Debug("sending attempt",
			"execution", e.ID,
			"attempt", e.Attempt,
			"method", e.Request.Method,
			"url", e.Request.URL)
	case relimit.AfterAttempt:
		if e.Err != nil {
			h.logger.Warn("attempt failed",
				"execution", e.ID,
				"attempt", e.Attempt,
				"error", e.Err)
		} else {
			h.logger.Debug("attempt finished",
				"execution", e.ID,
				"attempt", e.Attempt,
				"status", e.StatusCode())
		}
	case relimit.BeforeWait:
		h.logger.Info("waiting to retry",
			"execution", e.ID,
			"attempt", e.Attempt,
			"status", e.StatusCode(),
			"wait", e.Wait)
	case relimit.AfterExecutionEnd:
		h.logger.Info("execution ended",
			"execution", e.ID,
			"attempts", e.Attempt+1,
			"status", e.StatusCode(),
			"duration", e.Duration(),
			"waited", e.WaitTotal)
	}
}
