// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// An Execution represents the state of a single logical HTTP request
// execution.
//
// An Execution is created when the execution starts, updated as it
// progresses (when a response arrives, when a retry wait begins), and
// ultimately returned as the execution's result. Retry policies and
// event handlers receive the Execution as their input; they may stash
// their own data on it with SetValue, but should treat the exported
// fields as read-only, since the executor depends on them.
type Execution struct {
	// Plan specifies the HTTP request plan being executed. It is nil
	// only when the execution was started from a raw http.Request
	// rather than a Plan.
	Plan *Plan

	// ID uniquely identifies the execution, for correlating handler
	// output (logs, metrics) across the attempts of one execution.
	ID uuid.UUID

	// Start is the start time of the execution. It is assigned a
	// non-zero value when the execution starts and is constant
	// thereafter.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends.
	End time.Time

	// Attempt is the zero-based number of the current request attempt:
	// zero on the initial attempt, one on the first retry, and so on.
	// When the execution has ended, Attempt is the number of the final
	// attempt made.
	Attempt int

	// Request specifies the HTTP request made, or about to be made, in
	// the current attempt.
	Request *http.Request

	// Response specifies the HTTP response received in the most recent
	// request attempt. It is nil if the most recent attempt ended in a
	// transport error, or while an attempt is underway.
	Response *http.Response

	// Err is the error received in the most recent request attempt,
	// or nil if the attempt succeeded. Whenever Err is non-nil, it has
	// the type *url.Error.
	//
	// While the execution is in flight Err may fluctuate between nil
	// and non-nil values as attempts fail and are retried. Once the
	// execution has ended it no longer changes, and it is the same
	// error returned by the client's executing method.
	Err error

	// Body is the complete response body read after the most recent
	// request attempt. It is nil if the attempt ended in an error
	// before or during the body read; treat it as invalid unless Err
	// is nil.
	Body []byte

	// Wait is the wait period that preceded the current attempt, as
	// decided by the retry policy. It is zero for the initial attempt
	// and for immediate retries. It is updated before the BeforeWait
	// event fires, so handlers observing that event see the upcoming
	// wait.
	Wait time.Duration

	// WaitTotal is the total time the execution has spent suspended in
	// retry waits so far.
	WaitTotal time.Duration

	// data contains arbitrary user data attached via SetValue.
	data context.Context
}

// StatusCode returns the status code of the HTTP response from the
// most recent request attempt, or 0 if there is no HTTP response
// (because the attempt ended in a transport error, or an attempt is
// underway, or the execution has not started).
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent
// request attempt, or nil if there is no HTTP response.
//
// A nil return value is safe for read-only use, since http.Header is a
// map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, it is End minus Start. Otherwise it is the
// current time minus Start, so the value increases monotonically over
// the life of the execution and becomes static when it ends.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started. If it returns
// true, Start contains the execution start time.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended. If it returns true,
// End contains the end time and the execution will not change further.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// caused by a timeout, either on an individual request attempt or on
// the execution's context deadline.
func (e *Execution) Timeout() bool {
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// SetValue attaches arbitrary data to the execution, for example to
// pass state between event handlers observing the same execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should be of an unexported type to avoid collisions between
// handlers.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
