// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"time"

	"github.com/gogama/relimit/ratelimit"
	"github.com/gogama/relimit/request"
)

// A Policy makes the retry decisions for one logical HTTP request
// execution.
//
// A Policy is stateful: it tracks the number of retries the execution
// has left, and Decide consumes one on every evaluated attempt. Mint a
// fresh Policy from a Config for each execution and discard it when
// the execution ends. A Policy must be owned by a single execution's
// retry loop and is not safe for concurrent use.
type Policy struct {
	disabled  bool
	remaining uint
}

// Remaining returns the number of retries the execution has left. It
// is always zero for a policy minted from None.
func (p *Policy) Remaining() uint {
	return p.remaining
}

// Decide evaluates the outcome of the most recent request attempt in e
// and reports whether the attempt should be retried and, if so, how
// long to wait first.
//
// If the second return value is false the execution must stop and
// return its current result. If it is true, the caller should wait for
// the returned duration (zero means retry immediately), then re-send a
// duplicate of the original request. The wait is returned as a plain
// duration so the caller can suspend on it without blocking a thread,
// typically by racing a timer against a context so that cancelling the
// execution also cancels the wait.
//
// Decision logic, in order of precedence:
//
//  1. A policy minted from None, or one whose retries are exhausted,
//     never retries, and Decide is a no-op on policy state.
//  2. Otherwise one retry is consumed and the attempt outcome is
//     classified. A transport error (no response arrived) or a 5xx
//     response retries immediately. A 429 or 403 response retries
//     after the server's rate limit window resets, but only when the
//     response carries parseable rate limit headers showing the quota
//     is currently exhausted; without that evidence the attempt is not
//     retried, since repeating a throttled or forbidden request
//     blindly tends to repeat the failure. Every other outcome,
//     success included, is final.
//
// Decide never fails: missing or unparseable rate limit metadata
// silently degrades to "do not retry". The returned duration is never
// negative.
func (p *Policy) Decide(e *request.Execution) (time.Duration, bool) {
	if p.disabled || p.remaining == 0 {
		return 0, false
	}
	p.remaining--

	switch classify(e) {
	case transportErr, serverErr:
		return 0, true
	case throttled:
		s, ok := ratelimit.FromHeaders(e.Header())
		if ok && s.IsRateLimited() {
			return s.TimeUntilReset(), true
		}
		return 0, false
	case final:
		return 0, false
	default:
		panic("relimit/retry: unhandled outcome class")
	}
}

// outcome is the closed set of attempt result classes the policy
// distinguishes. Classification is kept separate from the decision so
// that admitting a new retryable status class is a one-line change in
// classify.
type outcome int

const (
	// final covers success and every status with no retry story.
	final outcome = iota
	// transportErr means no response arrived at all.
	transportErr
	// serverErr is any 5xx status.
	serverErr
	// throttled is a status that may carry rate limit evidence.
	throttled
)

func classify(e *request.Execution) outcome {
	if e.Response == nil {
		return transportErr
	}
	switch s := e.StatusCode(); {
	case s >= 500 && s <= 599:
		return serverErr
	case s == http.StatusTooManyRequests || s == http.StatusForbidden:
		return throttled
	default:
		return final
	}
}
