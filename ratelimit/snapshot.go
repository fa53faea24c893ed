// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Response header names consumed by FromHeaders. Lookup is
// case-insensitive, as http.Header canonicalizes keys.
const (
	LimitHeader     = "X-Ratelimit-Limit"
	RemainingHeader = "X-Ratelimit-Remaining"
	ResetHeader     = "X-Ratelimit-Reset"
	UsedHeader      = "X-Ratelimit-Used"
)

// A Snapshot is an immutable picture of the server's rate limiter
// state, taken from the rate limit headers of a single HTTP response.
//
// A snapshot carries no relation to any prior response: it is built
// fresh from each response's headers, consulted, and discarded. It is
// safe to copy and safe for concurrent use.
type Snapshot struct {
	// Limit is the total request quota for the current rate limit
	// window.
	Limit uint64
	// Remaining is the number of requests left in the current window.
	Remaining uint64
	// Used is the number of requests already consumed in the current
	// window. It is zero if the server did not report a usable value.
	Used uint64
	// Reset is the time, in UTC, at which the current window ends and
	// the quota is restored.
	Reset time.Time
}

// Reset timestamps further out than this cannot be expressed as a
// time.Duration from now, so FromHeaders clamps them.
const maxResetSeconds = math.MaxInt64 / int64(time.Second)

// FromHeaders builds a Snapshot from the rate limit headers of an HTTP
// response.
//
// The limit, remaining and reset headers are required; limit and
// remaining must parse as unsigned integers and reset as an integer
// Unix timestamp in seconds. If any of the three is missing or does
// not parse, the second return value is false and the snapshot must
// not be used. The used header is optional and defaults to zero.
//
// A reset timestamp that parses but lies outside the range a future
// wait can meaningfully express is clamped to the current time, so the
// window reads as already reset.
func FromHeaders(h http.Header) (Snapshot, bool) {
	limit, ok := uintHeader(h, LimitHeader)
	if !ok {
		return Snapshot{}, false
	}
	remaining, ok := uintHeader(h, RemainingHeader)
	if !ok {
		return Snapshot{}, false
	}
	reset, ok := resetHeader(h, ResetHeader)
	if !ok {
		return Snapshot{}, false
	}
	used, ok := uintHeader(h, UsedHeader)
	if !ok {
		used = 0
	}
	return Snapshot{
		Limit:     limit,
		Remaining: remaining,
		Used:      used,
		Reset:     reset,
	}, true
}

// TimeUntilReset returns the time remaining until the current rate
// limit window ends. The return value is never negative: once the
// reset time has passed, the duration is zero and the window should be
// treated as already reset.
func (s Snapshot) TimeUntilReset() time.Duration {
	d := time.Until(s.Reset)
	if d < 0 {
		return 0
	}
	return d
}

// IsRateLimited reports whether the caller is out of quota right now:
// the window has no requests remaining and its reset time is still in
// the future. A snapshot with zero remaining requests whose reset time
// has already passed is not rate limited, since the server will have
// opened a new window.
func (s Snapshot) IsRateLimited() bool {
	return s.Remaining == 0 && s.TimeUntilReset() > 0
}

// IsNearLimit reports whether the fraction of quota remaining has
// fallen below threshold, which must be in the range [0.0, 1.0].
//
// Use IsNearLimit to throttle proactively before the server starts
// rejecting requests; the retry policy in package retry does not
// consult it.
func (s Snapshot) IsNearLimit(threshold float64) bool {
	return float64(s.Remaining)/float64(s.Limit) < threshold
}

func uintHeader(h http.Header, name string) (uint64, bool) {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func resetHeader(h http.Header, name string) (time.Time, bool) {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return time.Now().UTC(), true
		}
		return time.Time{}, false
	}
	if sec < 0 || sec > maxResetSeconds {
		return time.Now().UTC(), true
	}
	return time.Unix(sec, 0).UTC(), true
}
