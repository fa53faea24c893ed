// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether, and after what delay, a failed HTTP
// request attempt should be re-sent, using the server's own rate limit
// metadata to stay clear of an active throttling window.
//
// Pick a Config when building the client, then mint a Policy per
// logical request:
//
//	cfg := retry.Times(3)
//	...
//	policy := cfg.New()           // one per execution
//	wait, again := policy.Decide(e)
//	if again {
//	    // suspend for wait, then re-send policy.CloneRequest(req)
//	}
//
// The decision rules are deliberately small and fail closed: transport
// errors and 5xx responses retry immediately, 429 and 403 responses
// retry only when the response's x-ratelimit-* headers prove the quota
// is exhausted (in which case the wait runs to the reported window
// reset), and everything else ends the execution. See the ratelimit
// package for the header parsing and reset arithmetic.
//
// relimit.Client consumes this package as its retry engine; the types
// are exported so that other executors can drive the same decisions.
package retry
