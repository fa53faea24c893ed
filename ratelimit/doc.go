// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package ratelimit reads API rate limit metadata from HTTP response
// headers.
//
// Many HTTP APIs report the state of a fixed-window rate limiter on
// every response using the de facto standard x-ratelimit-* headers.
// FromHeaders parses those headers into an immutable Snapshot, which
// answers the two questions a client needs: am I out of quota right
// now (IsRateLimited), and how long until the window resets
// (TimeUntilReset). IsNearLimit supports proactive throttling for
// callers who would rather slow down than get throttled.
//
// Package ratelimit is extremely lightweight, as it depends only on
// standard library packages, so it doesn't bring any significant
// dependencies when imported as a standalone package.
package ratelimit
