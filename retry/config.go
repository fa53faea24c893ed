// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

// A Config selects the retry behavior for logical HTTP request
// executions. It has two variants: None, which never retries, and
// Times, which allows a bounded number of retries.
//
// Config is an immutable value and is safe to share: store one Config
// on a client and mint a fresh Policy from it for every execution with
// New. The zero Config is reserved to mean "not configured" so that a
// client embedding a Config field can detect the unset state and apply
// its own default; when used directly it behaves like None.
type Config struct {
	kind     kind
	attempts uint
}

type kind int

const (
	kindUnset kind = iota
	kindNone
	kindBounded
)

// DefaultTimes is the number of retries allowed by Default.
const DefaultTimes = 3

// Default is a general-purpose retry configuration suitable for common
// use cases. It allows up to DefaultTimes retries.
var Default = Times(DefaultTimes)

// None returns a configuration that never retries.
func None() Config {
	return Config{kind: kindNone}
}

// Times returns a configuration that allows up to n retries per
// execution, so up to n+1 total attempts. Times(0) never retries.
func Times(n uint) Config {
	return Config{kind: kindBounded, attempts: n}
}

// New mints a Policy governing a single logical request execution.
//
// Each execution's retry loop must own its own Policy: the policy
// carries the execution's remaining-attempts counter and is not safe
// for concurrent use.
func (c Config) New() *Policy {
	return &Policy{
		disabled:  c.kind != kindBounded,
		remaining: c.attempts,
	}
}
