// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes a logical HTTP
request) and Execution (describes the state of one Plan execution).

A Plan describes how to make a logical HTTP request which may require
repeated request attempts if retries are needed. For those familiar
with the Go standard HTTP library, net/http, a Plan looks like a
stripped-down http.Request with all server-side fields removed and the
body fields replaced with a simple []byte, because a retrying client
needs a pre-buffered body it can re-send any number of times. Plan
fields are named and typed consistently with http.Request wherever
possible.

Create a plan to make a reliable HTTP request:

	p, err := request.NewPlan("GET", "https://example.com", nil)
	...
	e, err := client.Do(p)
	...

A plan may be assigned a context to bound or cancel the entire plan
execution, retry waits included:

	p, err := request.NewPlanWithContext(ctx, "POST", "https://example.com/upload", body)
	...

An Execution represents the state of one plan execution. Execution is
both the output type of relimit.Client's executing methods and the
input type for the callbacks invoked during the execution: the retry
policy and event handlers. You will typically not allocate Execution
instances yourself, but will instead work with the ones handed out by
the client's execution logic.
*/
package request
