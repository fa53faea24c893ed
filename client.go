// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package relimit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gogama/relimit/request"
	"github.com/gogama/relimit/retry"
)

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the Go
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// DefaultAttemptTimeout is the timeout set on each individual request
// attempt when Client.AttemptTimeout is zero.
const DefaultAttemptTimeout = 5 * time.Second

// NoAttemptTimeout disables the per-attempt timeout when assigned to
// Client.AttemptTimeout. The plan context, if it has a deadline, still
// bounds the execution.
const NoAttemptTimeout = time.Duration(1<<63 - 1)

const notResendableMsg = "relimit: request body is not resendable (set GetBody)"

var emptyHandlers = HandlerGroup{}

// A Client is a rate-limit-aware HTTP client with retry support. Its
// zero value is a valid configuration: it uses http.DefaultClient as
// the HTTPDoer, retry.Default as the retry configuration, a 5 second
// per-attempt timeout, and no event handlers.
//
// Client's HTTPDoer typically has internal state (cached TCP
// connections), so Client instances should be reused instead of
// created as needed. Client is safe for concurrent use by multiple
// goroutines; each execution gets its own retry policy instance, so
// concurrent executions never share retry state.
//
// A Client is higher-level than its HTTPDoer. The HTTPDoer owns the
// mechanics of a single request/response exchange (connections,
// redirects, cookies); on top of that, Client:
//
// • buffers the entire response body into a []byte (the
// Execution.Body field);
//
// • retries failed attempts according to a retry.Config, honoring the
// server's rate limit metadata when it reports a throttling window;
//
// • bounds each attempt with a timeout;
//
// • invokes user-provided handlers at designated points within the
// attempt/retry loop; and
//
// • implements the Executor interface.
//
// Client's HTTP methods follow the naming and rough parameter schema
// of the Go standard http.Client. The main differences are that Do
// consumes a request.Plan, which is suitable for making multiple
// attempts, and that all methods return a request.Execution carrying
// metadata about the attempts made and a fully-buffered response body.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// Retry selects the retry behavior for executions started by this
	// client. A fresh retry policy is minted from it for every
	// execution.
	//
	// If Retry is the zero Config, retry.Default is used. To turn
	// retries off, set Retry to retry.None().
	Retry retry.Config
	// AttemptTimeout is the timeout set on each individual request
	// attempt, as distinct from any deadline on the plan context,
	// which bounds the whole execution.
	//
	// If AttemptTimeout is zero, DefaultAttemptTimeout is used. Use
	// NoAttemptTimeout to disable the per-attempt timeout.
	AttemptTimeout time.Duration
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during an execution.
	//
	// If Handlers is nil, no custom handlers are run.
	Handlers *HandlerGroup
}

// Do executes an HTTP request plan and returns the results, following
// the retry configuration and attempt timeout set on Client, and
// low-level policy set on the underlying HTTPDoer.
//
// The result returned is the result of the final request attempt made
// during the execution, as determined by the retry policy. A non-2XX
// status code in the final attempt does not result in an error; an
// error is returned only if the final attempt failed to produce a
// response and body, or if the plan context was cancelled or expired.
// Any returned error has type *url.Error, and the same value is
// available in the Err field of the returned Execution.
//
// The returned Execution is never nil. If the returned error is nil,
// the Execution contains a non-nil Response and a non-nil (possibly
// empty) Body.
//
// For simple use cases, the Get, Head, Post, and PostForm methods may
// prove easier to use than Do.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	policy := c.retryConfig().New()
	e := &request.Execution{
		Plan: p,
		ID:   uuid.New(),
	}
	return c.run(p.Context(), e, policy, p.ToRequest)
}

// DoRequest executes an already-built HTTP request with the same retry
// behavior as Do.
//
// Because a retry must re-send the request body, the request body must
// be duplicable: req.GetBody must be non-nil whenever req.Body is.
// http.NewRequest sets GetBody automatically for buffered body types
// such as *bytes.Buffer, *bytes.Reader, and *strings.Reader. DoRequest
// returns an error for a request with a one-shot body rather than let
// the retry loop discover it mid-flight.
//
// Re-sent attempts use a duplicate of req built by the retry policy;
// req itself is sent only once, on the initial attempt. The Plan field
// of the returned Execution is nil.
func (c *Client) DoRequest(req *http.Request) (*request.Execution, error) {
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return nil, errors.New(notResendableMsg)
	}
	policy := c.retryConfig().New()
	e := &request.Execution{
		ID: uuid.New(),
	}
	sent := false
	next := func(ctx context.Context) *http.Request {
		if !sent {
			sent = true
			return req.WithContext(ctx)
		}
		return policy.CloneRequest(req).WithContext(ctx)
	}
	return c.run(req.Context(), e, policy, next)
}

// run is the retry executor: it alternates request attempts with
// policy decisions until the policy declines to retry or the context
// ends the execution.
func (c *Client) run(ctx context.Context, e *request.Execution, policy *retry.Policy, next func(context.Context) *http.Request) (*request.Execution, error) {
	doer := c.doer()
	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	for {
		c.sendAndReceive(ctx, e, doer, handlers, next)
		handlers.run(AfterAttempt, e)
		if err := ctx.Err(); err != nil {
			if e.Err == nil {
				e.Err = wrapErr(e.Request, err)
			}
			break
		}
		wait, again := policy.Decide(e)
		if !again {
			break
		}
		if wait < 0 {
			panic("relimit: retry policy produced a negative wait")
		}
		e.Wait = wait
		handlers.run(BeforeWait, e)
		if err := waitFor(ctx, wait); err != nil {
			e.Err = wrapErr(e.Request, err)
			break
		}
		e.WaitTotal += wait
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Attempt++
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, e)
	return e, e.Err
}

// waitFor suspends until the wait period elapses or ctx is done,
// whichever comes first. A cancelled wait leaves no state behind.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) sendAndReceive(ctx context.Context, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, next func(context.Context) *http.Request) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout())
	defer cancel()
	e.Request = next(ctx)
	handlers.run(BeforeAttempt, e)
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = wrapErr(e.Request, err)
		return
	}
	readBody(e, handlers)
}

func readBody(e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = wrapErr(e.Request, err)
	}
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Head(url string) (*request.Execution, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.NewPlan, request.BodyBytes, and
// relimit.Post, namely: string; []byte; io.Reader; and io.ReadCloser.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewPlan and Client.Do.
func (c *Client) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(c, url, data)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer, if the HTTPDoer has one; otherwise it does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) retryConfig() retry.Config {
	if c.Retry == (retry.Config{}) {
		return retry.Default
	}

	return c.Retry
}

func (c *Client) attemptTimeout() time.Duration {
	if c.AttemptTimeout == 0 {
		return DefaultAttemptTimeout
	}

	return c.AttemptTimeout
}

func wrapErr(req *http.Request, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(req.Method),
		URL: req.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
