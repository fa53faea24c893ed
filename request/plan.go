// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const nilCtxMsg = "relimit/request: nil context"

// A Plan describes a logical HTTP request which may take several
// request attempts to complete.
//
// A Plan looks like a stripped-down http.Request with the server-only
// fields removed and the streaming body replaced by a pre-buffered
// []byte. The buffering is what makes a Plan re-send safe: every
// attempt gets its own fresh body reader, so a retry can never find
// the body already consumed. Bodies that cannot be buffered cheaply
// should not be sent through a retrying client at all, which is why
// the conversion happens at construction time and not inside the retry
// loop.
//
// Like http.Request, a Plan has a context which bounds the entire plan
// execution, retry waits included, and can be used to cancel it at any
// time.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.). An
	// empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields sent with every
	// attempt. See the documentation of Request.Header in net/http for
	// the representation.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body means
	// no request body is sent, as on a typical GET or DELETE.
	Body []byte

	// Close stipulates whether to close the connection after each
	// request attempt, preventing TCP connection reuse between
	// attempts, as if Transport.DisableKeepAlives were set.
	Close bool

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host is sent. Host may contain an international
	// domain name.
	Host string

	// ctx bounds the entire plan execution. It is only changed by
	// copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser, as described on BodyBytes.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional body.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. A reader is drained and
// buffered immediately (and closed, if it is a closer), so that every
// request attempt within the plan execution can re-send the same
// content.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	// An HTTP method is a token in the RFC 7230 sense, the same
	// production httpguts validates header field names against.
	if !httpguts.ValidHeaderFieldName(method) {
		return nil, fmt.Errorf("relimit/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the request plan's context. The context controls
// cancellation of the overall plan execution. To change the context,
// use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
//
// The context controls the entire lifetime of the plan execution:
// individual request attempts, event handlers, and any retry wait
// periods.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// SetHeader sets a request header after validating the field name and
// value against RFC 7230. Use it when the header name or value comes
// from outside the program; for literals, writing to Header directly
// is fine.
func (p *Plan) SetHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("relimit/request: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("relimit/request: invalid value for header %s", name)
	}
	if p.Header == nil {
		p.Header = make(http.Header)
	}
	p.Header.Set(name, value)
	return nil
}

// AddCookie adds a cookie to the request plan. Per RFC 6265 section
// 5.4, AddCookie does not attach more than one Cookie header field.
// That means all cookies, if any, are written into the same line,
// separated by semicolons.
//
// AddCookie only sanitizes c's name and value, and does not sanitize a
// Cookie header already present in the plan.
func (p *Plan) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the provided username and password, which are
// transmitted base64-encoded but not encrypted.
func (p *Plan) SetBasicAuth(username, password string) {
	p.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// ToRequest creates an HTTP request corresponding to the given request
// plan for a single attempt. The context of the new request is set to
// ctx, which may not be nil.
//
// The returned request has GetBody set whenever the plan has a body,
// so the request is itself duplicable (retry.Policy.CloneRequest and
// the standard library's 307/308 redirect handling both rely on that
// capability).
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	r := &http.Request{
		Method:     p.Method,
		URL:        p.URL,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     p.Header,
		Host:       p.Host,
		Close:      p.Close,
	}
	r = r.WithContext(ctx)
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	return r
}

// basicAuth is lifted verbatim from net/http/client.go.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
