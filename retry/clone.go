// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"net/url"
)

const notResendableMsg = "relimit/retry: request body is not resendable (GetBody is nil)"

// CloneRequest builds a duplicate of req that is ready to re-send:
// same method, URL, protocol version, headers, host and trailer, and a
// fresh copy of the body content.
//
// An in-flight http.Request cannot simply be re-sent, because its Body
// is a one-shot stream that the previous attempt has already consumed.
// CloneRequest therefore requires the original request to carry the
// standard GetBody capability (http.NewRequest sets it for buffered
// body types); requests with a non-duplicable body should be rejected
// when the surrounding client accepts them, not discovered here.
//
// CloneRequest returns nil when the policy was minted from None, since
// a policy that never retries never needs a duplicate. It panics if
// req has a body but no GetBody, or if GetBody fails: both mean the
// caller handed the retry loop a request it could never legally
// re-send, which is a bug in the caller's request construction rather
// than a runtime condition to recover from.
func (p *Policy) CloneRequest(req *http.Request) *http.Request {
	if p.disabled {
		return nil
	}

	r2 := &http.Request{
		Method:        req.Method,
		URL:           cloneURL(req.URL),
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        req.Header.Clone(),
		Trailer:       req.Trailer.Clone(),
		Host:          req.Host,
		ContentLength: req.ContentLength,
		Close:         req.Close,
	}
	r2 = r2.WithContext(req.Context())

	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			panic(notResendableMsg)
		}
		body, err := req.GetBody()
		if err != nil {
			panic("relimit/retry: GetBody failed on a valid request: " + err.Error())
		}
		r2.Body = body
		r2.GetBody = req.GetBody
	}

	return r2
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	u2 := *u
	if u.User != nil {
		user := *u.User
		u2.User = &user
	}
	return &u2
}
