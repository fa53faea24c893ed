// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package relimit provides a rate-limit-aware HTTP client with retry
support within a simple and familiar interface.

Create a Client to begin making requests.

	client := &relimit.Client{}
	ex, err := client.Get("https://api.example.com/widgets")
	...
	ex, err := client.Post("https://api.example.com/widgets",
		"application/json", &buf)

Failed attempts are retried according to the client's retry
configuration: transport errors and 5xx responses are re-sent
immediately, while a 429 or 403 response carrying x-ratelimit-*
headers that show the quota is exhausted is re-sent once the reported
rate limit window resets. Set the number of retries, or turn retries
off, with a retry.Config:

	client := &relimit.Client{
		Retry: retry.Times(5),
	}
	...
	client := &relimit.Client{
		Retry: retry.None(),
	}

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer, for example a Go standard HTTP
client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &relimit.Client{
		HTTPDoer: doer,
	}

To hook into the fine-grained details of the request execution logic,
install a handler into the appropriate handler chain:

	handlers := &relimit.HandlerGroup{}
	handlers.PushBack(relimit.BeforeWait, relimit.HandlerFunc(
		func(_ relimit.Event, e *request.Execution) {
			log.Printf("throttled, waiting %s before attempt %d", e.Wait, e.Attempt+1)
		}),
	)
	client := &relimit.Client{
		Handlers: handlers,
	}

The logging subpackage provides a ready-made handler that reports
execution progress through a charmbracelet/log logger.

Package relimit provides basic interfaces for each method of the
client (Doer, Getter, Header, Poster, FormPoster, and IdleCloser); a
combined interface composing all the basic methods (Executor); and
utility functions for working with a Doer (Inflate, Get, Head, Post,
and PostForm).
*/
package relimit
