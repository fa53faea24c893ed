// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package relimit

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution is
	// non-nil but only its Plan (which is nil for DoRequest
	// executions) and ID fields have been set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual HTTP request attempt during the execution.
	//
	// When Client fires BeforeAttempt, the execution's Request field
	// is set to the HTTP request that WILL BE sent after all
	// BeforeAttempt handlers have finished.
	//
	// BeforeAttempt handlers may modify the execution's request, for
	// example to sign it, but should clone reference-typed fields
	// (URL, Header) before changing them, as on plan-based executions
	// those fields are shared with the plan.
	BeforeAttempt
	// BeforeReadBody identifies the event that occurs after a request
	// attempt has produced an HTTP response (as opposed to an error)
	// but before the response body is read and buffered.
	//
	// BeforeReadBody never fires if the attempt ended in error, but
	// always fires when a response is received, regardless of status
	// code and regardless of whether the response has a body.
	BeforeReadBody
	// AfterAttempt identifies the event that occurs after a request
	// attempt is concluded, successfully or not, and before the retry
	// policy is consulted about the attempt.
	//
	// When Client fires AfterAttempt, the execution's Response field
	// or its Err field, or both, are non-nil (both, only when the
	// error occurred while reading the response body).
	AfterAttempt
	// BeforeWait identifies the event that occurs after the retry
	// policy has decided to retry an attempt and before the execution
	// suspends for the wait period.
	//
	// When Client fires BeforeWait, the execution's Wait field is set
	// to the upcoming wait duration, which is zero for an immediate
	// retry.
	BeforeWait
	// AfterExecutionEnd identifies the event that occurs after the
	// execution ends.
	//
	// When Client fires AfterExecutionEnd, the execution is in the
	// same state it was in after the final request attempt (and last
	// AfterAttempt event) EXCEPT that the end time is set.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttempt",
	"BeforeWait",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in an
// execution by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		BeforeReadBody,
		AfterAttempt,
		BeforeWait,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
