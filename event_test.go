// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package relimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, Events(), numEvents)
	events := Events()
	assert.Equal(t, BeforeExecutionStart, events[BeforeExecutionStart])
	assert.Equal(t, BeforeAttempt, events[BeforeAttempt])
	assert.Equal(t, BeforeReadBody, events[BeforeReadBody])
	assert.Equal(t, AfterAttempt, events[AfterAttempt])
	assert.Equal(t, BeforeWait, events[BeforeWait])
	assert.Equal(t, AfterExecutionEnd, events[AfterExecutionEnd])
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "BeforeExecutionStart", BeforeExecutionStart.Name())
	assert.Equal(t, "BeforeAttempt", BeforeAttempt.Name())
	assert.Equal(t, "BeforeReadBody", BeforeReadBody.Name())
	assert.Equal(t, "AfterAttempt", AfterAttempt.Name())
	assert.Equal(t, "BeforeWait", BeforeWait.Name())
	assert.Equal(t, "AfterExecutionEnd", AfterExecutionEnd.Name())
	assert.Panics(t, func() { _ = Event(123).Name() })
}

func TestEvent_String(t *testing.T) {
	for _, evt := range Events() {
		assert.Equal(t, evt.Name(), evt.String())
	}
}
