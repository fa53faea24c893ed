// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package relimit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogama/relimit/request"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var execs []*request.Execution
	h1 := &testHandler{seq: 1, evts: &evts, execs: &execs}
	h2 := &testHandler{seq: 2, evts: &evts, execs: &execs}
	g := &HandlerGroup{}
	t.Run("PushBack", func(t *testing.T) {
		assert.Panics(t, func() { g.PushBack(BeforeExecutionStart, nil) })
		assert.Panics(t, func() { g.PushBack(Event(123), h1) })
		g.PushBack(BeforeExecutionStart, h1)
		g.PushBack(BeforeExecutionStart, h2)
		g.PushBack(AfterAttempt, h1)
	})
	t.Run("run", func(t *testing.T) {
		e1 := &request.Execution{Attempt: 1}
		e2 := &request.Execution{Attempt: 2}
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(BeforeWait, e1)
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(BeforeExecutionStart, e1)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*request.Execution{e1, e1}, execs)
		evts = evts[:0]
		execs = execs[:0]
		g.run(AfterAttempt, e2)
		assert.Equal(t, []string{"1.AfterAttempt"}, evts)
		assert.Equal(t, []*request.Execution{e2}, execs)
	})
	t.Run("run on empty group", func(t *testing.T) {
		g2 := &HandlerGroup{}
		assert.NotPanics(t, func() { g2.run(AfterExecutionEnd, &request.Execution{}) })
	})
}

func TestHandlerFunc(t *testing.T) {
	var gotEvt Event
	var gotExec *request.Execution
	f := HandlerFunc(func(evt Event, e *request.Execution) {
		gotEvt = evt
		gotExec = e
	})
	e := &request.Execution{}
	f.Handle(BeforeAttempt, e)
	assert.Equal(t, BeforeAttempt, gotEvt)
	assert.Same(t, e, gotExec)
}

type testHandler struct {
	seq   int
	evts  *[]string
	execs *[]*request.Execution
}

func (h *testHandler) Handle(evt Event, e *request.Execution) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.execs = append(*h.execs, e)
}
