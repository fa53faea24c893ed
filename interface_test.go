// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package relimit

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gogama/relimit/request"
)

// Client must satisfy the full Executor interface.
var _ Executor = (*Client)(nil)

type mockDoer struct {
	mock.Mock
}

func (m *mockDoer) Do(p *request.Plan) (*request.Execution, error) {
	args := m.Called(p)
	e, _ := args.Get(0).(*request.Execution)
	return e, args.Error(1)
}

func TestGet(t *testing.T) {
	m := &mockDoer{}
	m.Test(t)
	expected := &request.Execution{}
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "GET" && p.URL.String() == "https://api.example.com/a"
	})).Return(expected, nil).Once()

	e, err := Get(m, "https://api.example.com/a")

	require.NoError(t, err)
	assert.Same(t, expected, e)
	m.AssertExpectations(t)

	_, err = Get(m, "://bad")
	assert.Error(t, err)
}

func TestHead(t *testing.T) {
	m := &mockDoer{}
	m.Test(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "HEAD"
	})).Return(&request.Execution{}, nil).Once()

	_, err := Head(m, "https://api.example.com")

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestPost(t *testing.T) {
	m := &mockDoer{}
	m.Test(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "POST" &&
			p.Header.Get("Content-Type") == "application/json" &&
			string(p.Body) == `{}`
	})).Return(&request.Execution{}, nil).Once()

	_, err := Post(m, "https://api.example.com", "application/json", `{}`)

	require.NoError(t, err)
	m.AssertExpectations(t)

	_, err = Post(m, "https://api.example.com", "application/json", 42)
	assert.Error(t, err)
}

func TestPostForm(t *testing.T) {
	m := &mockDoer{}
	m.Test(t)
	m.On("Do", mock.MatchedBy(func(p *request.Plan) bool {
		return p.Method == "POST" &&
			p.Header.Get("Content-Type") == "application/x-www-form-urlencoded" &&
			string(p.Body) == "id=123"
	})).Return(&request.Execution{}, nil).Once()

	_, err := PostForm(m, "https://api.example.com", url.Values{"id": {"123"}})

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestInflate(t *testing.T) {
	t.Run("nil doer panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "relimit: nil doer", func() { Inflate(nil) })
	})
	t.Run("executor passes through", func(t *testing.T) {
		cl := &Client{}
		assert.Same(t, cl, Inflate(cl))
	})
	t.Run("doer is wrapped", func(t *testing.T) {
		m := &mockDoer{}
		m.Test(t)
		ex := Inflate(m)
		expected := &request.Execution{}
		m.On("Do", mock.Anything).Return(expected, nil).Times(5)

		e, err := ex.Do(&request.Plan{})
		require.NoError(t, err)
		assert.Same(t, expected, e)
		_, err = ex.Get("https://api.example.com")
		require.NoError(t, err)
		_, err = ex.Head("https://api.example.com")
		require.NoError(t, err)
		_, err = ex.Post("https://api.example.com", "text/plain", "hi")
		require.NoError(t, err)
		_, err = ex.PostForm("https://api.example.com", url.Values{})
		require.NoError(t, err)
		// CloseIdleConnections is a no-op for a Doer without the
		// capability.
		assert.NotPanics(t, ex.CloseIdleConnections)
		m.AssertExpectations(t)
	})
}
