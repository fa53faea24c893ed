// Copyright 2026 The relimit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_CloneRequest(t *testing.T) {
	t.Run("clones are independent and identical", func(t *testing.T) {
		original, err := http.NewRequest("POST", "https://api.example.com/widgets?page=2", strings.NewReader("the body"))
		require.NoError(t, err)
		original.Header.Set("Authorization", "Bearer xyzzy")
		original.Header.Set("Content-Type", "text/plain")

		p := Times(3).New()
		c1 := p.CloneRequest(original)
		c2 := p.CloneRequest(original)
		require.NotNil(t, c1)
		require.NotNil(t, c2)
		assert.NotSame(t, c1, c2)

		for _, c := range []*http.Request{c1, c2} {
			assert.Equal(t, original.Method, c.Method)
			assert.Equal(t, original.URL.String(), c.URL.String())
			assert.NotSame(t, original.URL, c.URL)
			assert.Equal(t, original.Proto, c.Proto)
			assert.Equal(t, original.ProtoMajor, c.ProtoMajor)
			assert.Equal(t, original.ProtoMinor, c.ProtoMinor)
			assert.Equal(t, original.Header, c.Header)
			assert.Equal(t, original.ContentLength, c.ContentLength)
			b, err := io.ReadAll(c.Body)
			require.NoError(t, err)
			assert.Equal(t, "the body", string(b))
		}

		// Mutating one clone's reference fields must not leak into the
		// other clone or the original.
		c1.Header.Set("X-Attempt", "1")
		c1.URL.RawQuery = "page=3"
		assert.Empty(t, c2.Header.Get("X-Attempt"))
		assert.Empty(t, original.Header.Get("X-Attempt"))
		assert.Equal(t, "page=2", original.URL.RawQuery)
	})
	t.Run("no body", func(t *testing.T) {
		original, err := http.NewRequest("GET", "https://api.example.com/widgets", nil)
		require.NoError(t, err)
		c := Times(1).New().CloneRequest(original)
		require.NotNil(t, c)
		assert.Nil(t, c.Body)
		assert.Nil(t, c.GetBody)
	})
	t.Run("context is preserved", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "marker")
		original, err := http.NewRequestWithContext(ctx, "GET", "https://api.example.com", nil)
		require.NoError(t, err)
		c := Times(1).New().CloneRequest(original)
		require.NotNil(t, c)
		assert.Equal(t, "marker", c.Context().Value(key{}))
	})
	t.Run("disabled policy returns nil", func(t *testing.T) {
		original, err := http.NewRequest("GET", "https://api.example.com", nil)
		require.NoError(t, err)
		assert.Nil(t, None().New().CloneRequest(original))
		var cfg Config
		assert.Nil(t, cfg.New().CloneRequest(original))
	})
	t.Run("one-shot body panics", func(t *testing.T) {
		original, err := http.NewRequest("POST", "https://api.example.com", nil)
		require.NoError(t, err)
		original.Body = io.NopCloser(bytes.NewBufferString("one shot"))
		original.GetBody = nil
		assert.PanicsWithValue(t, notResendableMsg, func() {
			Times(1).New().CloneRequest(original)
		})
	})
}
