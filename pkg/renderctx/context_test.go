package renderctx_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/renderctx"
)

func TestAttach(t *testing.T) {
	t.Parallel()

	t.Run("creates render context lazily", func(t *testing.T) {
		t.Parallel()

		_, ok := renderctx.FromContext(context.Background())
		require.False(t, ok)

		ctx, rc := renderctx.Attach(context.Background())
		require.NotNil(t, rc)
		assert.False(t, rc.StartedAt.IsZero())
		assert.NotEmpty(t, rc.RequestID)
		assert.NotNil(t, rc.Config)
		assert.False(t, rc.Resolved)

		got, ok := renderctx.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, rc, got)
	})

	t.Run("reuses existing render context", func(t *testing.T) {
		t.Parallel()

		ctx, first := renderctx.Attach(context.Background())
		ctx2, second := renderctx.Attach(ctx)

		assert.Same(t, first, second)
		assert.Equal(t, ctx, ctx2)
	})

	t.Run("request ids are unique per context", func(t *testing.T) {
		t.Parallel()

		_, a := renderctx.Attach(context.Background())
		_, b := renderctx.Attach(context.Background())

		assert.NotEqual(t, a.RequestID, b.RequestID)
	})
}

func TestClientPayloadSanitize(t *testing.T) {
	t.Parallel()

	payload := &renderctx.ClientPayload{}
	payload.Session = renderctx.SessionConfig{
		Cookie:     "raw_session_name",
		XSRFCookie: "xsrf_name",
	}

	payload.Sanitize()

	assert.Empty(t, payload.Session.Cookie)
	assert.Equal(t, "xsrf_name", payload.Session.XSRFCookie)
}

func TestClientPayloadSerialization(t *testing.T) {
	t.Parallel()

	payload := &renderctx.ClientPayload{
		Tenant: &renderctx.TenantInfo{
			ID:         "t1",
			Identifier: "acme.app.com",
			Config:     map[string]any{"app": map[string]any{"url": "u"}},
		},
	}
	payload.Session = renderctx.SessionConfig{XSRFCookie: "xsrf"}
	payload.Trace = &renderctx.TraceContext{TenantID: "t1"}

	raw, err := json.Marshal(map[string]any{renderctx.PayloadKey: payload})
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	inner, ok := decoded[renderctx.PayloadKey]
	require.True(t, ok)
	assert.Contains(t, inner, "tenant")
	assert.Contains(t, inner, "session")
	assert.Contains(t, inner, "trace")

	session, ok := inner["session"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, session, "cookie")
	assert.Equal(t, "xsrf", session["xsrf_cookie"])
}
