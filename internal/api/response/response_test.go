package response

import (
	"context"
	"errors"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/trustdesk/trustdesk/internal/perrors"
)

func TestWriteSuccess(t *testing.T) {
	var ctx fasthttp.RequestCtx
	NewResponse(context.Background(), "success", map[string]any{"id": "42"}).Write(&ctx)

	require.Equal(t, 200, ctx.Response.StatusCode())
	require.Equal(t, "application/json", string(ctx.Response.Header.Peek("content-type")))

	var body map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	require.Equal(t, false, body["error"])
	require.Equal(t, "success", body["message"])
}

func TestWriteInternalErrorHidesCause(t *testing.T) {
	cause := errors.New(`pq: duplicate key value violates unique constraint "subscribers_email_key"`)

	var ctx fasthttp.RequestCtx
	NewResponse[any](context.Background(), "Failed to create tenant", nil).
		WithError(perrors.NewErrInternalServerError("Failed to create tenant", cause)).
		Write(&ctx)

	require.Equal(t, 500, ctx.Response.StatusCode())

	body := string(ctx.Response.Body())
	require.NotContains(t, body, "pq:")
	require.NotContains(t, body, "duplicate key")
	require.NotContains(t, body, "subscribers_email_key")
	require.Contains(t, body, "Failed to create tenant")
}

func TestWriteMapsDomainErrorStatus(t *testing.T) {
	cause := errors.New("tenant username already taken")

	var ctx fasthttp.RequestCtx
	NewResponse[any](context.Background(), "Failed to register", nil).
		WithError(perrors.NewErrConflict("Company name is already registered", cause)).
		Write(&ctx)

	require.Equal(t, 409, ctx.Response.StatusCode())

	var body struct {
		Error        bool `json:"error"`
		ErrorDetails struct {
			Message string `json:"message"`
			Code    struct {
				Code   string `json:"code"`
				Status int    `json:"status"`
			} `json:"code"`
		} `json:"errorDetails"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	require.True(t, body.Error)
	require.Equal(t, "Company name is already registered", body.ErrorDetails.Message)
	require.Equal(t, "conflict", body.ErrorDetails.Code.Code)
	require.Equal(t, 409, body.ErrorDetails.Code.Status)
}

func TestWriteWrapsUntaggedErrorAsInternal(t *testing.T) {
	var ctx fasthttp.RequestCtx
	NewResponse[any](context.Background(), "Failed to login", nil).
		WithError(errors.New("dial tcp 10.0.0.5:5432: connection refused")).
		Write(&ctx)

	require.Equal(t, 500, ctx.Response.StatusCode())

	body := string(ctx.Response.Body())
	require.NotContains(t, body, "dial tcp")
	require.NotContains(t, body, "connection refused")
	require.Contains(t, body, "Failed to login")
}
