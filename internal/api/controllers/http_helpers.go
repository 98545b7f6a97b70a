package controllers

import (
	"context"
	"errors"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/trustdesk/trustdesk/internal/api/response"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("Controller")

// requestContext returns the context for downstream calls, carrying the trace
// context the middleware extracted from the incoming headers.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if traceCtx, ok := ctx.UserValue("traceCtx").(context.Context); ok {
		return traceCtx
	}

	return context.Background()
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return json.Unmarshal(body, target)
}

func writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, err error) {
	response.NewResponse[any](stdCtx, message, nil).WithError(err).Write(ctx)
}

func writeOK(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).Write(ctx)
}

func writeCreated(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).WithStatus(fasthttp.StatusCreated).Write(ctx)
}

// authenticatedUserID reads the user id placed in the request context by the
// auth middleware.
func authenticatedUserID(ctx *fasthttp.RequestCtx) (uuid.UUID, error) {
	val, ok := ctx.UserValue("userID").(string)
	if !ok || val == "" {
		return uuid.Nil, errors.New("no authenticated user")
	}

	return uuid.Parse(val)
}
