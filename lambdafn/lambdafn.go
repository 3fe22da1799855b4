// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lambdafn

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/danielhkuo/join-helper/models"
)

// Handler is the join logic the function URL adapter forwards to
type Handler interface {
	Handle(ctx context.Context, body []byte) (models.Response, error)
}

// FunctionURLHandler is the signature lambda.Start expects for function URLs
type FunctionURLHandler func(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error)

// New adapts h to Lambda function URL events.
// Controller transport errors are returned so the invocation fails.
func New(h Handler, logger *slog.Logger) FunctionURLHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		logger.Info("invocation started",
			"method", req.RequestContext.HTTP.Method,
			"path", req.RawPath,
			"request_id", req.RequestContext.RequestID,
			"source_ip", req.RequestContext.HTTP.SourceIP,
		)

		body := []byte(req.Body)
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				logger.Error("request body is not valid base64", "error", err)
				return toEvent(models.NewErrorResponse(http.StatusBadRequest, models.MsgInvalidRequestBody)), nil
			}
			body = decoded
		}

		resp, err := h.Handle(ctx, body)
		if err != nil {
			logger.Error("controller unreachable", "error", err)
			return events.LambdaFunctionURLResponse{}, err
		}
		return toEvent(resp), nil
	}
}

func toEvent(resp models.Response) events.LambdaFunctionURLResponse {
	event := events.LambdaFunctionURLResponse{
		StatusCode: resp.StatusCode,
		Headers: map[string]string{
			"Content-Type": resp.ContentType,
		},
	}
	if resp.BodyAllowed() {
		event.Body = string(resp.Body)
	}
	return event
}
