// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/join-helper/auth"
	"github.com/danielhkuo/join-helper/cliparse"
	"github.com/danielhkuo/join-helper/controller"
	"github.com/danielhkuo/join-helper/middleware"
	"github.com/danielhkuo/join-helper/models"
)

// DeviceAcceptor moves a device to the accepted state on the controller.
// Non-2xx answers must be reported as *controller.APIError.
type DeviceAcceptor interface {
	AcceptDevice(ctx context.Context, id uuid.UUID) error
}

type JoinHandler struct {
	psk        string
	controller DeviceAcceptor
	log        *slog.Logger
}

func NewJoinHandler(cfg cliparse.Config, acceptor DeviceAcceptor, logger *slog.Logger) *JoinHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JoinHandler{psk: cfg.HelperPSK, controller: acceptor, log: logger}
}

// Handle validates a raw join request and forwards it to the controller.
// The returned error is non-nil only when the controller could not be
// reached; every other outcome is a Response for the caller.
func (h *JoinHandler) Handle(ctx context.Context, body []byte) (models.Response, error) {
	req, err := models.ParseJoinRequest(body)
	if err != nil {
		h.log.Error("request body is not a valid join request", "error", err)
		return models.NewErrorResponse(http.StatusBadRequest, models.MsgInvalidRequestBody), nil
	}

	if err := auth.ValidatePSK(req.HelperPSK, h.psk); err != nil {
		h.log.Error("rejected join request", "device_id", req.DeviceID, "error", err)
		return models.NewErrorResponse(http.StatusForbidden, models.MsgInvalidHelperPSK), nil
	}

	h.log.Info("received valid request", "request", req)

	err = h.controller.AcceptDevice(ctx, req.DeviceID)
	if err != nil {
		status, ok := controller.StatusCode(err)
		if !ok {
			return models.Response{}, fmt.Errorf("accept device %s: %w", req.DeviceID, err)
		}
		h.log.Error("failed to join device", "device_id", req.DeviceID, "status", status)
		return models.NewErrorResponse(status, models.MsgFailedToJoinDevice), nil
	}

	h.log.Info("device joined successfully", "device_id", req.DeviceID)
	return models.NewAcceptedResponse(), nil
}

// Join handles the join webhook on any method and path.
// Only the body is inspected.
func (h *JoinHandler) Join(w http.ResponseWriter, r *http.Request) {
	body, err := middleware.ReadBody(w, r, middleware.MaxBodyBytes)
	if err != nil {
		h.log.Error("failed to read request body", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgInvalidRequestBody)
		return
	}

	resp, err := h.Handle(r.Context(), body)
	if err != nil {
		h.log.Error("controller unreachable", "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	middleware.WriteResponse(w, resp)
}
