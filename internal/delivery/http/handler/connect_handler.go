package handler

import (
	"net/http"

	"hospital-assistant/internal/delivery/http/middleware"
	"hospital-assistant/internal/service"
	"hospital-assistant/pkg/response"
)

// ConnectHandler hands out voice-room connections for the assistant widget.
type ConnectHandler struct {
	roomTokenService *service.RoomTokenService
}

func NewConnectHandler(roomTokenService *service.RoomTokenService) *ConnectHandler {
	return &ConnectHandler{roomTokenService: roomTokenService}
}

func (h *ConnectHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if !h.roomTokenService.IsConfigured() {
		response.InternalServerError(w, "LiveKit credentials not configured")
		return
	}

	// Anonymous visitors may connect; signed-in callers get their own
	// identity on the room token.
	identity, _ := middleware.GetPatientKeyFromContext(r.Context())
	name, _ := middleware.GetUserNameFromContext(r.Context())

	connection, err := h.roomTokenService.GenerateConnection(identity, name)
	if err != nil {
		response.InternalServerError(w, "Failed to generate connection")
		return
	}

	response.Success(w, http.StatusOK, "Connection generated successfully", connection)
}
