package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
	"eventhub/internal/realtime"

	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	Logger     *slog.Logger
	Hub        *realtime.Hub
	Attendance realtime.Attendance
	Verifier   domain.TokenVerifier
	Upgrader   websocket.Upgrader
}

// NewRealtimeController returns a controller that upgrades /ws requests and hands
// the connections to hub. Browser origins are checked against allowedOrigins.
func NewRealtimeController(logger *slog.Logger, hub *realtime.Hub, attendance realtime.Attendance, verifier domain.TokenVerifier, allowedOrigins []string) *RealtimeController {
	return &RealtimeController{
		Logger:     logger,
		Hub:        hub,
		Attendance: attendance,
		Verifier:   verifier,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

// ServeWS godoc
// @Summary Realtime attendance channel
// @Description Upgrades to a websocket. Clients send join_event and leave_event messages and receive update_attendees broadcasts. An optional token query parameter authenticates the connection; its user then overrides the userId of every message.
// @Tags realtime
// @Param token query string false "Bearer token"
// @Success 101 "Switching Protocols"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Router /ws [get]
func (c *RealtimeController) ServeWS(w http.ResponseWriter, r *http.Request) {
	var userID string
	if token := r.URL.Query().Get("token"); token != "" {
		id, err := c.Verifier.Verify(token)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Forbidden")
			return
		}
		userID = id
	}

	conn, err := c.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		c.Logger.DebugContext(r.Context(), "ws upgrade failed", "err", err)
		return
	}
	if err := c.Hub.Serve(r.Context(), conn, userID, c.Attendance); err != nil && !errors.Is(err, realtime.ErrHubClosed) {
		c.Logger.ErrorContext(r.Context(), "ws connection failed", "err", err)
	}
}
