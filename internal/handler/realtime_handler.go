package handler

import (
	"strings"

	"gym-management-be/internal/entity"
	"gym-management-be/internal/pkg/logger"
	"gym-management-be/internal/pkg/serverutils"
	internalWS "gym-management-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RealtimeHandler upgrades admin sessions to the audit event stream.
type RealtimeHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewRealtimeHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *RealtimeHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/admin/ws", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on a websocket handshake, so the query wins.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	}
	if tokenStr == "" {
		return serverutils.Unauthorized("missing token")
	}

	claims, err := serverutils.ParseToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("REALTIME", "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
		return serverutils.Unauthorized("invalid token")
	}
	if claims.Role != string(entity.AccountRoleAdmin) {
		return serverutils.Forbidden("admin access required")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	accountID := claims.UserId
	typeFilter := c.Query("types")
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("REALTIME", "Admin socket opened", map[string]interface{}{"account_id": accountID.String(), "types": typeFilter})
		internalWS.ServeWs(h.hub, internalWS.NewClient(h.hub, conn, accountID, typeFilter))
		h.logger.Info("REALTIME", "Admin socket closed", map[string]interface{}{"account_id": accountID.String()})
	})(c)
}
