package server

import (
	"context"
	"encoding/json"

	"umoja/internal/middleware"
	"umoja/internal/notifications"
	"umoja/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// inboundEnvelope is the minimal shape every client message must carry.
type inboundEnvelope struct {
	Type string `json:"type"`
}

// WebsocketHandler returns a websocket handler that registers connections with the Hub.
// Authentication is handled by route middleware and userID is read from connection locals.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.Close()
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			_ = conn.Close()
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			middleware.Logger.Warn("failed to register websocket client",
				"user_id", uid, "error", err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)

		client.IncomingHandler = s.handleInboundMessage

		// Start pumps
		go client.WritePump()
		client.ReadPump()
	})
}

// handleInboundMessage processes one message from a connected client.
// Messages of type "notification" are relayed to every other connected
// client; malformed payloads are dropped without closing the connection.
func (s *Server) handleInboundMessage(client *notifications.Client, message []byte) {
	var envelope inboundEnvelope
	if err := json.Unmarshal(message, &envelope); err != nil {
		observability.RecordWebSocketEvent("malformed")
		middleware.Logger.Debug("dropping malformed websocket message",
			"user_id", client.UserID)
		return
	}

	switch envelope.Type {
	case EventNotification:
		observability.RecordWebSocketEvent(EventNotification)
		s.hub.BroadcastAllExcept(client, string(message))
		// Fan out to peer instances. Their subscribers broadcast to their
		// own clients; our subscriber skips the looped-back frame.
		if s.notifier != nil {
			if err := s.notifier.PublishBroadcast(context.Background(), string(message)); err != nil {
				middleware.Logger.Warn("failed to relay notification to peer instances",
					"user_id", client.UserID, "error", err)
			}
		}
	default:
		// Unknown types are ignored rather than rejected so older clients
		// keep working.
		observability.RecordWebSocketEvent("ignored")
	}
}
