package question

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/WidadAlkibsi/TriviaProject/internal/logging"
	httperrors "github.com/WidadAlkibsi/TriviaProject/pkg/http/errors"
	ws "github.com/WidadAlkibsi/TriviaProject/pkg/http/ws"
)

// StreamHandler plays quizzes over a WebSocket. Each next_question frame carries
// the same fields as POST /quizzes; the client still owns the served-id list.
type StreamHandler struct {
	svc      *Service
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewStreamHandler constructs the quiz stream endpoint.
func NewStreamHandler(svc *Service, upgrader websocket.Upgrader, logger zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		svc:      svc,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "quiz_stream").Logger(),
	}
}

// HandleWebSocket upgrades the request and serves frames until the client leaves.
func (h *StreamHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger := logging.FromContextOr(r.Context(), h.logger)
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	logger := h.logger.With().Str("conn_id", uuid.NewString()).Logger()
	logger.Debug().Msg("quiz stream opened")

	c := ws.NewConnection(conn, logger)
	go c.WritePump()

	ctx := logging.IntoContext(r.Context(), logger)
	c.ReadPump(func(msg ws.Message) error {
		return h.handle(ctx, c, msg)
	})
	c.Close()
	logger.Debug().Msg("quiz stream closed")
}

func (h *StreamHandler) handle(ctx context.Context, c *ws.Connection, msg ws.Message) error {
	switch msg.Type {
	case ws.TypePing:
		return h.send(c, ws.TypePong, msg.RequestID, nil)
	case ws.TypeNextQuestion:
		return h.nextQuestion(ctx, c, msg)
	default:
		return h.sendError(c, msg.RequestID, http.StatusBadRequest, httperrors.ErrCodeUnknownMessageType, "unknown message type "+msg.Type)
	}
}

func (h *StreamHandler) nextQuestion(ctx context.Context, c *ws.Connection, msg ws.Message) error {
	var req QuizRequest
	if len(msg.Payload) == 0 {
		return h.sendError(c, msg.RequestID, http.StatusBadRequest, httperrors.ErrCodeInvalidPayload, "payload is required")
	}
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return h.sendError(c, msg.RequestID, http.StatusBadRequest, httperrors.ErrCodeInvalidPayload, "invalid payload")
	}

	scope, excluded, err := req.Resolve()
	if err == nil {
		var draw Draw
		draw, err = h.svc.NextQuizQuestion(ctx, scope, excluded)
		if err == nil {
			if draw.Exhausted() {
				return h.send(c, ws.TypeQuizOver, msg.RequestID, map[string]bool{"success": true})
			}
			return h.send(c, ws.TypeQuestion, msg.RequestID, map[string]interface{}{
				"success":  true,
				"question": draw.Question,
			})
		}
	}

	status, code := StatusFor(err)
	env := httperrors.NewErrorResponse(status, code, ClientMessage(err))
	return h.sendError(c, msg.RequestID, status, code, env.Message)
}

func (h *StreamHandler) send(c *ws.Connection, msgType, requestID string, payload any) error {
	out, err := ws.NewMessage(msgType, requestID, payload)
	if err != nil {
		return err
	}
	return c.Send(out)
}

func (h *StreamHandler) sendError(c *ws.Connection, requestID string, status int, code, message string) error {
	return h.send(c, ws.TypeError, requestID, ws.ErrorPayload{Error: status, Code: code, Message: message})
}
