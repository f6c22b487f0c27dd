package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"github.com/ChapterSevenSeeds/triangles/internal/session"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// WebSocket message types for the live channel
const (
	// Client -> Server messages
	MsgTypeCompute = "triangle:compute"
	MsgTypePing    = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeResult    = "result"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

const writeWait = 10 * time.Second

// WSMessage is the envelope for every live-channel frame. Seq orders compute
// requests within a session and must increase strictly.
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WSErrorPayload is the payload of an error frame
type WSErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// LiveConfig tunes the live channel
type LiveConfig struct {
	Debounce       time.Duration
	MaxMessageSize int64
}

// LiveHandlerImpl implements the LiveHandler interface
type LiveHandlerImpl struct {
	upgrader websocket.Upgrader
	sessions SessionManager
	eval     *Evaluator
	cfg      LiveConfig
	logger   *log.Logger
}

// NewLiveHandler creates a new live channel handler
func NewLiveHandler(sessions SessionManager, eval *Evaluator, cfg LiveConfig, logger *log.Logger) LiveHandler {
	return &LiveHandlerImpl{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// CORS middleware already governs who may reach the API
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
		},
		sessions: sessions,
		eval:     eval,
		cfg:      cfg,
		logger:   logger.WithPrefix("live"),
	}
}

// computeJob is one pending compute request of a connection.
type computeJob struct {
	id  string
	seq int64
	req models.TriangleRequest
}

// liveConn serializes writes to one websocket.
type liveConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (lc *liveConn) send(msg WSMessage) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}
	_ = lc.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return lc.ws.WriteJSON(msg)
}

// HandleLiveSocket upgrades the connection and runs the live protocol. Bursts
// of compute requests are coalesced so only the newest one is evaluated.
func (h *LiveHandlerImpl) HandleLiveSocket(c echo.Context) error {
	sess, err := h.sessions.Open()
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			return NewServiceUnavailableError("too many live sessions")
		}
		return NewInternalError("failed to open live session", err)
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.sessions.Close(sess.ID)
		return err
	}
	defer ws.Close()
	defer h.sessions.Close(sess.ID)

	if h.cfg.MaxMessageSize > 0 {
		ws.SetReadLimit(h.cfg.MaxMessageSize)
	}

	logger := h.logger.With("session", shortID(sess.ID))
	logger.Info("client connected")

	conn := &liveConn{ws: ws}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coalescer := session.NewCoalescer(h.cfg.Debounce, func(job computeJob) {
		h.compute(conn, sess.ID, job, logger)
	})
	go coalescer.Run(ctx)

	if err := conn.send(WSMessage{Type: MsgTypeConnected, ID: sess.ID}); err != nil {
		logger.Warn("failed to send welcome", "err", err)
		return nil
	}

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("connection error", "err", err)
			}
			break
		}
		h.sessions.TouchSession(sess.ID)

		switch msg.Type {
		case MsgTypePing:
			h.send(conn, WSMessage{Type: MsgTypePong, ID: msg.ID, Seq: msg.Seq}, logger)
		case MsgTypeCompute:
			var req models.TriangleRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				h.sendError(conn, msg, NewBadRequestError("invalid compute payload", err), logger)
				continue
			}
			latest, err := h.sessions.Submit(sess.ID, msg.Seq)
			if err != nil {
				h.sendError(conn, msg, NewInternalError("session lost", err), logger)
				continue
			}
			if !latest {
				logger.Debug("rejected stale request", "seq", msg.Seq)
				h.sendError(conn, msg, NewStaleSequenceError(msg.Seq), logger)
				continue
			}
			coalescer.Push(computeJob{id: msg.ID, seq: msg.Seq, req: req})
		default:
			h.sendError(conn, msg, &APIError{Code: "INVALID_TYPE", Message: "unknown message type: " + msg.Type}, logger)
		}
	}

	logger.Info("client disconnected", "coalesced", coalescer.Dropped())
	return nil
}

// compute evaluates job and replies unless a newer request has arrived in
// the meantime.
func (h *LiveHandlerImpl) compute(conn *liveConn, sessionID string, job computeJob, logger *log.Logger) {
	if !h.sessions.IsLatest(sessionID, job.seq) {
		return
	}

	req := job.req
	ev, err := h.eval.Evaluate(&req, bodyFields)
	if !h.sessions.IsLatest(sessionID, job.seq) {
		return
	}
	msg := WSMessage{ID: job.id, Seq: job.seq}
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			apiErr = NewInternalError("evaluation failed", err)
		}
		h.sessions.Complete(sessionID, job.seq)
		h.sendError(conn, msg, apiErr, logger)
		return
	}

	payload, err := json.Marshal(ev.Response)
	if err != nil {
		h.sendError(conn, msg, NewInternalError("failed to encode result", err), logger)
		return
	}
	h.sessions.Complete(sessionID, job.seq)
	msg.Type = MsgTypeResult
	msg.Payload = payload
	h.send(conn, msg, logger)
}

// HandleLiveSession returns the state of a live session
func (h *LiveHandlerImpl) HandleLiveSession(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId", "is required")
	}

	sess, ok := h.sessions.GetSession(id)
	if !ok {
		return NewNotFoundError("session", id)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *LiveHandlerImpl) send(conn *liveConn, msg WSMessage, logger *log.Logger) {
	if err := conn.send(msg); err != nil {
		logger.Debug("failed to send message", "type", msg.Type, "err", err)
	}
}

func (h *LiveHandlerImpl) sendError(conn *liveConn, in WSMessage, apiErr *APIError, logger *log.Logger) {
	message := apiErr.Message
	if apiErr.Details != "" {
		message += ": " + apiErr.Details
	}
	payload, _ := json.Marshal(WSErrorPayload{Message: message, Code: apiErr.Code})
	h.send(conn, WSMessage{
		Type:    MsgTypeError,
		ID:      in.ID,
		Seq:     in.Seq,
		Payload: payload,
	}, logger)
}

// shortID trims a uuid for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
