package live

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"DuctSizer/internal/calc/duct"
	"DuctSizer/internal/view"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	maxMessageSize = 4096
	writeWait      = 5 * time.Second
	idleTimeout    = 10 * time.Minute
)

// Message is what the server sends for every input it receives.
type Message struct {
	Type  string     `json:"type"`
	Page  *view.Page `json:"page,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Handler recomputes the calculator for each input a client sends over the
// socket. Connections share nothing.
type Handler struct {
	upgrader websocket.Upgrader
}

// NewHandler accepts connections whose Origin matches the request host, or
// any origin when allowOrigin is "*".
func NewHandler(allowOrigin string) *Handler {
	h := &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	switch allowOrigin {
	case "":
	case "*":
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	default:
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			return r.Header.Get("Origin") == allowOrigin
		}
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	remote := r.RemoteAddr
	log.WithField("remote", remote).Debug("live session opened")
	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).WithField("remote", remote).Debug("live read")
			}
			break
		}

		msg := Message{Type: "error", Error: "Invalid request payload"}
		in := duct.DefaultInput()
		if err := json.Unmarshal(data, &in); err == nil {
			msg = Compute(in)
		}
		if err := reply(conn, msg); err != nil {
			logWriteError(err, remote)
			break
		}
	}
	log.WithField("remote", remote).Debug("live session closed")
}

// Compute runs one recomputation and wraps the outcome for the client.
func Compute(in duct.Input) Message {
	res, err := duct.Calculate(in)
	if err != nil {
		return Message{Type: "error", Error: err.Error()}
	}
	p := view.Build(res)
	return Message{Type: "result", Page: &p}
}

// logWriteError reports encode failures loudly; anything else is the peer going away.
func logWriteError(err error, remote string) {
	entry := log.WithError(err).WithField("remote", remote)
	var encErr *json.UnsupportedValueError
	if errors.As(err, &encErr) {
		entry.Warn("live encode")
		return
	}
	entry.Debug("live write")
}

func reply(conn *websocket.Conn, m Message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(m)
}
