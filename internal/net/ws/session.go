package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second

	// sendBufferDepth bounds the outbound queue. Snapshots are
	// state-complete, so a client that falls this far behind is dropped
	// rather than served stale frames.
	sendBufferDepth = 8
)

var errSendBufferFull = errors.New("session send buffer full")

// Session wraps one websocket connection. Outbound messages stage on a
// buffered queue drained by a dedicated writer goroutine, so a stalled
// client never holds up the frame loop. Reads stay on the handler's pump
// goroutine.
type Session struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewSession adopts an upgraded connection and starts its writer.
func NewSession(conn *websocket.Conn) *Session {
	s := &Session{
		conn: conn,
		send: make(chan []byte, sendBufferDepth),
		done: make(chan struct{}),
	}
	go s.writePump()
	return s
}

// QueueJSON marshals v and stages it for the writer. A full buffer returns
// an error instead of blocking; the caller decides whether to drop the
// session.
func (s *Session) QueueJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if !s.Queue(data) {
		return errSendBufferFull
	}
	return nil
}

// Queue stages an already encoded message, returning false when the session
// is closed or its buffer is full.
func (s *Session) Queue(data []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

func (s *Session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.Close()
				return
			}
		}
	}
}

// Close stops the writer and tears the connection down. Safe to call more
// than once.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		if s.conn != nil {
			err = s.conn.Close()
		}
	})
	return err
}
