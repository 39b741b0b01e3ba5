package server

import (
	"time"

	"github.com/gorilla/websocket"
)

// eventMessage is a client event as it arrives over the websocket: the
// event type, the id of the originating element, and optional payload
// fields. Plain JSON — delegation needs no wire format of its own.
type eventMessage struct {
	Seq    uint64            `json:"seq"`
	Type   string            `json:"type"`
	Target string            `json:"target"`
	Data   map[string]string `json:"data,omitempty"`
}

// resultMessage reports one dispatch turn back to the client.
type resultMessage struct {
	Seq     uint64 `json:"seq"`
	Handled bool   `json:"handled"`
	Matched string `json:"matched,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReadLoop continuously reads event messages from the websocket and
// queues them for the event loop. It blocks until the connection closes
// or a read fails, then closes the session.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		var msg eventMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.metrics.ReadErrors.Inc()
				s.logger.Error("read error", "error", err)
			}
			return
		}

		s.metrics.EventsReceived.Inc()

		if msg.Type == "" || msg.Target == "" {
			s.metrics.ReadErrors.Inc()
			s.writeResult(resultMessage{Seq: msg.Seq, Error: "event requires type and target"})
			continue
		}

		if err := s.QueueEvent(msg); err != nil {
			s.metrics.EventsDropped.Inc()
			s.logger.Warn("event dropped", "event", msg.Type, "error", err)
			s.writeResult(resultMessage{Seq: msg.Seq, Error: "event queue full"})
		}
	}
}

// writeResult sends a result message, serializing writes across the
// event loop and the read loop.
func (s *Session) writeResult(res resultMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(res); err != nil {
		s.metrics.WriteErrors.Inc()
		s.logger.Warn("write error", "error", err)
	}
}
