package web

import "sync"

// session is the outgoing half of one websocket client. Sends never block
// the tick loop: when the buffer is full the oldest message is dropped.
type session struct {
	id       string
	out      chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

func newSession(id string, buffer int) *session {
	if buffer < 1 {
		buffer = 64
	}
	return &session{
		id:   id,
		out:  make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Send queues a message for the writer.
func (s *session) Send(msg []byte) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.out <- msg:
	default:
		select {
		case <-s.out:
		default:
		}
		select {
		case s.out <- msg:
		default:
		}
	}
}

// Outgoing is drained by the connection writer.
func (s *session) Outgoing() <-chan []byte {
	return s.out
}

func (s *session) Done() <-chan struct{} {
	return s.done
}

// Close ends the session. Safe to call more than once.
func (s *session) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
