package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/louisbranch/cardspar/internal/duel/message"
	"github.com/louisbranch/cardspar/internal/duel/service"
	apperrors "github.com/louisbranch/cardspar/internal/errors"
	"github.com/louisbranch/cardspar/internal/services/arena/wire"
	"golang.org/x/net/websocket"
)

// NewHandler creates arena routes bound to the given state store.
func NewHandler(store *service.Store) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		handleWSConn(conn, store)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wsHandler.ServeHTTP(w, r)
	})

	return mux
}

// wsSession is the per-connection actor between the state store and one
// WebSocket peer. The store publishes into the bounded outbox; a dedicated
// writer goroutine drains it, so Publish never blocks the store goroutine.
type wsSession struct {
	mu       sync.Mutex
	playerID int64
	assigned bool

	// ready closes once the store has assigned this session a player id.
	ready  chan struct{}
	outbox chan message.Outbound
	done   chan struct{}
}

func newWSSession() *wsSession {
	return &wsSession{
		ready:  make(chan struct{}),
		outbox: make(chan message.Outbound, sessionOutboxSize),
		done:   make(chan struct{}),
	}
}

// Publish implements service.Publisher. It intercepts the initial Connected
// notification to learn the session's player id, then enqueues the message
// for the writer. Messages to a full or closed session are dropped.
func (s *wsSession) Publish(msg message.Outbound) {
	if connected, ok := msg.(message.Connected); ok {
		s.mu.Lock()
		if !s.assigned {
			s.playerID = connected.ID
			s.assigned = true
			close(s.ready)
		}
		s.mu.Unlock()
	}

	select {
	case s.outbox <- msg:
	case <-s.done:
	default:
		id, _ := s.identity()
		log.Printf("arena: dropping outbound %T for player %d: outbox full", msg, id)
	}
}

// identity reports the store-assigned player id, if any.
func (s *wsSession) identity() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID, s.assigned
}

// writeLoop drains the outbox onto the connection until the session ends or
// the peer stops accepting writes.
func (s *wsSession) writeLoop(conn *websocket.Conn) {
	encoder := json.NewEncoder(conn)
	for {
		select {
		case <-s.done:
			// Flush whatever is still queued so a final error frame can
			// reach the peer before the connection closes.
			for {
				select {
				case msg := <-s.outbox:
					if !writeOutbound(encoder, msg) {
						return
					}
				default:
					return
				}
			}
		case msg := <-s.outbox:
			if !writeOutbound(encoder, msg) {
				return
			}
		}
	}
}

func writeOutbound(encoder *json.Encoder, msg message.Outbound) bool {
	frame, err := wire.EncodeOutbound(msg)
	if err != nil {
		log.Printf("arena: encode outbound %T: %v", msg, err)
		return true
	}
	return encoder.Encode(frame) == nil
}

// releaseSession deletes the session's player from the store. A connection
// can end before the store has processed its create event, so the release
// waits up to grace for the assignment rather than leaving an orphaned
// player behind.
func releaseSession(store *service.Store, session *wsSession, grace time.Duration) {
	select {
	case <-session.ready:
	case <-time.After(grace):
		return
	}
	id, _ := session.identity()
	store.Delete(id)
}

func handleWSConn(conn *websocket.Conn, store *service.Store) {
	defer func() {
		_ = conn.Close()
	}()

	session := newWSSession()
	go session.writeLoop(conn)
	defer close(session.done)

	store.Create(session)
	defer releaseSession(store, session, sessionReadyTimeout)

	select {
	case <-session.ready:
	case <-time.After(sessionReadyTimeout):
		log.Printf("arena: session was never assigned a player id, closing")
		return
	}
	playerID, _ := session.identity()

	decoder := json.NewDecoder(conn)
	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			decodeErrors++
			session.Publish(message.Err{
				Code: string(apperrors.CodeMessageUndecodable),
				Text: "frame is not valid JSON",
			})
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if len(raw) > maxFramePayloadBytes {
			session.Publish(message.Err{
				Code: string(apperrors.CodeInvalidRequest),
				Text: "frame payload too large",
			})
			continue
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			session.Publish(message.Err{
				Code: string(apperrors.CodeInvalidRequest),
				Text: "rate limit exceeded",
			})
			return
		}

		store.Receive(playerID, string(raw))
	}
}
