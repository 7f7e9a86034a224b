// Package web bridges Soundless to browser renderers over a websocket.
// Each connection owns one game; the server ticks it at a fixed rate and
// pushes every snapshot with the events of that tick.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/games/soundless"
	"github.com/vovakirdan/soundless/internal/registry"
	"github.com/vovakirdan/soundless/internal/storage"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// GameFactory builds a game for a variant ID.
type GameFactory func(variantID string) (*soundless.Game, error)

// Config holds configuration for the web bridge.
type Config struct {
	Address  string
	TickRate int
	// Variant is used when a client does not pick one.
	Variant string
	// Seed is used when a client does not pick one. Zero seeds from the clock.
	Seed  int64
	Store *storage.Store // Optional run log

	NewGame GameFactory
	Logger  *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 60,
		Variant:  soundless.IDStages,
	}
}

// Server serves the websocket bridge.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewServer creates a bridge. Missing config fields take their defaults.
func NewServer(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.Address == "" {
		cfg.Address = def.Address
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Variant == "" {
		cfg.Variant = def.Variant
	}
	if cfg.NewGame == nil {
		cfg.NewGame = soundless.Create
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the HTTP routes: GET /ws and GET /variants.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /variants", s.handleVariants)
	return mux
}

// ListenAndServe serves until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web bridge", "address", s.cfg.Address, "tick_rate", s.cfg.TickRate)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.closeClients()
	return httpSrv.Shutdown(shutdownCtx)
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(registry.List()); err != nil {
		s.logger.Warn("could not write variants", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	variant := q.Get("variant")
	if variant == "" {
		variant = s.cfg.Variant
	}
	seed := s.cfg.Seed
	if v := q.Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "bad seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}
	player := q.Get("player")
	if player == "" {
		player = "web"
	}

	game, err := s.cfg.NewGame(variant)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		conn:   conn,
		sess:   newSession(uuid.NewString(), sendBuffer),
		game:   game,
		rc:     core.RuntimeConfig{TickRate: s.cfg.TickRate, Seed: seed},
		cmds:   make(chan clientMessage, 32),
		store:  s.cfg.Store,
		player: player,
	}
	c.logger = s.logger.With("session", c.sess.id)
	c.game.Reset(c.rc)

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	c.logger.Info("client connected", "remote", r.RemoteAddr, "variant", variant, "player", player)

	c.hello(variant)
	c.serve(s.cfg.TickRate)

	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.logger.Info("client disconnected", "remote", r.RemoteAddr)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.sess.Close()
		c.conn.Close()
	}
}

// client is one browser connection and its game. Only the tick loop touches
// the game while the connection is live.
type client struct {
	conn   *websocket.Conn
	sess   *session
	game   *soundless.Game
	rc     core.RuntimeConfig
	cmds   chan clientMessage
	store  *storage.Store
	player string
	logger *log.Logger
	saved  bool
}

func (c *client) serve(tickRate int) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()
	go func() {
		defer wg.Done()
		c.tickLoop(tickRate)
	}()

	c.readLoop()
	c.sess.Close()
	wg.Wait()
	c.conn.Close()
	c.record()
}

func (c *client) hello(variant string) {
	c.sendJSON(helloMessage{
		Type:     "hello",
		Session:  c.sess.id,
		Variant:  variant,
		Seed:     c.game.Outcome().Seed,
		TickRate: c.rc.TickRate,
	})
}

func (c *client) sendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("could not encode message", "error", err)
		return
	}
	c.sess.Send(data)
}

func (c *client) sendError(msg string) {
	c.sendJSON(errorMessage{Type: "error", Message: msg})
}

func (c *client) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", "error", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.logger.Debug("discarding malformed message", "error", err)
			c.sendError("malformed message")
			continue
		}

		switch msg.Type {
		case msgInput, msgStart, msgReset:
			select {
			case c.cmds <- msg:
			case <-c.sess.Done():
				return
			}
		default:
			c.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

func (c *client) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-c.sess.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return

		case data := <-c.sess.Outgoing():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write failed", "error", err)
				c.sess.Close()
				c.conn.Close()
				return
			}

		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.sess.Close()
				c.conn.Close()
				return
			}
		}
	}
}

// tickLoop advances the game at the server rate. The latest input message
// stays in effect until the next one.
func (c *client) tickLoop(tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	var in clientMessage
	for {
		select {
		case <-c.sess.Done():
			return

		case msg := <-c.cmds:
			switch msg.Type {
			case msgInput:
				in = msg
			case msgStart:
				c.game.Start()
			case msgReset:
				c.record()
				c.game.Reset(c.rc)
				c.saved = false
				in = clientMessage{}
			}

		case <-ticker.C:
			res := c.game.Advance(in.input())
			if res.Snapshot.State.Terminal() {
				c.record()
			}
			data, err := encodeFrame(res)
			if err != nil {
				c.logger.Error("could not encode frame", "error", err)
				continue
			}
			c.sess.Send(data)
		}
	}
}

// record writes the current run to the log once. Runs that never left the
// menu are skipped.
func (c *client) record() {
	out := c.game.Outcome()
	if c.saved || out.Result == "" {
		return
	}
	c.saved = true

	c.logger.Info("run ended",
		"variant", out.Variant,
		"result", out.Result,
		"stage", out.Stage,
		"score", out.Score,
		"seconds", fmt.Sprintf("%.1f", out.Duration),
	)
	if c.store == nil {
		return
	}
	if _, err := c.store.SaveRun(out.Run(c.player)); err != nil {
		c.logger.Warn("could not save run", "error", err)
	}
}
