package web

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/rocket-arcade/internal/games/rocket/sim"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	inboxSize         = 64
	maxMessagesPerSec = 120
)

// session is one connection. The run goroutine owns the engine and is the
// only writer on conn; the read goroutine only decodes and forwards.
type session struct {
	id     uint64
	conn   *websocket.Conn
	cfg    Config
	logger *log.Logger

	engine *sim.Engine
	seed   uint64
	kills  int
	saved  bool

	inbox  chan InEnvelope
	closed chan struct{} // closed when the read side fails
	done   chan struct{} // closed when run returns
}

func newSession(id uint64, conn *websocket.Conn, cfg Config, logger *log.Logger) (*session, error) {
	s := &session{
		id:     id,
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("session", id),
		seed:   cfg.Seed,
		inbox:  make(chan InEnvelope, inboxSize),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	engine, err := s.newEngine(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

func (s *session) newEngine(width, height float64) (*sim.Engine, error) {
	return sim.New(width, height, sim.WithConfig(s.cfg.Rocket), sim.WithSeed(s.seed))
}

// run drives the session until the client goes away or quit is closed.
func (s *session) run(quit <-chan struct{}) {
	s.logger.Info("session started", "remote", s.conn.RemoteAddr().String(), "seed", s.seed)
	go s.readPump()

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
		s.finish()
	}()

	if err := s.welcome(); err != nil {
		return
	}

	dt := 1 / float64(s.cfg.TickRate)
	for {
		select {
		case env := <-s.inbox:
			if err := s.handle(env); err != nil {
				return
			}

		case <-ticker.C:
			if err := s.step(dt); err != nil {
				return
			}

		case <-ping.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.closed:
			return

		case <-quit:
			//nolint:errcheck // Best-effort close frame
			s.write(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}

// readPump decodes client envelopes. Malformed text is dropped.
func (s *session) readPump() {
	defer close(s.closed)

	s.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	var count int
	resetAt := time.Now()
	for {
		msgType, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read failed", "error", err)
			}
			return
		}

		now := time.Now()
		if now.After(resetAt) {
			count = 0
			resetAt = now.Add(time.Second)
		}
		count++
		if count > maxMessagesPerSec {
			s.logger.Warn("rate limit exceeded, disconnecting")
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}
		var env InEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.logger.Debug("bad envelope", "error", err)
			continue
		}
		select {
		case s.inbox <- env:
		case <-s.done:
			return
		}
	}
}

func (s *session) handle(env InEnvelope) error {
	switch env.T {
	case MsgInput:
		var in InputMsg
		if err := json.Unmarshal(env.D, &in); err != nil {
			return s.reject("bad input payload")
		}
		action, ok := sim.ParseAction(in.Action)
		if !ok {
			return s.reject(fmt.Sprintf("unknown action %q", in.Action))
		}
		s.engine.SetAction(action, in.Pressed)
		return nil

	case MsgResize:
		var rs ResizeMsg
		if err := json.Unmarshal(env.D, &rs); err != nil {
			return s.reject("bad resize payload")
		}
		next, err := s.engine.Resize(rs.W, rs.H)
		if err != nil {
			return s.reject(err.Error())
		}
		s.saveRun()
		s.start(next)
		s.logger.Debug("arena resized", "w", rs.W, "h", rs.H)
		return s.welcome()

	case MsgRestart:
		s.saveRun()
		s.seed++
		size := s.engine.Size()
		next, err := s.newEngine(size.Width, size.Height)
		if err != nil {
			return s.reject(err.Error())
		}
		s.start(next)
		return s.welcome()
	}
	return s.reject(fmt.Sprintf("unknown message type %q", env.T))
}

// start swaps in a fresh engine and forgets the previous run.
func (s *session) start(e *sim.Engine) {
	s.engine = e
	s.kills = 0
	s.saved = false
}

// step advances one tick and sends the snapshot. A finished run sends nothing.
func (s *session) step(dt float64) error {
	if s.engine.GameOver() {
		return nil
	}

	rep, err := s.engine.Update(dt)
	if err != nil {
		return err
	}
	s.kills += rep.Kills

	snap := s.engine.Snapshot()
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("web: encode snapshot: %w", err)
	}
	if err := s.write(websocket.BinaryMessage, data); err != nil {
		return err
	}

	if rep.GameOver {
		s.saveRun()
		s.logger.Info("run over", "score", snap.Score, "kills", s.kills, "ticks", snap.Tick)
		return s.send(Envelope{T: MsgOver, Data: OverMsg{Score: snap.Score, Kills: s.kills}})
	}
	return nil
}

func (s *session) welcome() error {
	size := s.engine.Size()
	return s.send(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		GameID:   s.cfg.GameID,
		Width:    size.Width,
		Height:   size.Height,
		Seed:     s.seed,
		TickRate: s.cfg.TickRate,
	}})
}

func (s *session) reject(msg string) error {
	return s.send(Envelope{T: MsgError, Data: ErrorMsg{Msg: msg}})
}

func (s *session) send(env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("web: encode envelope: %w", err)
	}
	return s.write(websocket.TextMessage, data)
}

func (s *session) write(msgType int, data []byte) error {
	//nolint:errcheck // Deadline errors surface on the write itself
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(msgType, data)
}

// saveRun stores the current run once, if it scored anything.
func (s *session) saveRun() {
	if s.saved || s.cfg.Store == nil || s.engine.Score() <= 0 {
		return
	}
	snap := s.engine.Snapshot()
	_, err := s.cfg.Store.SaveRun(storage.Run{
		GameID: s.cfg.GameID,
		Score:  snap.Score,
		Kills:  s.kills,
		Ticks:  int64(snap.Tick), //#nosec G115
		Seed:   int64(s.seed),    //#nosec G115
	})
	if err != nil {
		s.logger.Warn("could not save run", "error", err)
		return
	}
	s.saved = true
}

func (s *session) finish() {
	close(s.done)
	s.saveRun()
	s.conn.Close()
	s.logger.Info("session ended", "score", s.engine.Score(), "kills", s.kills)
}
