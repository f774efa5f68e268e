package game

import (
	"math/rand"
	"time"

	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/gesture"
)

// Phase is the authoritative match state. Only Match writes it.
type Phase int

const (
	// PhaseInitializing lasts until the tracking source reports ready.
	PhaseInitializing Phase = iota
	// PhaseAwaitingHand waits for the first detected hand.
	PhaseAwaitingHand
	// PhaseMenu is the idle lobby; a fist starts a game.
	PhaseMenu
	// PhaseServing has the ball pinned to the server's paddle.
	PhaseServing
	// PhaseActive is live rally play.
	PhaseActive
	// PhaseGameOver is terminal until a fresh fist starts the next game.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAwaitingHand:
		return "awaiting_hand"
	case PhaseMenu:
		return "menu"
	case PhaseServing:
		return "serving"
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// EventKind enumerates the moments the host loop may want to react to.
type EventKind int

const (
	// EventServeStart fires on every entry into the Serving phase.
	EventServeStart EventKind = iota
	// EventLaunch fires when the serve is struck and play goes live.
	EventLaunch
	// EventPlayerHit and EventOpponentHit fire on paddle contact.
	EventPlayerHit
	EventOpponentHit
	// EventPoint fires when a point is scored; Side is the point winner.
	EventPoint
	// EventGameOver fires once when the win condition is met.
	EventGameOver
)

// Event is one notable state change from a tick. Side carries the serving
// side for EventServeStart/EventLaunch and the winner for EventPoint and
// EventGameOver.
type Event struct {
	Kind EventKind
	Side Side
}

// Input is everything the match consumes in one tick. Hand is nil when the
// tracker produced nothing for this tick.
type Input struct {
	Hand    *detector.HandLandmarks
	Signals gesture.Signals
}

// Match owns the complete simulation state. It is written exclusively by the
// goroutine that calls Update; everyone else reads Snapshot copies.
type Match struct {
	cfg Config

	Phase          Phase
	PlayerPaddle   Paddle
	OpponentPaddle Paddle
	Ball           Ball
	PlayerScore    int
	OpponentScore  int
	Rotation       Rotation

	mapper   HandMapper
	presence *gesture.Presence
	opponent *Opponent

	// serveTicks counts ticks spent in the current Serving phase; it gates
	// the opponent's auto-serve and, under TriggerAfterCountdown, the
	// player's serve gesture.
	serveTicks int

	rng *rand.Rand
}

// New creates a match in the Initializing phase.
func New(cfg Config) *Match {
	return NewSeeded(cfg, time.Now().UnixNano())
}

// NewSeeded creates a match with a deterministic random source, for tests.
func NewSeeded(cfg Config, seed int64) *Match {
	rng := rand.New(rand.NewSource(seed))
	m := &Match{
		cfg:            cfg,
		Phase:          PhaseInitializing,
		PlayerPaddle:   Paddle{X: cfg.CenterX(), HalfWidth: cfg.PaddleHalfWidth},
		OpponentPaddle: Paddle{X: cfg.CenterX(), HalfWidth: cfg.PaddleHalfWidth},
		presence:       &gesture.Presence{LostAfter: cfg.HandLostAfter},
		opponent:       NewOpponent(rng),
		rng:            rng,
	}
	return m
}

// Config returns the match tuning.
func (m *Match) Config() Config {
	return m.cfg
}

// SetConfig replaces the match tuning. Paddle geometry and the presence
// debounce window update immediately; positional state is left where it is.
// Must be called from the goroutine that calls Update.
func (m *Match) SetConfig(cfg Config) {
	m.cfg = cfg
	m.PlayerPaddle.HalfWidth = cfg.PaddleHalfWidth
	m.OpponentPaddle.HalfWidth = cfg.PaddleHalfWidth
	m.presence.LostAfter = cfg.HandLostAfter
}

// TrackerReady moves the match out of Initializing once the hand-tracking
// source has loaded. Calls in any later phase are ignored.
func (m *Match) TrackerReady() {
	if m.Phase == PhaseInitializing {
		m.Phase = PhaseAwaitingHand
	}
}

// HandPresent reports the debounced hand visibility.
func (m *Match) HandPresent() bool {
	return m.presence.Present()
}

// ServeTicks reports how long the current Serving phase has lasted.
func (m *Match) ServeTicks() int {
	return m.serveTicks
}

// Update advances the simulation by one tick and returns the events it
// produced. Gestures that are invalid for the current phase are silently
// ignored; that is the phase machine's filter, not an error.
func (m *Match) Update(in Input) []Event {
	var events []Event

	m.presence.Observe(in.Hand != nil)

	switch m.Phase {
	case PhaseInitializing:
		// Waiting on TrackerReady.

	case PhaseAwaitingHand:
		if m.presence.Present() {
			m.Phase = PhaseMenu
		}

	case PhaseMenu, PhaseGameOver:
		m.mapper.Apply(&m.PlayerPaddle, in.Hand, m.cfg)
		if in.Signals.Fist && m.presence.Present() {
			m.startGame(&events)
		}

	case PhaseServing:
		m.movePaddles(in)
		m.Ball.PinToServe(m.Rotation.Server, m.paddle(m.Rotation.Server).X, m.cfg)
		m.serveTicks++

		if m.Rotation.Server == Player {
			if in.Signals.IndexCurl && !in.Signals.Fist && m.serveGestureOpen() {
				m.launch(&events)
			}
		} else if m.serveTicks >= m.cfg.OpponentServeDelay {
			m.launch(&events)
		}

	case PhaseActive:
		m.movePaddles(in)
		m.Ball.Step(m.cfg)

		if m.Ball.HitPaddle(Player, m.PlayerPaddle, m.cfg) {
			m.opponent.OnPlayerHit(m.cfg)
			events = append(events, Event{Kind: EventPlayerHit, Side: Player})
		}
		if m.Ball.HitPaddle(Opponent, m.OpponentPaddle, m.cfg) {
			events = append(events, Event{Kind: EventOpponentHit, Side: Opponent})
		}

		// The scoring check runs every active tick, regardless of any
		// paddle contact resolved above.
		if winner, out := m.Ball.OutOfBounds(m.cfg); out {
			m.scorePoint(winner, &events)
		}
	}

	return events
}

func (m *Match) movePaddles(in Input) {
	m.mapper.Apply(&m.PlayerPaddle, in.Hand, m.cfg)
	target := m.opponent.Target(m.Ball, m.Phase, m.cfg)
	m.opponent.Advance(&m.OpponentPaddle, target, m.cfg)
}

func (m *Match) paddle(s Side) *Paddle {
	if s == Player {
		return &m.PlayerPaddle
	}
	return &m.OpponentPaddle
}

func (m *Match) serveGestureOpen() bool {
	if m.cfg.ServeTrigger == TriggerAfterCountdown {
		return m.serveTicks >= m.cfg.CountdownTicks
	}
	return true
}

func (m *Match) startGame(events *[]Event) {
	m.PlayerScore = 0
	m.OpponentScore = 0
	m.Rotation.Reset(Player)
	m.enterServe(events)
}

func (m *Match) enterServe(events *[]Event) {
	m.Phase = PhaseServing
	m.serveTicks = 0
	m.opponent.OnServe(m.cfg)
	m.Ball.PinToServe(m.Rotation.Server, m.paddle(m.Rotation.Server).X, m.cfg)
	*events = append(*events, Event{Kind: EventServeStart, Side: m.Rotation.Server})
}

func (m *Match) launch(events *[]Event) {
	drift := (m.rng.Float64()*2 - 1) * m.cfg.ServeDriftMax
	m.Ball.Launch(m.Rotation.Server, drift, m.cfg)
	*events = append(*events, Event{Kind: EventLaunch, Side: m.Rotation.Server})
	m.Phase = PhaseActive
}

func (m *Match) scorePoint(winner Side, events *[]Event) {
	if winner == Player {
		m.PlayerScore++
	} else {
		m.OpponentScore++
	}
	*events = append(*events, Event{Kind: EventPoint, Side: winner})

	if champ, won := Winner(m.PlayerScore, m.OpponentScore, m.cfg); won {
		m.Phase = PhaseGameOver
		*events = append(*events, Event{Kind: EventGameOver, Side: champ})
		return
	}

	m.Rotation.Advance(m.PlayerScore, m.OpponentScore, m.cfg)
	m.enterServe(events)
}
