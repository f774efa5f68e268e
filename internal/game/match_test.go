package game

import (
	"testing"

	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/gesture"
)

func fistInput() Input {
	hand := detector.FistAt(0.5, 0.7)
	return Input{Hand: &hand, Signals: gesture.Signals{Fist: true, IndexCurl: true}}
}

func curlInput() Input {
	hand := detector.IndexCurlAt(0.5, 0.7)
	return Input{Hand: &hand, Signals: gesture.Signals{IndexCurl: true}}
}

func openInput() Input {
	hand := detector.OpenHandAt(0.5, 0.7)
	return Input{Hand: &hand}
}

func emptyInput() Input {
	return Input{}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestMatch_PhaseFlow(t *testing.T) {
	m := NewSeeded(DefaultConfig(), 1)

	if m.Phase != PhaseInitializing {
		t.Fatalf("new match phase = %v, want Initializing", m.Phase)
	}

	// Gestures before the tracker is ready do nothing.
	m.Update(fistInput())
	if m.Phase != PhaseInitializing {
		t.Fatal("match left Initializing before the tracker was ready")
	}

	m.TrackerReady()
	if m.Phase != PhaseAwaitingHand {
		t.Fatalf("phase = %v after TrackerReady, want AwaitingHand", m.Phase)
	}

	// No hand: stays waiting.
	m.Update(emptyInput())
	if m.Phase != PhaseAwaitingHand {
		t.Fatal("match left AwaitingHand without a hand")
	}

	// First hand moves to the menu.
	m.Update(openInput())
	if m.Phase != PhaseMenu {
		t.Fatalf("phase = %v after first hand, want Menu", m.Phase)
	}

	// The serve gesture is not valid in the menu; it is silently ignored.
	m.Update(curlInput())
	if m.Phase != PhaseMenu {
		t.Fatal("serve gesture must be ignored in Menu")
	}

	// A fist starts the game.
	events := m.Update(fistInput())
	if m.Phase != PhaseServing {
		t.Fatalf("phase = %v after fist, want Serving", m.Phase)
	}
	if !hasEvent(events, EventServeStart) {
		t.Error("expected EventServeStart on entering Serving")
	}
	if m.Rotation.Server != Player {
		t.Errorf("first server = %v, want Player", m.Rotation.Server)
	}
	if m.Ball.DX != 0 || m.Ball.DY != 0 {
		t.Errorf("serving ball velocity = (%f, %f), want (0, 0)", m.Ball.DX, m.Ball.DY)
	}

	// The serve trigger launches the ball toward the opponent.
	events = m.Update(curlInput())
	if m.Phase != PhaseActive {
		t.Fatalf("phase = %v after serve trigger, want Active", m.Phase)
	}
	if !hasEvent(events, EventLaunch) {
		t.Error("expected EventLaunch on serve")
	}
	if m.Ball.DY >= 0 {
		t.Errorf("serve DY = %f, want negative (player serves upward)", m.Ball.DY)
	}
}

func TestMatch_FistDoesNotServe(t *testing.T) {
	m := NewSeeded(DefaultConfig(), 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())
	if m.Phase != PhaseServing {
		t.Fatal("setup failed: expected Serving")
	}

	// A fist also curls the index finger but must not trigger the serve.
	for i := 0; i < 10; i++ {
		m.Update(fistInput())
	}
	if m.Phase != PhaseServing {
		t.Errorf("phase = %v, a fist during Serving must not launch", m.Phase)
	}
}

func TestMatch_BallPinnedToMovingPaddle(t *testing.T) {
	m := NewSeeded(DefaultConfig(), 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())

	// Drive the hand to the camera's left edge: the paddle glides right on
	// the mirrored court and the pinned ball must follow it exactly.
	hand := detector.OpenHandAt(0.1, 0.7)
	for i := 0; i < 60; i++ {
		m.Update(Input{Hand: &hand})
		if m.Ball.X != m.PlayerPaddle.X {
			t.Fatalf("tick %d: pinned ball X = %f, paddle X = %f", i, m.Ball.X, m.PlayerPaddle.X)
		}
		if m.Ball.DX != 0 || m.Ball.DY != 0 {
			t.Fatalf("tick %d: pinned ball moved", i)
		}
	}
	if m.PlayerPaddle.X <= m.Config().CenterX() {
		t.Error("paddle did not glide toward the mirrored hand position")
	}
}

func TestMatch_OpponentAutoServe(t *testing.T) {
	cfg := DefaultConfig()
	m := NewSeeded(cfg, 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())

	m.Rotation.Reset(Opponent)
	var events []Event
	m.enterServe(&events)

	for i := 1; i < cfg.OpponentServeDelay; i++ {
		// The player's serve gesture is meaningless on the opponent's serve.
		got := m.Update(curlInput())
		if hasEvent(got, EventLaunch) {
			t.Fatalf("tick %d: opponent served before its delay", i)
		}
	}

	got := m.Update(emptyInput())
	if !hasEvent(got, EventLaunch) {
		t.Fatal("opponent did not auto-serve after its delay")
	}
	if m.Ball.DY <= 0 {
		t.Errorf("opponent serve DY = %f, want positive (toward the player)", m.Ball.DY)
	}
}

func TestMatch_ServeTriggerPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServeTrigger = TriggerAfterCountdown
	m := NewSeeded(cfg, 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())

	for i := 1; i < cfg.CountdownTicks; i++ {
		m.Update(curlInput())
		if m.Phase != PhaseServing {
			t.Fatalf("tick %d: serve accepted during the countdown under TriggerAfterCountdown", i)
		}
	}

	m.Update(curlInput())
	if m.Phase != PhaseActive {
		t.Error("serve gesture after the countdown was not accepted")
	}
}

// Ball near the top edge moving up: the next tick takes it past y=0, which is
// an unconditional point for the bottom (player) side and re-enters Serving.
func TestMatch_TopExitScoresForPlayer(t *testing.T) {
	m := NewSeeded(DefaultConfig(), 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())
	m.Update(curlInput())
	if m.Phase != PhaseActive {
		t.Fatal("setup failed: expected Active")
	}

	// Park the opponent away from the ball's lane so it cannot intercept.
	m.Ball = Ball{X: 60, Y: 3, DX: 0, DY: -7}
	m.OpponentPaddle.X = 650

	events := m.Update(emptyInput())

	if !hasEvent(events, EventPoint) {
		t.Fatal("expected a scoring event")
	}
	for _, e := range events {
		if e.Kind == EventPoint && e.Side != Player {
			t.Errorf("point credited to %v, want Player for a top exit", e.Side)
		}
	}
	if m.PlayerScore != 1 || m.OpponentScore != 0 {
		t.Errorf("score = %d-%d, want 1-0", m.PlayerScore, m.OpponentScore)
	}
	if m.Phase != PhaseServing {
		t.Errorf("phase = %v after a point, want Serving", m.Phase)
	}
	if m.Ball.DX != 0 || m.Ball.DY != 0 {
		t.Error("ball not re-pinned after the point")
	}
}

func TestMatch_BottomExitScoresForOpponent(t *testing.T) {
	cfg := DefaultConfig()
	m := NewSeeded(cfg, 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())
	m.Update(curlInput())

	m.Ball = Ball{X: 60, Y: cfg.CourtHeight - 3, DX: 0, DY: 7}
	m.PlayerPaddle.X = 650

	m.Update(emptyInput())

	if m.OpponentScore != 1 {
		t.Errorf("opponent score = %d, want 1", m.OpponentScore)
	}
}

// Play a full scripted game to 11-0 and verify serve rotation, score
// monotonicity and the terminal transition.
func TestMatch_FullGame(t *testing.T) {
	cfg := DefaultConfig()
	m := NewSeeded(cfg, 1)
	m.TrackerReady()
	m.Update(openInput())

	var serveOrder []Side
	events := m.Update(fistInput())
	for _, e := range events {
		if e.Kind == EventServeStart {
			serveOrder = append(serveOrder, e.Side)
		}
	}

	prevPlayer, prevOpponent := 0, 0
	for safety := 0; m.Phase != PhaseGameOver && safety < 10000; safety++ {
		var events []Event
		switch m.Phase {
		case PhaseServing:
			if m.Rotation.Server == Player {
				events = m.Update(curlInput())
			} else {
				events = m.Update(emptyInput())
			}
		case PhaseActive:
			// Force the point for the player.
			m.Ball = Ball{X: 60, Y: 3, DX: 0, DY: -7}
			m.OpponentPaddle.X = 650
			events = m.Update(emptyInput())
		default:
			t.Fatalf("unexpected phase %v mid-game", m.Phase)
		}

		for _, e := range events {
			if e.Kind == EventServeStart {
				serveOrder = append(serveOrder, e.Side)
			}
		}

		if m.PlayerScore < prevPlayer || m.OpponentScore < prevOpponent {
			t.Fatal("scoreboard decreased during a game")
		}
		prevPlayer, prevOpponent = m.PlayerScore, m.OpponentScore
	}

	if m.Phase != PhaseGameOver {
		t.Fatal("game never finished")
	}
	if m.PlayerScore != cfg.WinningScore || m.OpponentScore != 0 {
		t.Fatalf("final score %d-%d, want %d-0", m.PlayerScore, m.OpponentScore, cfg.WinningScore)
	}

	// 11 serves: the server switches after every 2nd point below deuce.
	want := []Side{Player, Player, Opponent, Opponent, Player, Player, Opponent, Opponent, Player, Player, Opponent}
	if len(serveOrder) != len(want) {
		t.Fatalf("recorded %d serves, want %d", len(serveOrder), len(want))
	}
	for i, s := range want {
		if serveOrder[i] != s {
			t.Errorf("serve %d by %v, want %v", i+1, serveOrder[i], s)
		}
	}
}

func TestMatch_GameOverIsTerminalUntilFist(t *testing.T) {
	cfg := DefaultConfig()
	m := NewSeeded(cfg, 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())
	m.Update(curlInput())

	// Hand the player a winning point from 10-0.
	m.PlayerScore = cfg.WinningScore - 1
	m.Ball = Ball{X: 60, Y: 3, DX: 0, DY: -7}
	m.OpponentPaddle.X = 650

	events := m.Update(emptyInput())
	if !hasEvent(events, EventGameOver) {
		t.Fatal("expected EventGameOver at 11-0")
	}
	if m.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want GameOver", m.Phase)
	}

	// Serve gestures do nothing now.
	for i := 0; i < 20; i++ {
		m.Update(curlInput())
	}
	if m.Phase != PhaseGameOver {
		t.Fatal("GameOver must be terminal for non-fist gestures")
	}

	// A fresh fist starts a new game with reset scores.
	m.Update(fistInput())
	if m.Phase != PhaseServing {
		t.Fatalf("phase = %v after restart fist, want Serving", m.Phase)
	}
	if m.PlayerScore != 0 || m.OpponentScore != 0 {
		t.Errorf("score = %d-%d after restart, want 0-0", m.PlayerScore, m.OpponentScore)
	}
}

func TestMatch_WinRequiresTwoPointLead(t *testing.T) {
	cfg := DefaultConfig()
	m := NewSeeded(cfg, 1)
	m.TrackerReady()
	m.Update(openInput())
	m.Update(fistInput())
	m.Update(curlInput())

	// 10-10, player scores: 11-10 is not a win.
	m.PlayerScore = 10
	m.OpponentScore = 10
	m.Ball = Ball{X: 60, Y: 3, DX: 0, DY: -7}
	m.OpponentPaddle.X = 650

	events := m.Update(emptyInput())
	if hasEvent(events, EventGameOver) {
		t.Fatal("11-10 must not end the game")
	}
	if m.Phase != PhaseServing {
		t.Fatalf("phase = %v, want Serving to continue the deuce battle", m.Phase)
	}
}
