package app

import (
	"log"
	"time"

	"github.com/ayusman/handpong/internal/capture"
	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/game"
)

// runPipeline is the fixed-rate simulation loop.
//
// Each tick:
// 1. Read a camera frame.
// 2. While no point is in play, run motion detection and throttle the camera
//    to its idle frame rate when the scene is still.
// 3. Run hand detection, deduplicated against the camera frame sequence so a
//    slow camera never classifies the same frame twice.
// 4. Classify the hand pose into game signals.
// 5. Advance the match one tick and publish a snapshot.
//
// The tick rate itself never changes. Throttling only slows the camera; the
// simulation keeps stepping so the ball never stutters.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	interval := a.config.TickInterval
	if interval <= 0 {
		interval = time.Second / TickRate
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cameraIdle := true
	lastMotionTime := time.Now()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip the tick entirely while paused
			if !a.IsEnabled() {
				continue
			}

			if cfg, ok := a.takePendingTuning(); ok {
				a.match.SetConfig(cfg)
				log.Println("Applied tuning update")
			}

			var in game.Input

			frame, err := a.camera.ReadFrame()
			if err != nil {
				// Keep simulating on a dropped frame; the match sees an
				// empty tick and the presence debounce handles the rest.
				log.Printf("Error reading frame: %v", err)
			} else {
				inPlay := a.match.Phase == game.PhaseServing || a.match.Phase == game.PhaseActive

				if inPlay {
					if cameraIdle {
						cameraIdle = false
						a.camera.SetFPS(capture.DefaultFPS)
					}
					lastMotionTime = time.Now()
				} else if moved, _ := a.motion.Detect(frame); moved {
					lastMotionTime = time.Now()
					if cameraIdle {
						cameraIdle = false
						a.camera.SetFPS(capture.DefaultFPS)
						log.Println("Motion detected, camera at full rate")
					}
				} else if !cameraIdle && time.Since(lastMotionTime) > MotionIdleTimeout {
					cameraIdle = true
					a.camera.SetFPS(capture.IdleFPS)
					log.Println("Scene still, camera throttled")
				}

				hands, derr := a.detector.DetectSeq(frame, a.camera.Seq())
				frame.Close()

				if derr != nil {
					log.Printf("Error detecting hands: %v", derr)
				} else {
					// The first successful detection means the tracking
					// source has finished loading.
					a.match.TrackerReady()
					if len(hands) > 0 {
						in.Hand = &hands[0]
					}
				}
			}

			in.Signals = a.classifier.Classify(in.Hand)

			events := a.match.Update(in)
			a.handleEvents(events)

			snap := a.match.Snapshot()
			snap.Countdown = a.countdown.current()
			snap.Session = a.session
			if in.Hand != nil {
				wrist := in.Hand.Points[detector.Wrist]
				snap.HandX = a.config.Game.HandToCourtX(wrist.X)
				snap.HandY = wrist.Y * a.config.Game.CourtHeight
			}
			a.publish(snap)
		}
	}
}

// handleEvents reacts to the notable moments of a tick: countdown control and
// score logging. Simulation consequences are already settled inside Update.
func (a *App) handleEvents(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventServeStart:
			a.countdown.start(a.config.Game.CountdownTicks / TickRate)
			log.Printf("Serve: %s", ev.Side)
		case game.EventLaunch:
			a.countdown.clear()
		case game.EventPoint:
			snapshotAfter := a.match.Snapshot()
			log.Printf("Point to %s (%d-%d)", ev.Side,
				snapshotAfter.PlayerScore, snapshotAfter.OpponentScore)
		case game.EventGameOver:
			a.countdown.clear()
			log.Printf("Game over, %s wins", ev.Side)
		}
	}
}
