package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/handpong/internal/app"
	"github.com/ayusman/handpong/internal/game"
	"github.com/ayusman/handpong/internal/server"
	"github.com/ayusman/handpong/internal/store"
	"github.com/ayusman/handpong/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	dbPath := flag.String("db", "", "database path (default ~/.handpong/handpong.db)")
	webDir := flag.String("web", "", "static web directory (default: autodetect)")
	motionThresh := flag.Float64("motion-thresh", 1.0, "motion threshold, percent of changed pixels")
	headless := flag.Bool("headless", false, "run without the system tray")
	flag.Parse()

	fmt.Println("HandPong - Gesture Table Tennis")

	// Initialize the store
	path := *dbPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}

		dbDir := filepath.Join(homeDir, ".handpong")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		path = filepath.Join(dbDir, "handpong.db")
	}

	st, err := store.New(path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Build the game pipeline
	a := app.New(app.Config{
		Store:        st,
		CameraID:     *cameraID,
		MotionThresh: *motionThresh,
		Game:         game.DefaultConfig(),
	})

	if err := a.LoadTuning(); err != nil {
		log.Printf("Failed to load tuning profile: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	// Find web directory
	staticDir := *webDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	// Configure and start server
	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		Camera:    a.Camera(),
		Game:      a,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *headless {
		select {}
	}

	runTray(a, *addr)
}

// runTray runs the system tray loop and blocks until quit.
func runTray(a *app.App, addr string) {
	t := tray.New()

	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnOpen(func() {
		log.Printf("Game running at http://localhost%s/", addr)
	})

	done := make(chan struct{})
	t.OnQuit(func() {
		close(done)
	})

	// Keep the tray score line in step with the match
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}

			snap := a.Snapshot()
			switch snap.Phase {
			case "serving", "active":
				t.SetScoreLine(fmt.Sprintf("You %d - %d CPU", snap.PlayerScore, snap.OpponentScore))
			case "game_over":
				t.SetScoreLine(fmt.Sprintf("Final: you %d - %d CPU", snap.PlayerScore, snap.OpponentScore))
			default:
				t.SetScoreLine("")
			}
		}
	}()

	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.handpong/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".handpong", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
