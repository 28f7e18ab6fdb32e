package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/platform/web"
)

var (
	flagHTTPAddr    string
	flagMaxSessions int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server for browser clients",
	Long: `Start an HTTP server that hosts boards for browser clients.

Clients create a session, post canvas pixel coordinates to touch tiles,
and watch state pushes over a websocket.

Routes:
  POST   /api/sessions                 Create a board
  GET    /api/sessions                 List boards
  GET    /api/sessions/{id}            Board state
  DELETE /api/sessions/{id}            Drop a board
  POST   /api/sessions/{id}/touch      Touch at {"x","y"} (add "cell":true for grid cells)
  POST   /api/sessions/{id}/undo       Undo one slide
  POST   /api/sessions/{id}/redo       Redo one slide
  POST   /api/sessions/{id}/shuffle    Shuffle and clear history
  GET    /api/sessions/{id}/ws         Websocket state pushes
  GET    /api/scores/{board}           Best solves

Examples:
  fifteen web
  fifteen web --http :9000 --max-sessions 100`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 1000, "Maximum live boards (0 = unlimited)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	puzzleCfg, logger, err := setup(false)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.Puzzle = puzzleCfg
	cfg.MaxSessions = flagMaxSessions
	cfg.Store = store
	cfg.Logger = logger.WithPrefix("fifteen-web")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting web server on %s\n", cfg.Address)
	fmt.Printf("Try: curl -X POST http://localhost:%s/api/sessions\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return web.NewServer(cfg).ListenAndServe(ctx)
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
