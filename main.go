// Command ecomerge runs EcoMerge Blitz, a timed 2048 game with eco themed
// tiles.
//
// Commands:
//  1. "server" (default) – HTTP server with REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – MCP stdio server; spins up an internal HTTP API if none is available
//  3. "play" – full-screen terminal game
//  4. "autoplay" – let a built-in strategy play and print the results
//  5. "configs" / "leaderboard" / "version" – inspection helpers
//
// Flags control host/port, config directory, leaderboard file, debug logging,
// and optional ngrok tunneling for easy external access during development.
// Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/jpillora/backoff"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/mcp-training/ecomerge/api"
	"github.com/wricardo/mcp-training/ecomerge/game/config"
	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/leaderboard"
	"github.com/wricardo/mcp-training/ecomerge/game/service"
	"github.com/wricardo/mcp-training/ecomerge/game/session"
	"github.com/wricardo/mcp-training/ecomerge/game/strategy"
	"github.com/wricardo/mcp-training/ecomerge/terminal"
	"github.com/wricardo/mcp-training/ecomerge/transport/mcp"
	"github.com/wricardo/mcp-training/ecomerge/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "EcoMerge Blitz"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
	shutdownTimeout        = 10 * time.Second
	apiReadyAttempts       = 10
)

// main loads .env, then hands the command line to the CLI.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:           "ecomerge",
		Usage:          "Timed 2048 with eco-friendly tiles",
		Version:        Version,
		Writer:         os.Stdout,
		DefaultCommand: "server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Directory containing game configurations",
				Value:   "configs",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "leaderboard",
				Usage:   "Leaderboard file (empty keeps it in memory)",
				Value:   "leaderboard.json",
				Sources: cli.EnvVars("LEADERBOARD_FILE"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// Setup logging
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			serverCommand(),
			mcpCommand(),
			playCommand(),
			autoplayCommand(),
			configsCommand(),
			leaderboardCommand(),
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:    "server",
		Aliases: []string{"http"},
		Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.DurationFlag{Name: "tick", Value: time.Second, Usage: "Countdown step for wall-clock sessions"},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Action: runHTTPServer,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "Run MCP stdio server with internal HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   "http://localhost:8080",
				Usage:   "API server to reuse when it is already running",
				Sources: cli.EnvVars("ECOMERGE_API_URL"),
			},
		},
		Action: runStdioMCP,
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Player name for the leaderboard", Sources: cli.EnvVars("PLAYER_NAME")},
			&cli.StringFlag{Name: "config", Usage: "Config to play (default: classic)"},
		},
		Action: runPlay,
	}
}

func autoplayCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "Let a built-in strategy play",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "strategy", Value: "greedy", Usage: "One of " + strings.Join(strategy.Names(), ", ")},
			&cli.StringFlag{Name: "config", Usage: "Config to play (default: classic)"},
			&cli.StringFlag{Name: "name", Usage: "Submit scores to the leaderboard under this name"},
			&cli.IntFlag{Name: "games", Value: 1, Usage: "Number of games"},
			&cli.IntFlag{Name: "moves-per-second", Value: 3, Usage: "Turns per clock second (0 ignores the clock)"},
			&cli.Uint64Flag{Name: "seed", Usage: "Random seed (0 picks one)"},
		},
		Action: runAutoplay,
	}
}

func configsCommand() *cli.Command {
	return &cli.Command{
		Name:  "configs",
		Usage: "List and validate game configurations",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			manager, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}
			return printConfigs(cmd.Root().Writer, manager)
		},
	}
}

func leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "Show the leaderboard",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			board, err := openLeaderboard(cmd.String("leaderboard"))
			if err != nil {
				return err
			}
			printLeaderboard(cmd.Root().Writer, board.Query())
			return nil
		},
	}
}

// services holds the wired game stack
type services struct {
	game     service.GameService
	sessions *session.Manager
	configs  *config.Manager
	board    *leaderboard.Store
}

// initializeServices wires session/config managers, the leaderboard, and the
// game service.
func initializeServices(configDir, leaderboardPath string) (*services, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	board, err := openLeaderboard(leaderboardPath)
	if err != nil {
		return nil, err
	}

	sessionManager := session.NewManager()

	return &services{
		game:     service.NewGameService(sessionManager, configManager, board),
		sessions: sessionManager,
		configs:  configManager,
		board:    board,
	}, nil
}

// openLeaderboard loads the table from path, or keeps it in memory when path
// is empty.
func openLeaderboard(path string) (*leaderboard.Store, error) {
	var backend leaderboard.Backend = leaderboard.NewMemoryBackend()
	if path != "" {
		fileBackend, err := leaderboard.NewFileBackend(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open leaderboard: %w", err)
		}
		backend = fileBackend
	}
	board, err := leaderboard.NewStore(backend, leaderboard.DefaultCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return board, nil
}

// newRouter mounts the API at the root and the MCP proxy at /mcp
func newRouter(apiServer *api.Server, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))
	return mainRouter
}

// mcpHandler answers single JSON-RPC messages posted to /mcp
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)
		if response == nil {
			// Notifications have no reply
			w.WriteHeader(http.StatusAccepted)
			return
		}

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, game
// clock, and an /mcp proxy endpoint. If ngrok is enabled it also provisions a
// public tunnel. Everything stops together on SIGINT or SIGTERM.
func runHTTPServer(ctx context.Context, cmd *cli.Command) error {
	svc, err := initializeServices(cmd.String("config-dir"), cmd.String("leaderboard"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()
	apiServer := api.NewServer(svc.game, hub)

	addr := net.JoinHostPort(cmd.String("host"), strconv.Itoa(int(cmd.Int("port"))))
	mcpClient := mcp.NewClient("http://" + addr)
	handler := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting %s v%s", AppName, Version)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return apiServer.RunClock(gctx, cmd.Duration("tick"))
	})
	g.Go(func() error {
		sessionCleanupRoutine(gctx, svc.game, sessionCleanupInterval, sessionMaxAge)
		return nil
	})
	g.Go(func() error {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	if cmd.Bool("ngrok") {
		opts := ngrokOptions{authToken: cmd.String("ngrok-auth"), domain: cmd.String("ngrok-domain")}
		g.Go(func() error {
			runNgrok(gctx, opts, handler)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	err = g.Wait()
	log.Println("Server stopped")
	return err
}

// ngrokOptions carries the tunnel settings
type ngrokOptions struct {
	authToken string
	domain    string
}

// runNgrok serves handler through an ngrok tunnel until ctx is done. Tunnel
// failures are logged and do not stop the local server.
func runNgrok(ctx context.Context, opts ngrokOptions, handler http.Handler) {
	if opts.authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	// Configure ngrok endpoint
	var tunnel ngrokConfig.Tunnel
	if opts.domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.domain))
		log.Printf("Using custom ngrok domain: %s", opts.domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	served := make(chan error, 1)
	go func() {
		served <- http.Serve(tun, handler)
	}()

	var errs error
	select {
	case <-ctx.Done():
		errs = multierr.Append(errs, tun.Close())
		<-served
	case err := <-served:
		if ctx.Err() == nil {
			errs = multierr.Append(errs, err)
		}
		errs = multierr.Append(errs, tun.Close())
	}
	for _, err := range multierr.Errors(errs) {
		log.Printf("Ngrok tunnel error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within maxAge. Expiry goes through the game service so the
// per-session score recorders are dropped too.
func sessionCleanupRoutine(ctx context.Context, game service.GameService, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := game.CleanupExpiredSessions(ctx, maxAge)
			if len(removed) > 0 {
				log.Printf("Cleaned up %d expired sessions", len(removed))
			}
		}
	}
}

// apiAvailable reports whether an API server answers its health check
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(baseURL, "/")+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// waitForAPI polls the health check with exponential backoff
func waitForAPI(ctx context.Context, baseURL string, attempts int) error {
	b := &backoff.Backoff{
		Min:    20 * time.Millisecond,
		Max:    time.Second,
		Factor: 2,
	}
	for i := 0; i < attempts; i++ {
		if apiAvailable(ctx, baseURL) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
	return fmt.Errorf("API server at %s did not become ready after %d attempts", baseURL, attempts)
}

// runStdioMCP runs an MCP stdio server. It reuses an external API when one
// answers at --api-url; otherwise it starts an internal HTTP API bound to a
// random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	externalURL := cmd.String("api-url")
	log.Printf("Checking for external API server at %s...", externalURL)

	baseURL := externalURL
	if apiAvailable(ctx, externalURL) {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		svc, err := initializeServices(cmd.String("config-dir"), cmd.String("leaderboard"))
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		// Start internal HTTP server on a random available port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = "http://" + listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", listener.Addr())

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		hub := websocket.NewHub()
		apiServer := api.NewServer(svc.game, hub)
		httpServer := &http.Server{Handler: apiServer}

		go hub.Run(ctx)
		go apiServer.RunClock(ctx, time.Second)
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Close()

		if err := waitForAPI(ctx, baseURL, apiReadyAttempts); err != nil {
			return err
		}
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// loadGameConfig returns the named config, or the default when name is empty
func loadGameConfig(configDir, name string) (*engine.GameConfig, error) {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if name == "" {
		return manager.GetDefault(), nil
	}
	return manager.LoadConfig(name)
}

// runPlay opens a full-screen terminal game
func runPlay(ctx context.Context, cmd *cli.Command) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("play needs an interactive terminal; use autoplay or the server instead")
	}

	cfg, err := loadGameConfig(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}
	board, err := openLeaderboard(cmd.String("leaderboard"))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	// Log lines would tear the screen
	logOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(logOutput)

	game, err := terminal.New(screen, cfg,
		terminal.WithPlayerName(cmd.String("name")),
		terminal.WithLeaderboard(board))
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = game.Run(ctx)
	screen.Fini()

	state := game.Engine().GetState()
	fmt.Fprintf(cmd.Root().Writer, "Score: %d  Max tile: %d  Moves: %d\n", state.Score, state.MaxTile, state.TotalMoves)
	return err
}

// runAutoplay lets a strategy play one or more games and prints a summary
func runAutoplay(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadGameConfig(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}
	games := int(cmd.Int("games"))
	if games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", games)
	}

	seed := cmd.Uint64("seed")
	if seed == 0 {
		seed = rand.Uint64()
	}
	rnd := rand.New(rand.NewPCG(seed, seed))

	player, err := strategy.New(cmd.String("strategy"), rnd)
	if err != nil {
		return err
	}

	var board *leaderboard.Store
	name := strings.TrimSpace(cmd.String("name"))
	if name != "" {
		if name, err = leaderboard.ValidateName(name); err != nil {
			return err
		}
		if board, err = openLeaderboard(cmd.String("leaderboard")); err != nil {
			return err
		}
	}

	out := cmd.Root().Writer
	fmt.Fprintf(out, "%s on %s (seed %d)\n", player.Name(), cfg.Name, seed)

	best := 0
	for i := 1; i <= games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		opts := []engine.Option{engine.WithPlayerName(name), engine.WithRandomSource(rnd)}
		if board != nil {
			opts = append(opts, engine.WithScoreSink(engine.ScoreSinkFunc(func(score engine.FinalScore) error {
				_, accepted, err := board.Submit(leaderboard.Entry{Name: score.Name, Score: score.Score, Date: score.Date})
				if accepted {
					fmt.Fprintf(out, "  New leaderboard entry: %d\n", score.Score)
				}
				return err
			})))
		}

		eng, err := engine.NewEngine(cfg, opts...)
		if err != nil {
			return err
		}
		eng.Start()

		var onMove func(engine.MoveOutcome)
		if cmd.Bool("debug") {
			onMove = func(o engine.MoveOutcome) {
				log.Printf("[AUTOPLAY] %s +%d", o.Direction, o.ScoreDelta)
			}
		}
		summary := strategy.Play(eng, player, int(cmd.Int("moves-per-second")), onMove)
		fmt.Fprintf(out, "Game %d: score %d, max tile %d, %d moves, ended by %s\n",
			i, summary.Score, summary.MaxTile, summary.Moves, summary.EndReason)
		best = max(best, summary.Score)
	}

	if games > 1 {
		fmt.Fprintf(out, "Best score: %d\n", best)
	}
	return nil
}

// printConfigs lists every loadable config and reports invalid files
func printConfigs(w io.Writer, manager *config.Manager) error {
	infos, err := manager.ListConfigs()
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%-12s %dx%d %4ds  %s\n", info.ConfigID, info.GridSize, info.GridSize, info.TimeLimit, info.Description)
	}

	if err := manager.Validate(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(w, "invalid: %v\n", e)
		}
		return fmt.Errorf("%d invalid config file(s)", len(multierr.Errors(err)))
	}
	return nil
}

func printLeaderboard(w io.Writer, entries []leaderboard.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "The leaderboard is empty.")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%2d. %-20s %6d  %s\n", i+1, e.Name, e.Score, e.Date.Format("2006-01-02"))
	}
}
