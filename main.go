// Command color-lines starts the Color Lines game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config and session storage, debug logging, version
// output, and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/color-lines/api"
	"github.com/wricardo/color-lines/game/config"
	"github.com/wricardo/color-lines/game/service"
	"github.com/wricardo/color-lines/game/session"
	"github.com/wricardo/color-lines/transport/mcp"
	"github.com/wricardo/color-lines/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Color Lines Game Server"
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	configDir    = flag.String("config-dir", "configs", "Directory containing game configurations (or CONFIG_DIR)")
	sessionsDir  = flag.String("sessions-dir", "sessions", "Directory for file session storage (or SESSIONS_DIR)")
	storeKind    = flag.String("store", "file", "Session store: file or sqlite (or STORE)")
	sqliteDSN    = flag.String("sqlite-dsn", "data/lines.db", "SQLite database path for store=sqlite (or SQLITE_DSN)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// envFlags maps flags to the environment variables that fill them when the
// flag is not given on the command line.
var envFlags = map[string]string{
	"config-dir":   "CONFIG_DIR",
	"sessions-dir": "SESSIONS_DIR",
	"store":        "STORE",
	"sqlite-dsn":   "SQLITE_DSN",
}

// applyEnvFlags copies environment values into flags left unset
func applyEnvFlags(fs *flag.FlagSet) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for name, key := range envFlags {
		if set[name] {
			continue
		}
		if v := os.Getenv(key); v != "" {
			if err := fs.Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
	}
	return nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -store sqlite      # Keep sessions and the leaderboard in SQLite\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s mcp -port 9090     # Run MCP stdio server with internal HTTP on port 9090\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	flag.Parse()
	if err := applyEnvFlags(flag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(2)
	}

	// Show version if requested
	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	// Determine mode from command
	args := flag.Args()
	mode := "server" // default
	if len(args) > 0 {
		mode = args[0]
	}

	// stdio mode owns stdout, so logs always go to stderr
	setupLogging(*debug, os.Getenv("LOG_LEVEL"))

	if envErr == nil {
		log.Debug().Msg("loaded environment variables from .env file")
	} else if !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg("error loading .env file")
	}

	log.Info().Str("version", Version).Str("mode", mode).Msgf("starting %s", AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	gameService, err := initializeServices(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		// Run MCP stdio server with internal HTTP server
		runStdioMCPWithInternalServer(ctx, gameService)

	case "server", "http":
		// Run HTTP server with API, WebSocket, and MCP endpoint
		runHTTPServer(ctx, gameService)

	default:
		log.Fatal().Msgf("unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// setupLogging sets the global zerolog level and writer. Debug mode uses a
// human-readable console writer.
func setupLogging(debug bool, level string) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		zerolog.SetGlobalLevel(lvl)
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Caller().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// newMCPHandler serves MCP JSON-RPC messages over HTTP POST
func newMCPHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
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

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newRouter combines the API server at the root with the /mcp endpoint
func newRouter(gameService service.GameService, hub *websocket.Hub, baseURL string) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(gameService, hub))
	mainRouter.HandleFunc("/mcp", newMCPHandler(mcp.NewClient(baseURL)))
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Setup HTTP server address
	addr := fmt.Sprintf("%s:%d", *host, *port)
	mainRouter := newRouter(gameService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("api", fmt.Sprintf("http://%s/api", addr)).
			Str("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)).
			Str("mcp", fmt.Sprintf("http://%s/mcp", addr)).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := *ngrokEnabled
	if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
		ngrokShouldRun = true
	}

	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Wait for all goroutines to finish
	wg.Wait()
	log.Info().Msg("server stopped")
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx ends
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	// Get auth token from flag or environment (support both naming conventions)
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}

	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	log.Info().Msg("starting ngrok tunnel")
	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	ngrokURL := tun.URL()
	log.Info().
		Str("url", ngrokURL).
		Str("api", ngrokURL+"/api").
		Str("websocket", ngrokURL+"/ws?session=<session_id>").
		Str("mcp", ngrokURL+"/mcp").
		Msg("ngrok tunnel established")

	// Closing the tunnel on shutdown unblocks Serve
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// newPersistence opens the session store selected by kind. The SQLite store
// also records finished games, so it is returned as the result store too.
func newPersistence(kind string, configManager *config.Manager) (session.SessionPersistence, service.ResultStore, error) {
	switch kind {
	case "", "file":
		persistence, err := session.NewFilePersistence(*sessionsDir, configManager)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
		return persistence, nil, nil

	case "sqlite":
		persistence, err := session.NewSQLitePersistence(*sqliteDSN, configManager)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return persistence, persistence, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q (use file or sqlite)", kind)
	}
}

// initializeServices wires session/config managers and the game service.
// It also starts background routines that prune stale sessions until ctx ends.
func initializeServices(ctx context.Context) (service.GameService, error) {
	// Create config manager first (needed for persistence)
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, results, err := newPersistence(*storeKind, configManager)
	if err != nil {
		return nil, err
	}

	// Create session manager with persistence
	sessionManager := session.NewManagerWithPersistence(persistence)

	// Load persisted sessions on startup
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Warn().Err(err).Msg("failed to load persisted sessions")
	}

	var opts []service.Option
	if results != nil {
		opts = append(opts, service.WithResultStore(results))
	}
	gameService := service.NewGameService(sessionManager, configManager, opts...)

	log.Info().
		Str("store", *storeKind).
		Str("config_dir", *configDir).
		Int("sessions", sessionManager.Count()).
		Msg("services initialized")

	go sessionCleanupRoutine(ctx, sessionManager)
	go storeSyncRoutine(ctx, sessionManager, persistence)

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the retention window.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(24 * time.Hour); removed > 0 {
				log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
			}
		}
	}
}

// storeSyncRoutine periodically drops sessions from memory whose stored
// copy was deleted outside the server.
func storeSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pruned := pruneDeletedSessions(manager, persistence)
		if pruned > 0 {
			log.Info().Int("pruned", pruned).Msg("store sync: pruned orphaned sessions from memory")
		}
	}
}

// pruneDeletedSessions removes in-memory sessions missing from persistence
func pruneDeletedSessions(manager *session.Manager, persistence session.SessionPersistence) int {
	if persistence == nil {
		return 0
	}

	pruned := 0
	for _, sess := range manager.List() {
		exists, err := persistence.Lookup(sess.ID)
		if err != nil {
			log.Warn().Err(err).Str("session", sess.ID).Msg("store sync: lookup failed, keeping session")
			continue
		}
		if exists {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.Debug().Str("session", sess.ID).Msg("pruned session from memory (stored copy deleted)")
		}
	}
	return pruned
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, gameService service.GameService) {
	var baseURL string

	// First, try to connect to external API server at localhost:8080
	externalURL := "http://localhost:8080"
	log.Info().Str("url", externalURL).Msg("checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Info().Str("url", externalURL).Msg("external API server found, using it for MCP")
		baseURL = externalURL
	} else {
		log.Info().Msg("no external API server found, starting internal HTTP server")

		// Start internal HTTP server on a random available port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get available port")
		}

		internalAddr := listener.Addr().String()
		log.Info().Str("addr", internalAddr).Msg("starting internal HTTP server for MCP stdio")

		hub := websocket.NewHub()
		go hub.Run(ctx)

		httpServer := &http.Server{
			Handler: api.NewServer(gameService, hub),
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Str("api", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatal().Err(err).Msg("MCP stdio server error")
	}
}
