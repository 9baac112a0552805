package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/auth"
	"github.com/speaksharp/speaksharp/internal/backend"
	"github.com/speaksharp/speaksharp/internal/config"
	"github.com/speaksharp/speaksharp/internal/database"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/logging"
	"github.com/speaksharp/speaksharp/internal/recorder"
	"github.com/speaksharp/speaksharp/internal/secrets"
	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/state"
	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/screens"
)

// version is stamped by the release build.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "speaksharp",
	Short: "Speak Sharp, a speech practice coach for the terminal",
	Long: `Speak Sharp times your practice speeches, scores each take across
five dimensions and keeps every session in a local history.

Run without arguments to open the interactive interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		runTUI()
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull remote speeches into the local history without opening the UI",
	RunE:  runSync,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range tui.AllRoutes() {
			fmt.Println(id)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("speaksharp " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(syncCmd, routesCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is everything the bootstrap produces before the UI mounts.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	db     *sql.DB
	client *backend.Client
	deps   *screens.Deps
}

// bootstrap runs the one-time platform initialization: config, logging,
// the backend handshake, database migration and seeding, then the full
// service graph. Any failure here is fatal; nothing mounts on a half
// built platform.
func bootstrap(ctx context.Context) *app {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.Open(cfg.Log.Path, level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}

	client := backend.New(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Offline: cfg.Backend.Offline,
		Logger:  logger.Named("backend"),
	})
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		log.Fatalf("backend handshake with %s failed: %v (set backend.offline=true to practice without it)", cfg.Backend.BaseURL, err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	profiles := repository.NewProfileRepo(db)
	sessions := repository.NewSessionRepo(db)
	types := repository.NewSpeechTypeRepo(db)

	account := state.NewStore(state.Account{})
	session := state.NewStore(state.Practice{})

	gender := cfg.Backend.Gender
	if gender == "unspecified" {
		gender = ""
	}

	practice := &service.PracticeService{
		Sessions:       sessions,
		Types:          types,
		Recorder:       recorder.NewClock(cfg.Audio.TakePath),
		Analyzer:       analyzer(cfg, client),
		Session:        session,
		Account:        account,
		Gender:         gender,
		TranscriptPath: cfg.Audio.TranscriptPath,
		Log:            logger.Named("practice"),
	}
	history := &service.HistoryService{
		Sessions: sessions,
		Backend:  client,
		Log:      logger.Named("history"),
	}
	authSvc := &auth.Service{
		Profiles: profiles,
		Log:      logger.Named("auth"),
	}

	vault := secrets.Open(filepath.Join(os.Getenv("HOME"), ".config", "speaksharp"))
	resume(ctx, vault, authSvc, account, logger)

	deps := &screens.Deps{
		Config:      &cfg,
		Log:         logger,
		Backend:     client,
		Auth:        authSvc,
		Practice:    practice,
		History:     history,
		Maintenance: &service.MaintenanceService{DB: db},
		Vault:       vault,
		Account:     account,
		Session:     session,
		Types:       types,
	}
	return &app{cfg: cfg, log: logger, db: db, client: client, deps: deps}
}

// analyzer picks the scoring pipeline from config: the backend API when
// online, the deterministic local heuristics otherwise.
func analyzer(cfg config.Config, client *backend.Client) analysis.Analyzer {
	if cfg.Backend.Offline {
		return analysis.NewLocal()
	}
	return client
}

// resume restores the remembered sign-in, if any. Failures only log;
// the login screen is always a valid fallback.
func resume(ctx context.Context, vault *secrets.Vault, svc *auth.Service, account *state.Store[state.Account], logger *zap.Logger) {
	profileID, err := vault.Remembered()
	if err != nil {
		if !errors.Is(err, secrets.ErrNoSession) {
			logger.Warn("read remembered session", zap.Error(err))
		}
		return
	}
	acct, err := svc.Resume(ctx, profileID)
	if err != nil {
		logger.Warn("resume remembered session", zap.Error(err))
		return
	}
	account.Set(acct)
	logger.Info("resumed session", zap.String("profile_id", acct.ID))
}

func runTUI() {
	ctx := context.Background()
	a := bootstrap(ctx)
	defer a.db.Close()
	defer a.log.Sync()

	router, err := tui.NewRouter(screens.Routes(a.deps), tui.RouteSplash)
	if err != nil {
		log.Fatalf("route table: %v", err)
	}
	a.deps.Router = router

	model := tui.NewModel(router, tui.NewKeyRegistry(tui.DefaultKeyBindings()))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := bootstrap(ctx)
	defer a.db.Close()
	defer a.log.Sync()

	account := a.deps.Account.Get()
	if !account.SignedIn() {
		return fmt.Errorf("no remembered sign-in; open the app and sign in first")
	}

	syncCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	res, err := a.deps.History.Sync(syncCtx, account.ID)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	fmt.Printf("Imported %d, skipped %d\n", res.Imported, res.Skipped)
	for _, e := range res.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	return nil
}
