package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pipeforge/prql-translator/internal/config"
	"github.com/pipeforge/prql-translator/internal/handlers"
	"github.com/pipeforge/prql-translator/internal/server"
	"github.com/pipeforge/prql-translator/internal/services"
	"github.com/pipeforge/prql-translator/internal/store"
	"github.com/pipeforge/prql-translator/internal/store/migrations"
	"github.com/pipeforge/prql-translator/pkg/prqlc"
	"github.com/pipeforge/prql-translator/pkg/scheduler"
)

const envPrefix = "TRANSLATOR"

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the translation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.AutomaticEnv()
			viper.SetEnvPrefix(envPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd)

			if err := validateConfiguration(cfg); err != nil {
				return err
			}

			return run(cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "port the HTTP server listens on")
	cmd.Flags().StringVar(&cfg.Server.StaticsFolder, "server-statics-folder", cfg.Server.StaticsFolder, "folder with the UI static files, served in prod mode")
	cmd.Flags().StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode: dev or prod")
	cmd.Flags().StringVar(&cfg.Version, "version", cfg.Version, "service version reported by the health endpoint")
	cmd.Flags().StringVar(&cfg.Compiler.URL, "compiler-url", cfg.Compiler.URL, "base URL of the prqlc compiler service")
	cmd.Flags().StringVar(&cfg.Compiler.Token, "compiler-token", cfg.Compiler.Token, "bearer token sent to the compiler service")
	cmd.Flags().IntVar(&cfg.Compiler.Workers, "compiler-workers", cfg.Compiler.Workers, "number of concurrent compilation workers")
	cmd.Flags().BoolVar(&cfg.Auth.Enabled, "auth-enabled", cfg.Auth.Enabled, "require signed bearer tokens on the API")
	cmd.Flags().StringVar(&cfg.Auth.SecretFilePath, "auth-secret-filepath", cfg.Auth.SecretFilePath, "path to the shared secret used to verify bearer tokens")
	cmd.Flags().StringVar(&cfg.Database.DataFolder, "data-folder", cfg.Database.DataFolder, "folder for the translation history database, in-memory when empty")

	return cmd
}

func validateConfiguration(cfg *config.Configuration) error {
	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port: %d", cfg.Server.HTTPPort)
	}

	switch cfg.Server.ServerMode {
	case server.DevServer:
	case server.ProductionServer:
		if cfg.Server.StaticsFolder == "" {
			return errors.New("statics folder must be set in prod mode")
		}
	default:
		return fmt.Errorf("invalid server mode: %s", cfg.Server.ServerMode)
	}

	if cfg.Compiler.URL == "" {
		return errors.New("compiler-url cannot be empty")
	}
	if u, err := url.Parse(cfg.Compiler.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("compiler-url must be a valid URL: %s", cfg.Compiler.URL)
	}

	if cfg.Compiler.Workers < 1 {
		return fmt.Errorf("invalid compiler-workers: %d", cfg.Compiler.Workers)
	}

	if cfg.Auth.Enabled && cfg.Auth.SecretFilePath == "" {
		return errors.New("auth-secret-filepath must be set when authentication is enabled")
	}

	return nil
}

func run(cfg *config.Configuration) error {
	logger, err := newLogger(cfg.Server.ServerMode)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	printBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPath := ":memory:"
	if cfg.Database.DataFolder != "" {
		dbPath = filepath.Join(cfg.Database.DataFolder, "translations.db")
	}

	db, err := store.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open the database: %w", err)
	}

	st := store.NewStore(db)
	defer st.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	sched := scheduler.NewScheduler(cfg.Compiler.Workers)
	defer sched.Close()

	compiler := prqlc.NewCompilerClient(cfg.Compiler.URL, cfg.Compiler.Token)
	historySrv := services.NewHistoryService(st)
	translatorSrv := services.NewTranslatorService(compiler, sched, historySrv)

	h := handlers.New(translatorSrv, historySrv, st, cfg.Version)

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		router.POST("/prql", h.TranslateToPrql)
		router.POST("/sql", h.TranslateToSql)
		router.POST("/compile", h.CompilePrql)
		router.GET("/translations", h.ListTranslations)
		router.GET("/translations/export", h.ExportTranslations)
		router.GET("/translations/:id", h.GetTranslation)
		router.DELETE("/translations", h.ClearTranslations)
		router.GET("/health", h.GetHealth)
	})
	if err != nil {
		return err
	}

	go func() {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Errorw("http server stopped", "error", err)
			stop()
		}
	}()

	zap.S().Infow("translator service started",
		"port", cfg.Server.HTTPPort,
		"mode", cfg.Server.ServerMode,
		"compiler", cfg.Compiler.URL,
		"workers", cfg.Compiler.Workers,
	)

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Stop(shutdownCtx)

	return nil
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == server.ProductionServer {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func printBanner(cfg *config.Configuration) {
	heading := color.New(color.FgHiCyan, color.Bold)
	_, _ = heading.Println("prql-translator " + cfg.Version)
	fmt.Printf("listening on :%d (%s mode)\n", cfg.Server.HTTPPort, cfg.Server.ServerMode)
}
