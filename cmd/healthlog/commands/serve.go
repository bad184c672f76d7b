package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adapthttp "healthlog/internal/adapter/http"
	"healthlog/internal/app"
)

const (
	shutdownTimeout    = 10 * time.Second
	sessionPrunePeriod = time.Hour
)

// NewServeCmd creates the serve command.
func NewServeCmd(g *globalOptions) *cobra.Command {
	var (
		addr   string
		webDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web app and JSON API",
		Long: `Serve the single-page app from the web directory and the JSON API
under /api. Sign-in is required when OWNER_PASSWORD_HASH or OWNER_EMAIL is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = g.cfg.Addr
			}
			if !cmd.Flags().Changed("web-dir") {
				webDir = g.cfg.WebDir
			}
			return runServe(cmd.Context(), g, addr, webDir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default $ADDR)")
	cmd.Flags().StringVar(&webDir, "web-dir", "web", "directory with the web app (default $WEB_DIR)")
	return cmd
}

func runServe(ctx context.Context, g *globalOptions, addr, webDir string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = svc.close() }()

	authSvc := app.NewAuthService(app.AuthConfig{
		PasswordHash: g.cfg.OwnerPasswordHash,
		OwnerEmail:   g.cfg.OwnerEmail,
		SessionTTL:   g.cfg.SessionTTL,
	}, svc.sessions)
	if !authSvc.Enabled() {
		g.log.Warn("no OWNER_PASSWORD_HASH or OWNER_EMAIL set, the API is open to anyone who can reach it")
	}

	opts := []adapthttp.Option{adapthttp.WithLogger(g.log)}
	if g.cfg.SSOEnabled() {
		oidcCfg, err := adapthttp.NewOIDCConfig(ctx, g.cfg.OIDCIssuer, g.cfg.OIDCClientID, g.cfg.OIDCClientSecret, g.cfg.OIDCRedirectURL)
		if err != nil {
			return err
		}
		opts = append(opts, adapthttp.WithOIDC(oidcCfg))
	}

	h := adapthttp.New(svc.glucose, svc.weight, svc.profile, svc.stats, authSvc, webDir, opts...).Handler()
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go pruneSessions(ctx, authSvc, g.log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	g.log.Info("listening", zap.String("addr", addr), zap.String("webDir", webDir))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	g.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func pruneSessions(ctx context.Context, auth *app.AuthService, log *zap.Logger) {
	ticker := time.NewTicker(sessionPrunePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.PruneSessions(ctx); err != nil {
				log.Warn("prune sessions", zap.Error(err))
			}
		}
	}
}
