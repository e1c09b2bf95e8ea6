// Package server initializes and runs the Projboard application server.
// It opens the database, runs migrations, selects the blob backend, wires
// the services, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/projboard/internal/filex"
	"github.com/dmitrijs2005/projboard/internal/logging"
	"github.com/dmitrijs2005/projboard/internal/server/blob"
	"github.com/dmitrijs2005/projboard/internal/server/config"
	"github.com/dmitrijs2005/projboard/internal/server/httpapi"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/projboard/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	ps := services.NewProjectService(db, rm, blobs)
	as := services.NewAttachmentService(db, rm, blobs, cfg)

	hs, err := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, us, ps, as, cfg.SecretKey, cfg.SessionValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: cfg, logger: logger, db: db, httpServer: hs}, nil
}

// newBlobStore picks the attachment backend: a local directory by default,
// an S3-compatible bucket when configured.
func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.BlobBackend {
	case "s3":
		return blob.NewS3Store(ctx, blob.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	case "fs":
		dir, err := filex.EnsureSubdDir(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return blob.NewFilesystemStore(dir)
	default:
		return nil, fmt.Errorf("unknown blob backend: %q", cfg.BlobBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
