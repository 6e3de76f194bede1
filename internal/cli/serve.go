package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/robofi/sdk-go/core/catalog"
	"github.com/robofi/sdk-go/core/config"
	"github.com/robofi/sdk-go/core/httpapi"
	"github.com/robofi/sdk-go/core/logging"
	"github.com/robofi/sdk-go/core/marketclient"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only marketplace API",
		Long: `Serve the marketplace API over HTTP. When a catalog file is configured
and catalog.watch is true, edits to the file are picked up without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.http_addr")

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, addr string) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return errors.WithStack(err)
	}
	if addr != "" {
		cfg.Server.HTTPAddr = addr
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer logger.Sync() //nolint:errcheck
	logging.SetLogger(logger)

	buckets, err := cfg.Buckets.BucketTables()
	if err != nil {
		return errors.WithStack(err)
	}
	terms, err := cfg.Presale.Terms(time.Now())
	if err != nil {
		return errors.WithStack(err)
	}

	store := catalog.NewStore(nil)
	var source catalog.Source = catalog.NewMockSource()
	var fileSource *catalog.FileSource
	if cfg.Catalog.Path != "" {
		fileSource = &catalog.FileSource{Path: cfg.Catalog.Path}
		source = fileSource
	}

	client, err := marketclient.NewClient(ctx,
		marketclient.WithSource(source),
		marketclient.WithStore(store),
		marketclient.WithLogger(logger),
		marketclient.WithBuckets(buckets),
		marketclient.WithPresaleTerms(terms),
	)
	if err != nil {
		return errors.WithStack(err)
	}

	gin.SetMode(cfg.Server.Mode)
	router := httpapi.NewRouter(client, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpapi.Serve(gctx, cfg.Server.HTTPAddr, router, cfg.Server.ShutdownTimeout, logger)
	})
	if fileSource != nil && cfg.Catalog.Watch {
		g.Go(func() error {
			return catalog.Watch(gctx, fileSource, store, nil)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("serve stopped", zap.Error(err))
		return errors.WithStack(err)
	}
	return nil
}
