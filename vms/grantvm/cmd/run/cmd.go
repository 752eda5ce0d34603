// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"

	"github.com/luxfi/grantvm/api/metrics"
	"github.com/luxfi/grantvm/api/server"
	"github.com/luxfi/grantvm/vms/grantvm"

	genesiscmd "github.com/luxfi/grantvm/vms/grantvm/cmd/genesis"
	luxvm "github.com/luxfi/grantvm"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Runs a standalone grants chain",
		RunE:  runFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	address := net.JoinHostPort(config.HTTPHost, strconv.FormatUint(uint64(config.HTTPPort), 10))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, log.Root(), listener, config)
}

// Run serves a grants chain on [listener] until [ctx] is cancelled. The
// chain's state lives in memory and is lost on return.
func Run(ctx context.Context, logger log.Logger, listener net.Listener, config *Config) error {
	genesisBytes, err := genesiscmd.Load(config.GenesisFile)
	if err != nil {
		_ = listener.Close()
		return err
	}

	gatherer := metrics.NewGatherer()
	vmRegistry, err := gatherer.NewRegistry(grantvm.Name)
	if err != nil {
		_ = listener.Close()
		return err
	}
	httpRegistry, err := gatherer.NewRegistry("http")
	if err != nil {
		_ = listener.Close()
		return err
	}

	factory := &grantvm.Factory{Config: *config.Chain}
	vmIntf, err := factory.New(logger)
	if err != nil {
		_ = listener.Close()
		return err
	}
	vm := vmIntf.(*grantvm.VM)
	if err := vm.Initialize(ctx, &luxvm.Config{
		DB:           memdb.New(),
		GenesisBytes: genesisBytes,
		Registerer:   vmRegistry,
	}); err != nil {
		_ = listener.Close()
		return err
	}

	apiServer, err := server.New(
		logger,
		listener,
		config.AllowedOrigins,
		config.AllowedHosts,
		config.ShutdownTimeout,
		httpRegistry,
		server.HTTPConfig{
			ReadHeaderTimeout: 30 * time.Second,
		},
	)
	if err != nil {
		_ = listener.Close()
		return errors.Join(err, vm.Shutdown(ctx))
	}
	err = errors.Join(
		apiServer.RegisterChain(ctx, grantvm.Name, vm),
		apiServer.AddRoute(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), "metrics", ""),
	)
	if err != nil {
		_ = listener.Close()
		return errors.Join(err, vm.Shutdown(ctx))
	}

	logger.Info("serving grants chain",
		log.Stringer("address", listener.Addr()),
		log.String("version", grantvm.Version.String()),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := apiServer.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		produceHeights(gCtx, logger, vm, config.Chain.BlockInterval)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		return errors.Join(
			apiServer.Shutdown(),
			vm.Shutdown(context.Background()),
		)
	})
	return g.Wait()
}

// produceHeights advances the chain by one height every [interval] until
// [ctx] is cancelled. With a zero interval the height only moves through the
// advanceHeight API method, which requires a devnet config.
func produceHeights(ctx context.Context, logger log.Logger, vm *grantvm.VM, interval time.Duration) {
	if interval == 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			height := vm.AdvanceHeight(1)
			logger.Debug("advanced height",
				log.Uint64("height", height),
			)
		}
	}
}
