package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourname/rangefs/internal/acceptor"
	"github.com/yourname/rangefs/internal/app/rangehttp"
	"github.com/yourname/rangefs/internal/config"
	"github.com/yourname/rangefs/internal/diag"
	"github.com/yourname/rangefs/internal/usecase/filesvc"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const readyTimeout = 5 * time.Second

// main поднимает файловый сервер на всех адресах из конфигурации и останавливает его по SIGINT/SIGTERM.
func main() {
	addr := flag.String("addr", "", "listen address, overrides config (host:port)")
	root := flag.String("root", "", "directory to serve, overrides config")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.FileServer == nil {
		cfg.FileServer = &config.FileServer{}
	}
	if *addr != "" {
		cfg.FileServer.Addr = *addr
	}
	if *root != "" {
		cfg.FileServer.Root = *root
	}
	if cfg.FileServer.Root == "" {
		cfg.FileServer.Root = "."
	}

	logger := diag.NewLogger(cfg.Log.Level, cfg.Log.Format)

	addrs, err := cfg.FileServerAddrs()
	if err != nil {
		log.Fatal(err)
	}

	handler := rangehttp.New(filesvc.New(filesvc.Deps{Root: cfg.FileServer.Root}), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := acceptor.NewSignals().Shutdown
	g, gctx := errgroup.WithContext(ctx)

	for _, a := range addrs {
		a := a
		sig := acceptor.Signals{Ready: acceptor.NewSignals().Ready, Shutdown: shutdown}
		acc := acceptor.New(handler, logger.WithField("listener", a))

		g.Go(func() error {
			return acc.Serve(a, sig)
		})
		g.Go(func() error {
			return waitReady(gctx, acc.Log, sig)
		})
	}

	// Сценарий graceful shutdown: сигнал или ошибка любого listener'а останавливает все.
	g.Go(func() error {
		<-gctx.Done()
		shutdown.Store(true)
		return nil
	})

	logger.WithFields(logrus.Fields{"addrs": addrs, "root": cfg.FileServer.Root}).Info("file server starting")
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("file server stopped")
		os.Exit(1)
	}
	logger.Info("file server stopped")
}

// waitReady ждёт, пока acceptor выставит Ready, и пишет об этом в лог.
func waitReady(ctx context.Context, logger *logrus.Entry, sig acceptor.Signals) error {
	deadline := time.Now().Add(readyTimeout)
	for !sig.Ready.Load() {
		if ctx.Err() != nil {
			return nil
		}
		if time.Now().After(deadline) {
			logger.WithField("waited", readyTimeout).Warn("listener is not ready")
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	logger.Info("listener is ready")
	return nil
}
