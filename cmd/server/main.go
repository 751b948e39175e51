package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/pcg32-backend/internal/api"
	"github.com/xtding233/pcg32-backend/internal/config"
	"github.com/xtding233/pcg32-backend/internal/logger"
)

var (
	configDir = flag.String("config", "config", "directory holding default.yaml and profile files")
	profile   = flag.String("profile", "", "profile overlaid on default.yaml, e.g. staging")
	reload    = flag.Duration("reload", 5*time.Second, "config poll interval; 0 disables hot reload")
)

func main() {
	flag.Parse()

	loader := config.NewLoader(*configDir)
	cfg, err := loader.Load(*profile)
	if err != nil {
		logger.Fatal(err).Msg("load config")
	}
	if err := logger.Setup(cfg.LogFormat, cfg.LogLevel); err != nil {
		logger.Fatal(err).Msg("configure logger")
	}
	store := config.NewStore(cfg)
	engine := api.NewEngine(store)

	if *reload > 0 {
		w := config.NewWatcher(loader, *profile, *reload, func(c config.Config) {
			// listener addresses and log format only apply on restart
			store.Set(c)
			if err := logger.SetLevel(c.LogLevel); err != nil {
				logger.Error(err).Msg("apply log level")
			}
			logger.Info().Str("version", c.Version).Msg("config reloaded")
		}, func(err error) {
			logger.Error(err).Msg("config reload rejected")
		})
		w.Start()
		defer w.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var httpSrv *http.Server
	if cfg.HTTPAddr != "" {
		httpSrv = &http.Server{Addr: cfg.HTTPAddr, Handler: api.NewHTTPHandler(engine)}
		go func() {
			logger.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal(err).Msg("http server")
			}
		}()
	}

	var respLn net.Listener
	if cfg.RESPAddr != "" {
		respLn, err = net.Listen("tcp", cfg.RESPAddr)
		if err != nil {
			logger.Fatal(err).Str("addr", cfg.RESPAddr).Msg("resp listen")
		}
		go func() {
			logger.Info().Str("addr", cfg.RESPAddr).Msg("resp listening")
			if err := api.ServeRESP(respLn, engine); err != nil && !errors.Is(err, net.ErrClosed) {
				logger.Error(err).Msg("resp server")
			}
		}()
	}

	grpcSrv := api.NewGRPCServer(engine)
	if cfg.GRPCAddr != "" {
		ln, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Fatal(err).Str("addr", cfg.GRPCAddr).Msg("grpc listen")
		}
		go func() {
			logger.Info().Str("addr", cfg.GRPCAddr).Msg("grpc listening")
			if err := grpcSrv.Serve(ln); err != nil {
				logger.Error(err).Msg("grpc server")
			}
		}()
	}

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if httpSrv != nil {
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error(err).Msg("http shutdown")
		}
	}
	if respLn != nil {
		respLn.Close()
	}
	grpcSrv.GracefulStop()
}
