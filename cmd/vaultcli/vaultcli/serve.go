package vaultcli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/stores/vault/selection"
	"github.com/bsv-blockchain/utxolock/ulogger"
	"github.com/bsv-blockchain/utxolock/util/health"
	"github.com/felixge/fgprof"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

// NewHTTPServer routes the readiness and liveness probes, the prometheus registry and, when
// profile is set, the fgprof handler.
func NewHTTPServer(logger ulogger.Logger, checks []health.Check, profile bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	healthHandler := func(liveness bool) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger.Debugf("[vaultcli_http] health check, liveness %t", liveness)

			status, details, err := health.CheckAll(c.Request().Context(), liveness, checks)
			if err != nil {
				return c.String(http.StatusInternalServerError, err.Error())
			}

			return c.JSONBlob(status, []byte(details))
		}
	}

	e.GET("/health", healthHandler(false))
	e.GET("/health/readiness", healthHandler(false))
	e.GET("/health/liveness", healthHandler(true))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if profile {
		e.GET("/debug/fgprof", echo.WrapHandler(fgprof.Handler()))
	}

	return e
}

func serve(c *cli.Context) error {
	store, tSettings, logger, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	selector := selection.New(logger, tSettings, store, nil)

	addr := c.String("listen")
	if addr == "" {
		addr = tSettings.Vault.HTTPListenAddress
	}

	e := NewHTTPServer(logger, healthChecks(store, selector), c.Bool("profile"))

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)

	go func() {
		logger.Infof("[vaultcli_http] listening on %s", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}

		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return errors.NewServiceError("http server on %s failed", addr, err)
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Infof("[vaultcli_http] shutting down")

	return e.Shutdown(shutdownCtx)
}
