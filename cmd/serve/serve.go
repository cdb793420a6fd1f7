// Package serve runs the HTTP API
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mcoudert/budget-engine/cmd/root"
	"mcoudert/budget-engine/internal/api"
	"mcoudert/budget-engine/internal/service"
)

var (
	port     int
	amexFile string
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transaction API over HTTP",
	RunE:  serveFunc,
}

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from configuration)")
	Cmd.Flags().StringVar(&amexFile, "amex-file", "", "Statement CSV export served by /full_load (optional)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	fullLoad := func(ctx context.Context) []service.SourceResult {
		return app.Service.FullLoad(ctx, root.Connectors(amexFile))
	}
	server := api.NewServer(app.Service, fullLoad)

	listenPort := port
	if listenPort == 0 {
		listenPort = root.Cfg.Server.Port
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(listenPort)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		root.Log.WithField("signal", sig.String()).Info("Shutting down")
		return server.Shutdown(cmd.Context())
	}
}
