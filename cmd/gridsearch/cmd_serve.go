package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pdrpinto/gridsearch/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveAddr        string
	serveMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the step-by-step search as JSON over HTTP",
	Long: `Endpoints:
  POST /init?rows=&cols=&clusters=&steps=&density=&seed=&algo=   new random map and session
  GET  /next?id=                                               advance one expansion
  GET  /run?id=                                                all algorithms on the session map`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address; a random loopback port is used if it is taken")
	serveCmd.Flags().IntVar(&serveMaxSessions, "max-sessions", web.DefaultMaxSessions, "Live sessions kept before evicting the oldest")
}

func runServe(cmd *cobra.Command, args []string) error {
	ln, err := web.Listen(serveAddr)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(web.WithLogger(logger), web.WithMaxSessions(serveMaxSessions))
	return server.Serve(ctx, ln)
}
