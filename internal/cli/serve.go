package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfassina/labtracker/internal/app"
	"github.com/pfassina/labtracker/internal/logging"
	"github.com/pfassina/labtracker/internal/ssh"
)

func addServe(topLevel *cobra.Command, o *options) {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the TUI over SSH.",
		Long: `Serve the interactive grid over SSH. Every session edits the same
inventory and sees the others' changes live; selections, toasts and undo
stay per session.`,
		Example: `
labtracker serve
labtracker serve --listen :2323 --backend json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := o.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			e, err := openEnv(cfg, logger, cfg.Watch)
			if err != nil {
				return err
			}
			defer e.Close()

			srv, err := ssh.New(cfg, app.Deps{
				Inventory: e.inv,
				Layout:    cfg.Layout,
				Logger:    logger,
				Searcher:  e.searcher(),
				Backend:   string(cfg.Backend),
			})
			if err != nil {
				return err
			}
			e.start()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :2222)")

	topLevel.AddCommand(cmd)
}
