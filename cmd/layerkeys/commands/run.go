package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/app"
)

func runCmd(g *globals) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive terminal session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal owns stdout and stderr while the session runs.
			logger := g.logger
			if g.logFile == "" {
				logger = zap.NewNop()
			}

			doc, err := app.OpenDocument(g.cfg.Document, logger.Named("document"))
			if err != nil {
				return err
			}
			a, err := app.New(doc, g.cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			session := app.NewSession(a, screen, app.SessionOptions{})

			if g.cfg.Keymap.Watch {
				if err := a.WatchKeymap(func(error) { session.Redraw() }); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr := g.cfg.Metrics.Addr; addr != "" {
				go func() {
					if err := a.ServeMetrics(ctx, addr); err != nil {
						logger.Error("metrics server stopped", zap.Error(err))
					}
				}()
			}

			if err := session.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}

			if save && g.cfg.Document.File != "" {
				return doc.SaveFile(g.cfg.Document.File)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the document back to document.file on exit")
	return cmd
}
