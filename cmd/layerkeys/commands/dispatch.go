package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/app"
	"github.com/dshills/layerkeys/internal/input"
)

func dispatchCmd(g *globals) *cobra.Command {
	var (
		document string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "dispatch <action|chord>...",
		Short: "Apply actions or chords to a document snapshot",
		Long: `Apply each argument in order to a YAML document snapshot. An argument is
an action id such as "mask.toggle" or a chord such as "Ctrl+Shift+M".
The resulting snapshot is written to --output, back to the document file,
or to stdout when no document file is set. Processing stops at the first
failing argument and nothing is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docCfg := g.cfg.Document
			if document != "" {
				docCfg.File = document
			}
			doc, err := app.OpenDocument(docCfg, g.logger.Named("document"))
			if err != nil {
				return err
			}
			a, err := app.New(doc, g.cfg, g.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			for _, token := range args {
				res := a.Invoke(token, input.SourceCLI)
				if res.IsError() {
					return fmt.Errorf("%s: %w", token, res.Error)
				}
				// Bakes have nowhere to run outside the session.
				if n := doc.CompleteBakes(); n > 0 {
					g.logger.Info("bake finished", zap.Int("requests", n))
				}
				msg := res.Message
				if msg == "" {
					msg = res.Status.String()
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", token, msg)
			}

			dest := firstNonEmpty(output, docCfg.File)
			if dest == "" {
				return doc.Save(out)
			}
			return doc.SaveFile(dest)
		},
	}
	cmd.Flags().StringVarP(&document, "document", "d", "", "document snapshot to read (default document.file)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the snapshot here instead of the input file")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
