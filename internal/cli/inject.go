package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/catalogsync/internal/inject"
	"github.com/mithrel/catalogsync/internal/present"
	"github.com/mithrel/catalogsync/internal/wire"
)

// processor returns the app's processor, or a dry-run copy when --dry-run is set.
func processor(cmd *cobra.Command, app *wire.App) *inject.Processor {
	dry, _ := cmd.Flags().GetBool("dry-run")
	if !dry {
		return app.Processor
	}
	return inject.NewProcessor(app.Injector,
		inject.WithExtensions(app.Cfg.GetStringSlice("inject.extensions")),
		inject.WithDryRun(true),
		inject.WithProcessorLogger(app.Log.Named("sync")),
	)
}

func newInjectCmd() *cobra.Command {
	var toStdout bool
	cmd := &cobra.Command{
		Use:   "inject <file>",
		Short: "Rewrite the marked blocks of one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			path := args[0]

			if toStdout {
				data, err := os.ReadFile(path)
				if err != nil {
					return &inject.FileIOError{Op: "read", Path: path, Err: err}
				}
				out, rep := app.Injector.Inject(string(data))
				app.Log.Debug("injected", zap.String("path", path), zap.Int("blocks", rep.Blocks))
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}

			res := processor(cmd, app).ProcessFile(path)
			if res.Err != nil {
				return res.Err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d blocks)\n", res.Status, path, res.Report.Blocks)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "report the outcome without writing the file")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the injected document instead of writing it")
	return cmd
}

func newSyncCmd() *cobra.Command {
	var indent bool
	cmd := &cobra.Command{
		Use:   "sync <dir>",
		Short: "Rewrite the marked blocks of every document under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			mode, err := outputMode(cmd, app)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if mode == present.ModePlain && isTerminal(out) {
				mode = present.ModePretty
			}

			sum, err := processor(cmd, app).ProcessDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			failed := sum.Count(inject.StatusFailed)
			if failed > 0 {
				app.Log.Warn("sync finished with failures", zap.Int("failed", failed))
			}
			return present.RenderSummary(out, sum.API(), present.Options{Mode: mode, JSONIndent: indent, Headers: true})
		},
	}
	cmd.Flags().Bool("dry-run", false, "report changes without writing files")
	cmd.Flags().StringP("output", "o", "", "output: plain|pretty|json|ndjson|yaml")
	cmd.Flags().BoolVar(&indent, "indent", true, "indent JSON output")
	return cmd
}
