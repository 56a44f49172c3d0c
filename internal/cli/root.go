package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/catalogsync/internal/config"
	"github.com/mithrel/catalogsync/internal/present"
	"github.com/mithrel/catalogsync/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// standalone marks commands that run without a catalog.
const standalone = "standalone"

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "catalogsync",
		Short:         "Render service catalog entries into Markdown and HTML pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isStandalone(cmd) {
				return nil
			}
			app, err := buildApp(cmd, cfgPath)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml|yaml|json)")
	cmd.PersistentFlags().String("catalog", "", "catalog XML path (overrides catalog.path)")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newInjectCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCSSCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

// buildApp loads config and wires the app. It is also used by shell
// completion, which runs without the persistent pre-run hook.
func buildApp(cmd *cobra.Command, cfgPath string) (*wire.App, error) {
	v := viper.New()
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	}
	if err := config.Load(cmd.Context(), v); err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("catalog"); f != nil && f.Changed {
		v.Set("catalog.path", f.Value.String())
	}
	return wire.BuildApp(cmd.Context(), v, cmd.ErrOrStderr())
}

func isStandalone(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		return true
	}
	if cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == cobra.ShellCompNoDescRequestCmd {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[standalone]; ok {
			return true
		}
	}
	return false
}

func getApp(cmd *cobra.Command) (*wire.App, error) {
	app, ok := cmd.Context().Value(appKey).(*wire.App)
	if !ok {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}

// outputMode resolves --output, falling back to output.mode from config.
func outputMode(cmd *cobra.Command, app *wire.App) (present.Mode, error) {
	s, _ := cmd.Flags().GetString("output")
	if s == "" {
		s = app.Cfg.GetString("output.mode")
	}
	m, ok := present.ParseMode(s)
	if !ok {
		return m, fmt.Errorf("unknown output mode %q", s)
	}
	return m, nil
}
