package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/catalogsync/internal/util"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish]",
		Short:                 "Generate shell completion scripts",
		Args:                  cobra.ExactArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish"},
		DisableFlagsInUseLine: true,
		Annotations:           map[string]string{standalone: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return fmt.Errorf("unsupported shell %q", args[0])
			}
		},
	}
}

// completeIDs offers catalog ids, keys and category slugs for render and show.
// Completion runs without the pre-run hook, so the app is built here.
func completeIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfgPath, _ := cmd.Flags().GetString("config")
	app, err := buildApp(cmd, cfgPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return util.Suggest(toComplete, idCandidates(app), 20), cobra.ShellCompDirectiveNoFileComp
}
