package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for eqwho.

To load completions:

Bash:
  $ source <(eqwho completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ eqwho completion bash > /etc/bash_completion.d/eqwho
  # macOS:
  $ eqwho completion bash > $(brew --prefix)/etc/bash_completion.d/eqwho

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ eqwho completion zsh > "${fpath[1]}/_eqwho"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ eqwho completion fish | source

  # To load completions for each session, execute once:
  $ eqwho completion fish > ~/.config/fish/completions/eqwho.fish

PowerShell:
  PS> eqwho completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> eqwho completion powershell > eqwho.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Usage()
		}

		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeFormats returns a completion function for the --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	current := strings.ToLower(strings.TrimSpace(toComplete))

	var candidates []string
	for _, name := range FormatNames() {
		if strings.HasPrefix(name, current) {
			candidates = append(candidates, name)
		}
	}

	return candidates, cobra.ShellCompDirectiveNoFileComp
}

// registerFormatCompletion registers completion for a format flag.
func registerFormatCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeFormats)
}
