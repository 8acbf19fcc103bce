package main

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kitmi/k-utils/pkg/logging"
	"github.com/kitmi/k-utils/pkg/seq"
	"github.com/kitmi/k-utils/pkg/shellexec"
)

var runUntilAny bool

var runCmd = &cobra.Command{
	Use:   "run COMMAND...",
	Short: "Run shell commands strictly one after another",
	Long: `Run each COMMAND through the system shell, one at a time, in the
order given. The first failing command aborts the run and nothing after it
executes.

With --until-any the run instead stops at the first command that exits
successfully, reporting its position; it fails only when every command
fails to match (non-zero exits are not errors in this mode).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.run")
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		steps := make([]seq.Step, len(args))
		for i, commandLine := range args {
			line := commandLine
			index := i
			steps[i] = func(ctx context.Context, prev any) (any, error) {
				if stdoutIsTerminal() {
					pterm.DefaultSection.Printf("[%d] %s", index+1, line)
				}
				result, err := shellexec.RunLive(ctx, shellexec.Options{},
					cmd.OutOrStdout(), cmd.ErrOrStderr(), "sh", "-c", line)
				if runUntilAny {
					// Exit status is the predicate, not a failure
					return err == nil, nil
				}
				if err != nil {
					return nil, err
				}
				return result.ExitCode, nil
			}
		}

		if runUntilAny {
			match, err := seq.Until(ctx, steps, nil)
			if err != nil {
				return err
			}
			if !match.Found {
				return fmt.Errorf("no command succeeded")
			}
			logger.Info().Int("index", match.Index).Msg("Command matched")
			fmt.Fprintf(cmd.OutOrStdout(), "matched command %d\n", match.Index+1)
			return nil
		}

		results, err := seq.Run(ctx, steps)
		if err != nil {
			return err
		}
		logger.Info().Int("commands", len(results)).Msg("All commands completed")
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runUntilAny, "until-any", false,
		"Stop at the first command that exits successfully")
}
