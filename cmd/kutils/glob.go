package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitmi/k-utils/pkg/glob"
)

var globDir string

var globCmd = &cobra.Command{
	Use:   "glob PATTERN",
	Short: "List files matching a glob pattern",
	Long: `List files under --dir (default: the current directory) matching a
glob pattern. Patterns support *, ?, character classes, {alternates}, and
** for any number of path segments.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := glob.Find(docFs, globDir, args[0])
		if err != nil {
			return err
		}
		for _, m := range matches {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

func init() {
	globCmd.Flags().StringVar(&globDir, "dir", ".", "Directory to search")
}
