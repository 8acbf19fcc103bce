package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitmi/k-utils/pkg/dotpath"
	"github.com/kitmi/k-utils/pkg/errors"
	"github.com/kitmi/k-utils/pkg/logging"
)

var getDefaultFlag string

var getCmd = &cobra.Command{
	Use:   "get FILE PATH",
	Short: "Read a value from a document by dot-path",
	Long: `Read the value at a dot-separated path from a JSON, YAML, or TOML
document. A value that is not present prints the --default value (empty by
default) and exits with status 0; absence is not an error.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		value := dotpath.Get(doc, args[1])
		if value == nil {
			if getDefaultFlag != "" {
				fmt.Fprintln(cmd.OutOrStdout(), getDefaultFlag)
			}
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderValue(value))
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set FILE PATH VALUE",
	Short: "Write a value into a document by dot-path",
	Long: `Assign a value at a dot-separated path in a JSON, YAML, or TOML
document, creating missing intermediate mappings, and write the document
back. VALUE is parsed as JSON when possible, otherwise taken as a string.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.set")
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		if err := dotpath.Set(doc, args[1], parseValue(args[2])); err != nil {
			return err
		}
		logger.Debug().Str("file", args[0]).Str("path", args[1]).Msg("Value set")
		return saveDocument(args[0], doc)
	},
}

var hasCmd = &cobra.Command{
	Use:   "has FILE PATH",
	Short: "Check whether a dot-path exists in a document",
	Long: `Exit with status 0 when the leaf key of the dot-separated path
exists in the document (even if its value is null), and status 1 when it
does not.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		if !dotpath.Has(doc, args[1]) {
			fmt.Fprintln(cmd.OutOrStdout(), "false")
			return errors.Newf(errors.ErrNotFound, "path %q not found in %s", args[1], args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), "true")
		return nil
	},
}

var pushFlatten bool

var pushCmd = &cobra.Command{
	Use:   "push FILE PATH VALUE",
	Short: "Append a value to a bucket in a document",
	Long: `Append a value to the bucket at a dot-separated path. An empty slot
becomes a one-element list, a scalar widens to a two-element list, and an
existing list is appended to. With --flatten, a JSON array VALUE
contributes its elements instead of nesting.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		bucket, err := dotpath.PushIntoBucket(doc, args[1], parseValue(args[2]), pushFlatten)
		if err != nil {
			return err
		}
		if err := saveDocument(args[0], doc); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderValue(bucket))
		return nil
	},
}

func init() {
	getCmd.Flags().StringVar(&getDefaultFlag, "default", "", "Value to print when the path is not found")
	pushCmd.Flags().BoolVar(&pushFlatten, "flatten", false, "Spread a JSON array value into individual elements")
}
