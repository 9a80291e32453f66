// Command ascertain validates JSON documents against declarative schema
// documents. It is a thin wrapper over the compiler's public entry points.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	ascertain "github.com/3axap4eHko/ascertain"
	"github.com/3axap4eHko/ascertain/schemadoc"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ascertain",
		Short:         "Compile declarative schemas and validate data against them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(compileCmd(), validateCmd())
	return cmd
}

// loadSchema reads a schema document, picking the codec by extension.
func loadSchema(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return schemadoc.FromJSON(data)
	}
	return schemadoc.FromYAML(data)
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <schema-file>",
		Short: "Check that a schema document compiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}
			if _, err := ascertain.Compile(schema); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	var schemaPath string
	var allErrors bool
	cmd := &cobra.Command{
		Use:   "validate --schema <schema-file> <data-file>...",
		Short: "Validate JSON documents against a schema document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			var opts []ascertain.CompileOption
			if allErrors {
				opts = append(opts, ascertain.WithAllErrors())
			}
			v, err := ascertain.Compile(schema, opts...)
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				var data any
				if err := json.Unmarshal(raw, &data); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if v.Validate(data) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
					continue
				}
				failed++
				for _, issue := range v.Issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", path, issue.Pointer(), issue.Message)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema document (YAML or JSON)")
	cmd.Flags().BoolVar(&allErrors, "all-errors", false, "report every issue instead of the first one")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
