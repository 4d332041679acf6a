package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vathanak/portfolio/internal/config"
	"github.com/vathanak/portfolio/internal/content"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateTimeout time.Duration

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Check a content document",
	Long: `Fetch and check a content document without starting the server. Both
languages must be present, ids must be unique, and the two languages must
list the same ids.

The source defaults to CONTENT_SOURCE and may be a file path or an http(s) URL.

Example:
  portfolio validate
  portfolio validate static/data.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 10*time.Second, "Fetch timeout for remote documents")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	location, err := validateSource(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	doc, err := content.Fetch(ctx, content.NewSource(location, validateTimeout))
	if err != nil {
		return err
	}
	err = doc.Validate()
	if err != nil {
		return errors.Wrapf(err, "%s is invalid", location)
	}

	out := cmd.OutOrStdout()
	for _, lang := range content.Languages() {
		p := doc[lang]
		fmt.Fprintf(out, "%s: %s, %d projects, %d leadership, %d certificates\n",
			lang, p.Name, len(p.Projects), len(p.Leadership), len(p.Certificates))
	}
	if getVerbose() {
		fmt.Fprintf(out, "source: %s\n", location)
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func validateSource(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.ContentSource, nil
}
