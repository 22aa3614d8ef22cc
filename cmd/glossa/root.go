package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/glossa/internal/config"
	"github.com/hejijunhao/glossa/internal/logging"
	"github.com/hejijunhao/glossa/internal/tagset"
)

// app carries state shared by subcommands once the root pre-run has
// resolved configuration.
type app struct {
	cfg config.Config

	envFile  string
	tagsFile string
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "glossa",
		Short: "Part-of-speech tagging and tag explanation",
		Long: `glossa tags text with part-of-speech labels using a pre-trained model
and explains tag codes such as NN, VBD or DT in plain English.

Configuration comes from GLOSSA_* environment variables, an optional .env
file, and the flags below (flags win).`,
		Version:           config.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "load environment from this file (default .env if present)")
	pf.StringVar(&a.tagsFile, "tagset", "", "YAML tag table replacing the built-in one")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newExplainCmd(a),
		newTagsCmd(a),
		newTagCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	a.cfg = config.Load()

	flags := cmd.Flags()
	if flags.Changed("tagset") {
		a.cfg.TagsetFile = a.tagsFile
	}
	if flags.Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	logging.Init(true, logging.ParseLevel(a.cfg.LogLevel))
	return nil
}

// tagset returns the configured tag table.
func (a *app) tagset() (*tagset.Tagset, error) {
	if a.cfg.TagsetFile == "" {
		return tagset.Default(), nil
	}
	return tagset.Load(a.cfg.TagsetFile)
}
