package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"descriptor-translator/internal/config"
	"descriptor-translator/internal/logging"
)

// app is the state shared by the subcommands once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	debug      bool

	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "descriptor-translator",
		Short:         "Translate NFV descriptors between YANG and TOSCA",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the configuration file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newTranslateCmd(a),
		newCompareCmd(a),
		newTypesCmd(a),
	)

	return root
}

func (a *app) setup() error {
	cfg := config.Default()

	if a.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(a.configPath); err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
	}

	log, err := logging.New(cfg.Log, a.debug, a.stderr)
	if err != nil {
		return errors.Wrap(err, "failed to set up logging")
	}

	a.cfg = cfg
	a.log = log

	log.WithField("config", a.configPath).Debug("configuration loaded")

	return nil
}
