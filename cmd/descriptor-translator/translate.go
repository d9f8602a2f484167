package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"descriptor-translator/internal/assemble"
	"descriptor-translator/internal/diagnostic"
	"descriptor-translator/internal/metrics"
	"descriptor-translator/internal/tosca"
	"descriptor-translator/internal/translator"
	"descriptor-translator/internal/tree"
)

type translateOptions struct {
	input           string
	to              string
	output          string
	format          string
	manifest        string
	metricsTextfile string
}

func newTranslateCmd(a *app) *cobra.Command {
	var opts translateOptions

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a descriptor to YANG or TOSCA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.translate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Descriptor to translate")
	cmd.Flags().StringVar(&opts.to, "to", "", "Target format: yang or tosca")
	cmd.Flags().StringVar(&opts.output, "output", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output serialization: yaml or json (default from config)")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "Write the supporting-files manifest to this file")
	cmd.Flags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write translation metrics in Prometheus text format to this file")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (a *app) translate(opts translateOptions) error {
	format := opts.format
	if format == "" {
		format = a.cfg.Output.Format
	}

	if format != string(assemble.FormatYAML) && format != string(assemble.FormatJSON) {
		return errors.Errorf("unknown output format %q", format)
	}

	reg := prometheus.NewRegistry()

	m, err := metrics.New(reg)
	if err != nil {
		return errors.Wrap(err, "failed to register metrics")
	}

	tcfg := translator.DefaultConfig()
	tcfg.DefinitionsVersion = a.cfg.Translation.DefinitionsVersion
	tcfg.TypeOverrides = a.cfg.Translation.TypeOverrides
	tcfg.Log = a.log
	tcfg.Metrics = m

	tr, err := translator.New(tcfg)
	if err != nil {
		return err
	}

	res, runErr := a.runTranslation(tr, opts)

	if opts.metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsTextfile, reg); err != nil {
			a.log.WithError(err).Warn("failed to write metrics textfile")
		}
	}

	if runErr != nil {
		a.log.WithField("kind", diagnostic.KindOf(runErr).String()).Debug("translation failed")
		return runErr
	}

	for _, d := range res.Diagnostics.All() {
		entry := a.log.WithFields(logrus.Fields{"code": d.Code, "entity": d.Entity})
		if d.Severity == diagnostic.SeverityInfo {
			entry.Info(d.Message)
		} else {
			entry.Warn(d.Message)
		}
	}

	data, err := translator.Encode(res, assemble.Format(format))
	if err != nil {
		return errors.Wrap(err, "failed to encode result")
	}

	if err := a.write(opts.output, data); err != nil {
		return err
	}

	if opts.manifest != "" {
		mf, err := translator.EncodeManifest(res, assemble.Format(format))
		if err != nil {
			return errors.Wrap(err, "failed to encode manifest")
		}

		if err := a.write(opts.manifest, mf); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) runTranslation(tr *translator.Translator, opts translateOptions) (*translator.Result, error) {
	switch opts.to {
	case string(translator.ToYANGDirection):
		st, err := tosca.LoadFile(opts.input)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load service template %s", opts.input)
		}

		return tr.ToYANG(st)
	case string(translator.ToTOSCADirection):
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", opts.input)
		}

		// JSON documents decode through the YAML decoder, which keeps their key order.
		desc, err := tree.DecodeMap(data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode descriptor %s", opts.input)
		}

		return tr.ToTOSCA(desc)
	default:
		return nil, errors.Errorf("unknown target format %q (want yang or tosca)", opts.to)
	}
}

func (a *app) write(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	a.log.WithField("path", path).Debug("written")

	return nil
}
