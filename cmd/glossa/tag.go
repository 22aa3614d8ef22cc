package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/glossa/internal/config"
	"github.com/hejijunhao/glossa/internal/engine"
	"github.com/hejijunhao/glossa/internal/logging"
	"github.com/hejijunhao/glossa/internal/output"
	"github.com/hejijunhao/glossa/internal/output/async"
	"github.com/hejijunhao/glossa/internal/output/file"
	"github.com/hejijunhao/glossa/internal/output/multi"
	"github.com/hejijunhao/glossa/internal/output/stdout"
	"github.com/hejijunhao/glossa/internal/output/text"
	"github.com/hejijunhao/glossa/internal/output/webhook"
	"github.com/hejijunhao/glossa/internal/pipeline"
	"github.com/hejijunhao/glossa/internal/source"
	"github.com/hejijunhao/glossa/internal/source/lines"
	"github.com/hejijunhao/glossa/internal/tagger"

	// Register tagger providers.
	_ "github.com/hejijunhao/glossa/internal/tagger/onnx"
	_ "github.com/hejijunhao/glossa/internal/tagger/remote"
)

type tagFlags struct {
	input         string
	format        string
	output        string
	webhook       string
	verbosity     string
	pretty        bool
	provider      string
	modelDir      string
	endpoint      string
	batchSize     int
	flushInterval time.Duration
}

func newTagCmd(a *app) *cobra.Command {
	f := &tagFlags{}

	cmd := &cobra.Command{
		Use:   "tag [TEXT...]",
		Short: "Tag text and explain every token",
		Long: `Tag each TEXT argument, or each non-blank line of --input, or of stdin
when neither is given. Every token is printed with its universal POS, its
fine-grained tag and their descriptions.`,
		Example: `  glossa tag "The cat sat on the mat."
  glossa tag --format text < sentences.txt
  glossa tag --input corpus.txt --output tagged.jsonl --verbosity minimal
  GLOSSA_TAGGER=remote GLOSSA_ENDPOINT=http://localhost:8080 glossa tag "Hello"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTag(cmd, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "read one text per line from this file")
	fl.StringVarP(&f.format, "format", "f", "", "json or text (default from GLOSSA_OUTPUT, json)")
	fl.StringVarP(&f.output, "output", "o", "", "append NDJSON to this file instead of stdout")
	fl.StringVar(&f.webhook, "webhook", "", "also POST annotation batches to this URL")
	fl.StringVar(&f.verbosity, "verbosity", "", "minimal, standard or full")
	fl.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
	fl.StringVar(&f.provider, "tagger", "", "tagger provider: onnx or remote")
	fl.StringVar(&f.modelDir, "model-dir", "", "directory with model.onnx, vocab.txt, config.json")
	fl.StringVar(&f.endpoint, "endpoint", "", "remote tagging service URL")
	fl.IntVar(&f.batchSize, "batch-size", 0, "documents tagged per model call")
	fl.DurationVar(&f.flushInterval, "flush-interval", 0, "max wait for a partial batch")
	return cmd
}

// apply overlays explicitly set flags onto cfg.
func (f *tagFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	set := func(name string, fn func()) {
		if fl.Changed(name) {
			fn()
		}
	}
	set("format", func() { cfg.Output.Format = f.format })
	set("output", func() { cfg.Output.File = f.output })
	set("webhook", func() { cfg.Output.WebhookURL = f.webhook })
	set("verbosity", func() { cfg.Output.Verbosity = f.verbosity })
	set("pretty", func() { cfg.Output.Pretty = f.pretty })
	set("tagger", func() { cfg.Tagger.Provider = f.provider })
	set("model-dir", func() { cfg.Tagger.ModelDir = f.modelDir })
	set("endpoint", func() { cfg.Tagger.Endpoint = f.endpoint })
	set("batch-size", func() { cfg.Pipeline.BatchSize = f.batchSize })
	set("flush-interval", func() { cfg.Pipeline.FlushInterval = f.flushInterval })
}

func (a *app) runTag(cmd *cobra.Command, f *tagFlags, args []string) error {
	cfg := a.cfg
	f.apply(cmd, &cfg)

	if len(args) > 0 && f.input != "" {
		return errors.New("pass texts as arguments or --input, not both")
	}
	if cfg.Output.Format == "text" && cfg.Output.File != "" {
		return errors.New("--format text writes to stdout only; drop --output")
	}
	if err := cfg.ValidateTagging(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}
	logging.Init(cfg.Output.File == "" && cfg.Output.Format == "json", logging.ParseLevel(cfg.LogLevel))

	tags, err := a.tagset()
	if err != nil {
		return err
	}

	ctor, err := tagger.Get(cfg.Tagger.Provider)
	if err != nil {
		return err
	}
	tg, err := ctor(tagger.Config{
		ModelDir: cfg.Tagger.ModelDir,
		Endpoint: cfg.Tagger.Endpoint,
		APIKey:   cfg.Tagger.APIKey,
		Tagset:   tags,
	})
	if err != nil {
		return err
	}
	defer tg.Close()

	src, err := openSource(cmd.InOrStdin(), f.input, args)
	if err != nil {
		return err
	}
	out, err := buildOutput(cmd.OutOrStdout(), cfg.Output)
	if err != nil {
		return err
	}

	p := pipeline.New(src, engine.New(tg, tags), out,
		pipeline.WithBatchSize(cfg.Pipeline.BatchSize),
		pipeline.WithFlushInterval(cfg.Pipeline.FlushInterval),
	)
	slog.Debug("tagging", "tagger", cfg.Tagger.Provider, "format", cfg.Output.Format, "batch_size", cfg.Pipeline.BatchSize)

	runErr := p.Run(cmd.Context())
	closeErr := p.Close()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	return errors.Join(runErr, closeErr)
}

func openSource(stdin io.Reader, input string, args []string) (source.Source, error) {
	switch {
	case len(args) > 0:
		return lines.FromTexts("args", args...), nil
	case input != "":
		ctor, err := source.Get("file")
		if err != nil {
			return nil, err
		}
		return ctor(source.Config{Path: input})
	default:
		return lines.New(stdin, "stdin"), nil
	}
}

func buildOutput(w io.Writer, cfg config.OutputConfig) (output.Output, error) {
	verbosity := output.ParseVerbosity(cfg.Verbosity)

	var primary output.Output
	switch {
	case cfg.File != "":
		fo, err := file.New(cfg.File, verbosity)
		if err != nil {
			return nil, err
		}
		primary = fo
	case cfg.Format == "text":
		primary = text.New(w, verbosity)
	default:
		primary = stdout.New(w, verbosity, cfg.Pretty)
	}

	if cfg.WebhookURL == "" {
		return primary, nil
	}
	wh := async.New(
		webhook.New(cfg.WebhookURL, webhook.WithVerbosity(verbosity)),
		async.WithDropOnFull(),
	)
	return multi.New(primary, wh), nil
}
