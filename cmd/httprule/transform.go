package main

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"httprule/internal/config"
	"httprule/internal/core"
	"httprule/internal/core/codec"
	"httprule/internal/core/codec/xmlcodec"
	"httprule/internal/pkg/errs"
	"httprule/internal/storage"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Apply rules to a request file",
	Long: `Read a request descriptor, apply the configured rules and write the
result. In stream mode "-" stands for stdin/stdout.`,
	RunE: runTransform,
}

func runTransform(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}

	scanner, err := cfg.Log.Scanner()
	if err != nil {
		return err
	}
	st := storage.New(nil)
	opts := core.Options{
		Name:    "cli",
		Format:  cfg.Transform.Format,
		Storage: st,
		Scanner: scanner,
		Logger:  log,
	}
	if codec.Format(cfg.Transform.Format) == xmlcodec.Format {
		xml := xmlcodec.New()
		opts.Codec = &xml
	}
	t, err := core.New(opts)
	if err != nil {
		return err
	}
	if err := t.AddRules(rules); err != nil {
		return err
	}

	in, _ := cmd.Flags().GetString("input")
	out, _ := cmd.Flags().GetString("output")
	log.Debug("Transform command",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("rules", len(rules)),
	)

	switch cfg.Transform.Mode {
	case core.ModeAsync:
		return <-t.TransformAsync(in, out, "")
	case core.ModeStream:
		return streamFiles(t, st, in, out)
	default:
		return t.TransformSync(in, out, "")
	}
}

// streamFiles streams in to out. A file output is written only once the
// transform succeeded, so a failed run leaves it untouched.
func streamFiles(t *core.Transformer, st *storage.Storage, in, out string) error {
	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := st.Fs().Open(in)
		if err != nil {
			return errs.WrapIO(err, "failed to open input: %s", in)
		}
		defer f.Close()
		r = f
	}

	if out == "-" {
		return t.TransformStream(r, os.Stdout, "")
	}
	var buf bytes.Buffer
	if err := t.TransformStream(r, &buf, ""); err != nil {
		return err
	}
	return st.WriteAll(out, buf.Bytes())
}

func SetupTransformCmd() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringP("input", "i", "", "input request file")
	transformCmd.Flags().StringP("output", "o", "", "output request file")
	transformCmd.Flags().StringP("format", "f", "json", "request format (json, yaml, xml)")
	transformCmd.Flags().StringP("mode", "m", "sync", "execution mode (sync, async, stream)")
	_ = transformCmd.MarkFlagRequired("input")
	_ = transformCmd.MarkFlagRequired("output")
}
