package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-s2/s2tilejson"
)

type app struct {
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:           "s2tilejson",
		Short:         "Inspect and normalize S2/WM tile metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(a.newNormalizeCmd(), a.newDetectCmd(), a.newSchemaCmd(), a.newShapeCmd())
	return root
}

func (a *app) initLogger() error {
	if !a.verbose {
		a.log = zap.NewNop()
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		a.log = zap.NewNop()
		return nil
	}
	a.log = l
	return nil
}

func (a *app) newNormalizeCmd() *cobra.Command {
	var indent, strict bool
	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Read canonical or legacy metadata (JSON or YAML) and print canonical JSON",
		Example: `  s2tilejson normalize metadata.json --indent
  s2tilejson normalize tiles.yaml --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			opt := s2tilejson.NormalizeOpt{Strictness: s2tilejson.Strictness{OnDuplicateKey: s2tilejson.Warn}}
			if strict {
				opt = s2tilejson.StrictNormalizeOpt()
			}
			var (
				m      s2tilejson.Metadata
				format s2tilejson.Format
			)
			if isYAML(args[0]) {
				m, format, err = s2tilejson.NormalizeYAML(data, opt)
			} else {
				warnings, _ := s2tilejson.StructureWarnings(data, opt)
				for _, w := range warnings {
					a.log.Warn("structure", zap.String("code", w.Code), zap.String("path", w.Path), zap.String("hint", w.Hint))
				}
				m, format, err = s2tilejson.Normalize(data, opt)
			}
			if err != nil {
				return err
			}
			a.log.Info("normalized", zap.String("input", args[0]), zap.Stringer("format", format),
				zap.Int("layers", len(m.Layers)), zap.Uint64("tiles", m.TileStats.Total()))
			return writeJSON(cmd.OutOrStdout(), m, indent)
		},
	}
	cmd.Flags().BoolVar(&indent, "indent", false, "indent the output")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject duplicate keys and deeply nested documents")
	return cmd
}

func (a *app) newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Print which dialect a JSON metadata document is read as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			f, err := s2tilejson.Detect(data)
			if err != nil {
				return err
			}
			a.log.Debug("detected", zap.String("input", args[0]), zap.Stringer("format", f))
			_, err = io.WriteString(cmd.OutOrStdout(), f.String()+"\n")
			return err
		},
	}
}

func (a *app) newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print JSON Schemas",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "shape",
		Short: "Print the schema every shape document satisfies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), s2tilejson.ShapeDocumentSchema(), true)
		},
	})
	return cmd
}

func (a *app) newShapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shape <file>",
		Short: "Validate a shape document and print its feature properties schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var s s2tilejson.Shape
			if isYAML(args[0]) {
				s, err = s2tilejson.ParseShapeYAML(data)
			} else {
				s, err = s2tilejson.ParseShapeJSON(data)
			}
			if err != nil {
				return err
			}
			a.log.Debug("shape parsed", zap.Strings("keys", s.Keys()))
			return writeJSON(cmd.OutOrStdout(), s.JSONSchema(), true)
		},
	}
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
