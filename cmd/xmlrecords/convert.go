package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/dgallion1/xmlrecords/internal/convert"
	"github.com/dgallion1/xmlrecords/internal/tabular"
)

var (
	rowsPath       string
	subrowTag      string
	metaPaths      []string
	rowsPrefix     bool
	metaPrefix     bool
	separator      string
	rowsDepth      int
	metaDepth      int
	keepWhitespace bool
	keepNamespace  bool
	namespace      string
	expectKeys     []string
	format         string
	output         string
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <file.xml|->",
	Short: "flatten one XML document and print its records",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	spec := convert.Spec{
		RowsPath:       splitPath(rowsPath),
		SubrowTag:      subrowTag,
		RowsPrefix:     rowsPrefix,
		MetaPrefix:     metaPrefix,
		Separator:      separator,
		KeepWhitespace: keepWhitespace,
		Namespace:      namespace,
		KeepNamespace:  keepNamespace,
		ExpectedKeys:   expectKeys,
	}
	for _, m := range metaPaths {
		spec.MetaPaths = append(spec.MetaPaths, splitPath(m))
	}
	if rowsDepth >= 0 {
		spec.RowsMaxDepth = &rowsDepth
	}
	if metaDepth >= 0 {
		spec.MetaMaxDepth = &metaDepth
	}

	res, err := convert.Convert(data, spec, convert.Limits{})
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "table":
		return tabular.WriteTable(out, res.Records)
	case "csv":
		return tabular.WriteCSV(out, res.Records)
	case "json":
		return tabular.WriteJSON(out, res.Records)
	case "jsonl":
		return tabular.WriteJSONLines(out, res.Records)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// readInput loads the document from a file, or stdin when path is "-".
// Gzip input is detected by extension or magic bytes and decompressed.
func readInput(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if strings.HasSuffix(path, ".gz") || (len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid gzip input: %w", err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("decompress input: %w", err)
		}
	}
	return data, nil
}

func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
