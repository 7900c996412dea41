package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xmlrecords [command] (flags)",
	Short: "flatten XML documents into tabular records",
	Long:  ``,
}

func main() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVar(&rowsPath, "rows", "", "path to the row elements, segments separated by / (required)")
	f.StringVar(&subrowTag, "subrow", "", "tag that expands each row into one record per occurrence")
	f.StringArrayVar(&metaPaths, "meta", nil, "path to a metadata element broadcast into every record (repeatable)")
	f.BoolVar(&rowsPrefix, "rows-prefix", false, "prefix row keys with the row element path")
	f.BoolVar(&metaPrefix, "meta-prefix", false, "prefix metadata keys with the metadata element path")
	f.StringVar(&separator, "sep", "_", "separator between path segments in keys")
	f.IntVar(&rowsDepth, "rows-depth", -1, "levels to descend below each row element (negative for unlimited)")
	f.IntVar(&metaDepth, "meta-depth", -1, "levels to descend below each metadata element (negative for unlimited)")
	f.BoolVar(&keepWhitespace, "keep-whitespace", false, "keep text values verbatim instead of trimming whitespace")
	f.BoolVar(&keepNamespace, "keep-namespace", false, "keep namespace URIs in record keys")
	f.StringVar(&namespace, "namespace", "*", "namespace URI qualifying path segments (* matches any)")
	f.StringArrayVar(&expectKeys, "expect", nil, "expected record key, in order (repeatable)")
	f.StringVarP(&format, "format", "f", "table", "output format: table, csv, json or jsonl")
	f.StringVarP(&output, "output", "o", "", "write output to a file instead of stdout")
	convertCmd.MarkFlagRequired("rows")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
