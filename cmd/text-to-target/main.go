// Command text-to-target converts transcripts into CTC
// target archives.
package main

import (
	"io"
	"log"
	"os"

	"github.com/hechangqing/lab/targets"
	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
)

func main() {
	var outPath string
	cmd := &cobra.Command{
		Use:   "text-to-target <text> <phone-syms>",
		Short: "Transform text to a targets file for CTC training",
		Long: "Each line of <text> is an utterance key followed by tokens.\n" +
			"Each line of <phone-syms> is a token followed by its output class.",
		Example: "  text-to-target text phones.txt -o targets.txt",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], outPath)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "-", "output archive path (- for stdout)")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(textPath, symsPath, outPath string) error {
	symsFile, err := os.Open(symsPath)
	if err != nil {
		return err
	}
	defer symsFile.Close()
	syms, err := targets.ReadSymbolTable(symsFile)
	if err != nil {
		return essentials.AddCtx(symsPath, err)
	}

	textFile, err := os.Open(textPath)
	if err != nil {
		return err
	}
	defer textFile.Close()

	if outPath == "-" {
		return convert(textFile, syms, os.Stdout, textPath)
	}
	f, err := createOutput(outPath)
	if err != nil {
		return err
	}
	if err := convert(textFile, syms, f, textPath); err != nil {
		f.Close()
		return err
	}
	return essentials.AddCtx(outPath, f.Close())
}

var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func convert(r io.Reader, syms targets.SymbolTable, w io.Writer, name string) error {
	n, err := targets.Convert(r, syms, w)
	if err != nil {
		return essentials.AddCtx(name, err)
	}
	log.Printf("Converted %d utterances.", n)
	return nil
}
