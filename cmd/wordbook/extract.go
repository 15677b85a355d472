package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LavishGent/wordbook/pkg/wordbook"
)

func newExtractCommand() *cobra.Command {
	var (
		output        string
		renderPDF     bool
		strict        bool
		keepStopWords bool
	)

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract vocabulary from a document into a markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if strict {
				cfg.Processing.StrictTokens = true
			}
			if keepStopWords {
				cfg.Processing.IncludeStopWords = true
			}

			client, err := wordbook.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.ProcessFile(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			fmt.Printf("Processed %s in %s\n", bold.Sprint(result.SourceFile), result.ProcessingTime.Round(time.Millisecond))
			fmt.Printf("  Words scanned:  %d\n", result.TotalWords)
			fmt.Printf("  Unique words:   %d\n", result.UniqueWords)
			fmt.Printf("  Definitions:    %d/%d (%.0f%%)\n",
				result.SuccessfulDefinitions, result.UniqueWords, result.DefinitionRate()*100)
			fmt.Printf("  Pronunciations: %d/%d (%.0f%%)\n",
				result.SuccessfulPronunciations, result.UniqueWords, result.PronunciationRate()*100)
			fmt.Printf("  Report:         %s\n", result.OutputFile)

			if renderPDF {
				pdfPath, err := client.RenderPDF(result.OutputFile)
				if err != nil {
					return err
				}
				fmt.Printf("  PDF:            %s\n", pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output markdown path (default: <input>_vocabulary.md next to the input)")
	cmd.Flags().BoolVar(&renderPDF, "pdf", false, "Also render the report to PDF")
	cmd.Flags().BoolVar(&strict, "strict", false, "Only extract words of two or more letters")
	cmd.Flags().BoolVar(&keepStopWords, "keep-stopwords", false, "Keep common stop words in the report")

	return cmd
}
