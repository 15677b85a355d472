package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>...",
		Short: "Look up definitions and pronunciations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			records := client.BatchLookup(cmd.Context(), args)

			words := make([]string, 0, len(records))
			for word := range records {
				words = append(words, word)
			}
			sort.Strings(words)

			bold := color.New(color.Bold)
			for _, word := range words {
				record := records[word]
				fmt.Println(bold.Sprint(record.Word))
				fmt.Printf("  Pronunciation: %s\n", fieldOrMark(record.Pronunciation, record.FoundPronunciation))
				fmt.Printf("  Definition:    %s\n", fieldOrMark(record.Definition, record.FoundDefinition))
			}
			return nil
		},
	}
}

func fieldOrMark(value string, found bool) string {
	if !found {
		return color.YellowString("not found")
	}
	return value
}
