package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/architect-assistant/internal/parsing"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the recognized vocabulary, synonyms and defaults as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := json.MarshalIndent(parsing.Vocabulary(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal vocabulary: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(vocabularyCmd)
}
