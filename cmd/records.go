package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spigell/talentscout/internal/candidate"
	"github.com/spigell/talentscout/internal/storage"
	"gopkg.in/yaml.v3"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List stored anonymized candidate records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")

		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("creating a logger: %w", err)
		}
		defer log.Sync()

		config, err := getConfig()
		if err != nil {
			return err
		}

		sink, err := newSink(config.Storage, log)
		if err != nil {
			return err
		}
		defer sink.Close()

		lister, ok := sink.(storage.Lister)
		if !ok {
			return fmt.Errorf("storage driver %q cannot list records", config.Storage.Driver)
		}

		records, err := lister.Records(cmd.Context())
		if err != nil {
			return err
		}

		return writeRecords(cmd, records, output)
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)

	recordsCmd.Flags().StringP("output", "o", "json", "output format: json or yaml")
}

func writeRecords(cmd *cobra.Command, records []candidate.Record, output string) error {
	out := cmd.OutOrStdout()

	switch output {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}
