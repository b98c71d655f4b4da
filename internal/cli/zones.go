package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/tripload/internal/decode"
	"github.com/vvka-141/tripload/internal/schema"
	"github.com/vvka-141/tripload/pkg/tripload"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Load the taxi zone lookup table into PostgreSQL",
	Long: `Zones fetches the TLC taxi zone lookup table (CSV) and loads it into
the destination table, replacing any previous contents.

Because the zone list is a lookup table, it is normalized on the way
in: column names are lower-cased and trimmed, and text values are
trimmed of surrounding whitespace. Empty cells become SQL NULL.

Examples:
  # Load the zone lookup into the default table
  tripload zones

  # Load into a different table
  tripload zones --table taxi_zones_staging

  # Unattended reload in CI
  tripload zones --force`,
	Args: cobra.NoArgs,
	RunE: runZones,
}

var zonesFlags ingestFlagValues

var zonesDataset = datasetCommand{
	tableKey:     "zones",
	defaultURL:   tripload.DefaultZonesURL,
	defaultTable: tripload.DefaultZonesTable,
	normalize:    true,
	decoder:      func(logger tripload.Logger) tripload.Decoder { return decode.NewCSVDecoder(logger) },
	mapper:       schema.ZoneTypes,
}

func init() {
	rootCmd.AddCommand(zonesCmd)
	registerIngestFlags(zonesCmd, &zonesFlags, &zonesDataset)
}

func runZones(cmd *cobra.Command, _ []string) error {
	return runIngest(cmd, &zonesFlags, &zonesDataset)
}
