package main

import (
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/1F47E/geo-region-tree/pkg/models"
)

var locateJSON bool

var locateCmd = &cobra.Command{
	Use:   "locate LAT LON",
	Short: "Resolve one coordinate to its region path",
	Long: `Resolve one coordinate to its region path. LAT is compared with the first
coordinate of the document's points and LON with the second.
Exits with status 1 when no region contains the point.`,
	Example: `  regiontree locate -r regions.json 1.5 1.5
  regiontree locate -r regions.json -- -89.6 39.8`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().BoolVar(&locateJSON, "json", false, "Print the full match as JSON")
}

func runLocate(cmd *cobra.Command, args []string) error {
	loc, err := models.ParseLatLon(args[0], args[1])
	if err != nil {
		return err
	}

	tree, _, err := loadTree()
	if err != nil {
		return err
	}

	m := tree.Lookup(loc)
	out := cmd.OutOrStdout()

	if locateJSON {
		if err := gojson.NewEncoder(out).Encode(m); err != nil {
			return fmt.Errorf("failed to encode match: %w", err)
		}
	} else if m.Found {
		fmt.Fprintln(out, m.Path)
	} else {
		fmt.Fprintf(os.Stderr, "No region contains (%g, %g)\n", loc.Lat, loc.Lon)
	}

	if !m.Found {
		return errNoMatch
	}
	return nil
}
