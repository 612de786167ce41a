package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/location-screen/internal/classify"
	"github.com/sells-group/location-screen/internal/model"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single location from flags",
	Long: `Runs the screening rules against one ad-hoc location and prints the
reasons it would be flagged, or "suitable".

Examples:
  classify --name "The Rusty Pub" --hours "6pm - 2am"
  classify --name "Corner Burger" --description "Open late" --hours "11am - 9pm"`,
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.String("name", "", "location name (required)")
	f.String("description", "", "location description")
	f.String("hours", "", "free-text opening hours")
	f.String("rules", "", "YAML keyword catalog (default: built-in)")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	hours, _ := cmd.Flags().GetString("hours")
	rulesPath, _ := cmd.Flags().GetString("rules")

	if strings.TrimSpace(name) == "" {
		return eris.New("classify: --name is required")
	}
	if rulesPath == "" {
		rulesPath = cfg.Rules.Path
	}

	catalog, err := loadCatalog(rulesPath)
	if err != nil {
		return err
	}

	reasons := classify.New(catalog).Classify(model.Location{
		Name:        name,
		Description: model.StringPtr(description),
		Hours:       model.StringPtr(hours),
	})

	out := cmd.OutOrStdout()
	if len(reasons) == 0 {
		fmt.Fprintln(out, "suitable") //nolint:errcheck
		return nil
	}
	for _, r := range reasons {
		fmt.Fprintln(out, r) //nolint:errcheck
	}
	return nil
}
