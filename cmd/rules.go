package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective keyword catalog as YAML",
	Long: `Prints the catalog that scan and classify would use. With no --rules
flag or rules.path config this is the built-in catalog, which makes a
convenient starting point for a custom rules file.`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().String("rules", "", "YAML keyword catalog (default: built-in)")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("rules")
	if path == "" {
		path = cfg.Rules.Path
	}

	catalog, err := loadCatalog(path)
	if err != nil {
		return err
	}
	data, err := catalog.Encode()
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return eris.Wrap(err, "rules: write catalog")
	}
	return nil
}
