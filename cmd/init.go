package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navchart/internal/config"
	"github.com/ziadkadry99/navchart/internal/sheet"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize navchart configuration with an interactive wizard",
	Long: `Runs an interactive wizard to configure navchart for your project and generates a .navchart.yml file.
With --sample, also writes a small example navigation workbook to start from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sample, _ := cmd.Flags().GetString("sample"); sample != "" {
			if err := sheet.WriteXLSX(sample, sheet.DefaultSheet, sheet.SampleRecords()); err != nil {
				return err
			}
			fmt.Printf("Sample workbook written to %s\n", sample)
		}
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	initCmd.Flags().String("sample", "", "write a sample navigation workbook to this path first")
	rootCmd.AddCommand(initCmd)
}
