package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navchart/internal/navcode"
	"github.com/ziadkadry99/navchart/internal/server"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <code>",
	Short: "Show one navigation entry by its NavIndexCode",
	Long:  `Builds the navigation tree and prints the entry with the given code, its ancestry and its children.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().String("input", "", "spreadsheet path (overrides config)")
	lookupCmd.Flags().String("sheet", "", "worksheet name (overrides config)")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	code, err := navcode.Parse(strings.ReplaceAll(args[0], "'", ""))
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlags(cmd, cfg)

	input, err := singleInput(cfg)
	if err != nil {
		return err
	}
	res, err := buildTree(cmd.Context(), cfg, input, log)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, describeBuild(res))

	d := server.Detail(res.Root, code)
	if d == nil {
		return fmt.Errorf("no node with code %s", code)
	}

	path := append(d.Path, d.Code)
	fmt.Printf("%s  %s\n", d.Code, d.Title)
	fmt.Printf("  variant:       %s\n", d.Variant)
	fmt.Printf("  url:           %s\n", d.URL)
	fmt.Printf("  level:         %d\n", d.Level)
	fmt.Printf("  shows in nav:  %t\n", d.ShowsInNav)
	fmt.Printf("  landing page:  %t\n", d.HasLandingPage)
	fmt.Printf("  section nav:   %t\n", d.HasSectionNav)
	if d.HasSectionNav {
		fmt.Printf("  levels shown:  %d\n", d.LevelsToShow)
	}
	fmt.Printf("  leaf pages:    %d\n", d.LeafPages)
	fmt.Printf("  path:          %s\n", strings.Join(path, " > "))

	node := res.Root.Find(code)
	if len(node.Children) == 0 {
		fmt.Println("  children:      none")
		return nil
	}
	fmt.Println("  children:")
	for _, c := range node.Children {
		fmt.Printf("    %-10s %s (%s)\n", c.IndexCode(), c.Title, c.Variant)
	}
	return nil
}
