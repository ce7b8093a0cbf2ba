package config

import (
	"fmt"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/manifoldco/promptui"
)

// otherInput is the select item that switches to a free-text prompt.
const otherInput = "other..."

// detectSpreadsheets lists workbooks and CSV exports below the current directory.
func detectSpreadsheets() []string {
	matches, err := doublestar.FilepathGlob("**/*.{xlsx,xlsm,csv}")
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range matches {
		// Skip generated output and vendored trees.
		if ok, _ := doublestar.PathMatch("{node_modules,vendor,.git}/**", m); ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// RunWizard runs an interactive configuration wizard, saves the result to path
// and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to navchart! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Input spreadsheet.
	found := detectSpreadsheets()
	input := cfg.Input
	if len(found) > 0 {
		sel := promptui.Select{
			Label: "Select the navigation spreadsheet",
			Items: append(found, otherInput),
		}
		_, choice, err := sel.Run()
		if err != nil {
			return nil, fmt.Errorf("input selection: %w", err)
		}
		input = choice
	}
	if len(found) == 0 || input == otherInput {
		p := promptui.Prompt{
			Label:   "Path or glob of the navigation spreadsheet",
			Default: cfg.Input,
		}
		v, err := p.Run()
		if err != nil {
			return nil, fmt.Errorf("input path: %w", err)
		}
		input = v
	}
	cfg.Input = input

	// 2. Worksheet name.
	sheetPrompt := promptui.Prompt{
		Label:   "Worksheet name (xlsx only)",
		Default: cfg.Sheet,
	}
	sheet, err := sheetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}
	cfg.Sheet = sheet

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for generated pages",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 4. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.SiteTitle = title

	// 5. Chart depth.
	depthPrompt := promptui.Prompt{
		Label:    "Org chart levels expanded on load",
		Default:  strconv.Itoa(cfg.Chart.Depth),
		Validate: validatePositiveInt,
	}
	depthStr, err := depthPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chart depth: %w", err)
	}
	cfg.Chart.Depth, _ = strconv.Atoi(depthStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}
