// Package check implements the credserve doctor subcommand: it validates
// a loaded configuration's shape, probes the external analytic services
// it names, and checks the configured cache backend is reachable, before
// the operator points a running pipeline at it.
package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/coinform/credserve/internal/config"
)

// CheckResult is the outcome of a non-interactive doctor run.
type CheckResult struct {
	// Success indicates whether every required check passed.
	Success bool
	// Errors contains failures that mean the pipeline likely cannot start.
	Errors []string
	// Warnings contains issues worth looking at but that don't block startup.
	Warnings []string
	// Suggestions contains tips for fixing the errors above.
	Suggestions []string
}

// Checker runs the doctor checks against a loaded Config.
type Checker struct {
	cfg    *config.Config
	report *Report
	theme  *huh.Theme
}

// NewChecker builds a Checker for cfg.
func NewChecker(cfg *config.Config) *Checker {
	return &Checker{
		cfg:    cfg,
		report: NewReport(),
		theme:  huh.ThemeCharm(),
	}
}

// Run executes the full interactive doctor flow: validate the config
// shape, probe every configured service, check the cache backend, then
// print a report. If the cache is a missing SQLite directory, it offers
// to create it.
func (c *Checker) Run(ctx context.Context) error {
	c.printHeader()

	fmt.Println()
	printSection("Validating configuration")
	configResult := c.validateConfigShape()
	c.report.AddValidationResult(configResult)
	printValidationResult(configResult)
	if !configResult.Valid {
		return fmt.Errorf("configuration is invalid: %w", configResult.Error)
	}

	fmt.Println()
	printSection("Checking cache backend")
	if c.cfg.Cache.SQLitePath != "" {
		dir := filepath.Dir(c.cfg.Cache.SQLitePath)
		if !dirExists(dir) {
			create, err := confirmCreateDir(dir)
			if err != nil {
				return err
			}
			if create {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating cache directory %s: %w", dir, err)
				}
			}
		}
	}
	cacheResult := c.validateCache(ctx)
	c.report.AddValidationResult(cacheResult)
	printValidationResult(cacheResult)

	fmt.Println()
	printSection("Probing external services")
	for _, result := range c.checkServices(ctx) {
		c.report.AddServiceResult(result)
		printServiceResult(result)
	}

	fmt.Println()
	c.report.Print()

	return nil
}

// printHeader prints the welcome header.
func (c *Checker) printHeader() {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)
	fmt.Println(titleStyle.Render("credserve doctor"))
}

// printSection prints a section header.
func printSection(title string) {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	fmt.Println(style.Render(title + "..."))
}

// printServiceResult prints a single ServiceCheckResult inline.
func printServiceResult(result ServiceCheckResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	switch {
	case !result.Configured:
		yellow.Printf("  - %s not configured\n", result.Name)
	case result.Reachable:
		green.Printf("  ✓ %s\n", result.Name)
	case result.Required:
		red.Printf("  ✗ %s: %v\n", result.Name, result.Error)
	default:
		yellow.Printf("  ⚠ %s unreachable: %v\n", result.Name, result.Error)
	}
}

// confirmCreateDir asks the operator to confirm creating a missing
// directory before the doctor run does it for them.
func confirmCreateDir(path string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Cache directory %s does not exist. Create it?", path)).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	if err != nil {
		return false, err
	}
	return confirm, nil
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// RunNonInteractive performs the same checks as Run but never prompts and
// never creates anything, returning a CheckResult suitable for CI or a
// one-shot "credserve doctor --non-interactive" invocation.
func (c *Checker) RunNonInteractive(ctx context.Context) *CheckResult {
	result := &CheckResult{Success: true}

	configResult := c.validateConfigShape()
	if !configResult.Valid {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("configuration: %v", configResult.Error))
		result.Suggestions = append(result.Suggestions, "fix the reported configuration field and rerun 'credserve doctor'")
	}
	result.Warnings = append(result.Warnings, configResult.Warnings...)

	cacheResult := c.validateCache(ctx)
	if !cacheResult.Valid {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("cache backend: %v", cacheResult.Error))
	}
	result.Warnings = append(result.Warnings, cacheResult.Warnings...)

	for _, svc := range c.checkServices(ctx) {
		if !svc.Configured {
			continue
		}
		if !svc.Reachable {
			msg := fmt.Sprintf("%s at %s is unreachable: %v", svc.Name, svc.URL, svc.Error)
			if svc.Required {
				result.Success = false
				result.Errors = append(result.Errors, msg)
			} else {
				result.Warnings = append(result.Warnings, msg)
			}
		}
	}

	return result
}

// PrintCheckResult prints a CheckResult in the same style Run's report
// uses, for callers that only have the non-interactive result.
func PrintCheckResult(result *CheckResult) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if len(result.Errors) > 0 {
		fmt.Println()
		red.Println("[ERROR] Environment check failed")
		fmt.Println()
		for _, err := range result.Errors {
			red.Printf("  ✗ %s\n", err)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Println()
		yellow.Println("[WARNING] Configuration warnings:")
		fmt.Println()
		for _, warn := range result.Warnings {
			yellow.Printf("  ⚠ %s\n", warn)
		}
	}

	if len(result.Suggestions) > 0 {
		cyan.Println("\nTo fix these issues:")
		for _, suggestion := range result.Suggestions {
			fmt.Printf("  → %s\n", suggestion)
		}
	}

	fmt.Println()
}
