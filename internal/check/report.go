package check

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Report collects and displays check results.
type Report struct {
	ServiceResults    []ServiceCheckResult
	ValidationResults []ValidationResult
}

// NewReport creates a new report.
func NewReport() *Report {
	return &Report{
		ServiceResults:    make([]ServiceCheckResult, 0),
		ValidationResults: make([]ValidationResult, 0),
	}
}

// AddServiceResult adds a service reachability result.
func (r *Report) AddServiceResult(result ServiceCheckResult) {
	r.ServiceResults = append(r.ServiceResults, result)
}

// AddValidationResult adds a validation result.
func (r *Report) AddValidationResult(result ValidationResult) {
	r.ValidationResults = append(r.ValidationResults, result)
}

// Print prints the final summary report.
func (r *Report) Print() {
	r.printSeparator()
	summary := r.calculateSummary()
	r.printSummary(summary)
}

// ReportSummary holds the summary statistics.
type ReportSummary struct {
	TotalServices       int
	ServicesReachable   int
	ServicesUnreachable int
	TotalValidations    int
	ValidationsValid    int
	ValidationErrors    int
	HasErrors           bool
	HasWarnings         bool
}

// calculateSummary calculates the summary from all results.
func (r *Report) calculateSummary() ReportSummary {
	summary := ReportSummary{}

	summary.TotalServices = len(r.ServiceResults)
	for _, result := range r.ServiceResults {
		if !result.Configured {
			continue
		}
		if result.Reachable {
			summary.ServicesReachable++
		} else {
			summary.ServicesUnreachable++
			if result.Required {
				summary.HasErrors = true
			} else {
				summary.HasWarnings = true
			}
		}
	}

	summary.TotalValidations = len(r.ValidationResults)
	for _, result := range r.ValidationResults {
		if result.Valid {
			summary.ValidationsValid++
		} else {
			summary.ValidationErrors++
			summary.HasErrors = true
		}
		if len(result.Warnings) > 0 {
			summary.HasWarnings = true
		}
	}

	return summary
}

// printSeparator prints a separator line.
func (r *Report) printSeparator() {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fmt.Println(style.Render(strings.Repeat("─", 50)))
}

// printSummary prints the final summary.
func (r *Report) printSummary(summary ReportSummary) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	if summary.HasErrors {
		red.Print("✗ Check completed")
	} else if summary.HasWarnings {
		yellow.Print("⚠ Check completed")
	} else {
		green.Print("✓ Check completed")
	}

	var details []string
	if summary.ServicesUnreachable > 0 {
		details = append(details, fmt.Sprintf("%d service(s) unreachable", summary.ServicesUnreachable))
	}
	if summary.ValidationErrors > 0 {
		details = append(details, fmt.Sprintf("%d validation error(s)", summary.ValidationErrors))
	}

	if len(details) > 0 {
		fmt.Printf(" (%s)\n", strings.Join(details, ", "))
	} else {
		fmt.Println(" - All checks passed")
	}
}

// PrintDetailedReport prints a detailed report with all sections.
func (r *Report) PrintDetailedReport() {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 2).
		Width(50).
		Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	fmt.Println(boxStyle.Render(titleStyle.Render("credserve doctor report")))
	fmt.Println()

	r.printServiceSection()
	fmt.Println()

	r.printValidationSection()
	fmt.Println()

	r.Print()
}

// printServiceSection prints the service reachability section.
func (r *Report) printServiceSection() {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	fmt.Println(sectionStyle.Render("Service reachability"))

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, result := range r.ServiceResults {
		switch {
		case !result.Configured:
			yellow.Printf("  - %s not configured\n", result.Name)
		case result.Reachable:
			green.Printf("  ✓ %s (%s)\n", result.Name, result.URL)
		case result.Required:
			red.Printf("  ✗ %s (%s): %v\n", result.Name, result.URL, result.Error)
		default:
			yellow.Printf("  ⚠ %s (%s) unreachable: %v\n", result.Name, result.URL, result.Error)
		}
	}
}

// printValidationSection prints the validation section.
func (r *Report) printValidationSection() {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	fmt.Println(sectionStyle.Render("Configuration validation"))

	for _, result := range r.ValidationResults {
		printValidationResult(result)
	}
}
