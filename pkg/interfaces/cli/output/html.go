package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/mixplan/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateData contains all data for rendering the HTML report
type TemplateData struct {
	Report      *dto.Report
	GeneratedAt string
}

// generateHTMLOutput renders a standalone HTML report from the
// embedded template
func generateHTMLOutput(report *dto.Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}

	funcs := template.FuncMap{
		// bar widths are CSS percentages and must stay in [0, 100]
		// even when a violation pushes usage past capacity
		"barWidth": func(pct float64) float64 {
			if pct < 0 {
				return 0
			}
			if pct > 100 {
				return 100
			}
			return pct
		},
	}

	tmpl, err := template.New("report.html").Funcs(funcs).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	data := TemplateData{
		Report:      report,
		GeneratedAt: report.GeneratedAt.Format(time.RFC1123),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "plan_report.html")
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 HTML report saved to: %s\n", filename)
	}
	return nil
}
