package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/username/hourly-report/internal/calendar"
	"github.com/username/hourly-report/internal/report"
	"go.uber.org/zap"
)

const (
	// LaTeX is brace-heavy, so templates use square-bracket delimiters:
	// [[ .Data.MonthName ]], [[ range .Data.Days ]]...[[ end ]]
	leftDelim  = "[["
	rightDelim = "]]"
)

// View is the root value templates are executed against
type View struct {
	Data  *report.Data
	Month *calendar.MonthInfo
}

// Renderer renders report data through a text template
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a new Renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render executes the template at templatePath and writes the result to outputPath
func (r *Renderer) Render(data *report.Data, templatePath, outputPath string) error {
	out, err := r.RenderBytes(data, templatePath)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write rendered output: %w", err)
	}

	r.logger.Info("Template rendered",
		zap.String("template", templatePath),
		zap.String("output", outputPath),
		zap.Int("bytes", len(out)))

	return nil
}

// RenderBytes executes the template at templatePath and returns the output
func (r *Renderer) RenderBytes(data *report.Data, templatePath string) ([]byte, error) {
	tmpl, err := template.New(filepath.Base(templatePath)).
		Delims(leftDelim, rightDelim).
		Option("missingkey=error").
		ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	view := View{Data: data, Month: calendar.BuildMonth(data)}
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}
