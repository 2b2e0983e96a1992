package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const defaultLatexCommand = "pdflatex"

// PDFCompiler turns a rendered .tex file into a PDF with pdflatex
type PDFCompiler struct {
	command string
	logger  *zap.Logger
}

// NewPDFCompiler creates a compiler running command (pdflatex when empty)
func NewPDFCompiler(command string, logger *zap.Logger) *PDFCompiler {
	if command == "" {
		command = defaultLatexCommand
	}
	return &PDFCompiler{command: command, logger: logger}
}

// Compile runs the LaTeX command in the directory of texPath and returns the
// path of the produced PDF
func (c *PDFCompiler) Compile(ctx context.Context, texPath string) (string, error) {
	dir := filepath.Dir(texPath)
	name := filepath.Base(texPath)

	cmd := exec.CommandContext(ctx, c.command, "--interaction", "nonstopmode", name)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	c.logger.Info("Running LaTeX",
		zap.String("command", c.command),
		zap.String("tex", texPath))

	if err := cmd.Run(); err != nil {
		c.logger.Debug("LaTeX output", zap.String("output", output.String()))
		return "", fmt.Errorf("%s failed on %s: %w", c.command, texPath, err)
	}

	pdfPath := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+".pdf")
	return pdfPath, nil
}
