package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/username/hourly-report/internal/report"
	"github.com/username/hourly-report/internal/upload"
	"go.uber.org/zap"
)

// ErrNoUploader is returned when an upload is requested without an uploader
var ErrNoUploader = errors.New("upload requested but no uploader configured")

// Options controls a single report run
type Options struct {
	ConfigPath   string
	TemplatePath string
	OutputPath   string // final artifact, e.g. hourly_report.pdf
	SkipPDF      bool
	Upload       bool
}

// TexPath is the intermediate LaTeX file: the output stem with a .tex
// extension, next to the output
func (o Options) TexPath() string {
	base := filepath.Base(o.OutputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(o.OutputPath), stem+".tex")
}

// Result summarizes a run
type Result struct {
	Data         *report.Data
	TexPath      string
	PDFPath      string
	UploadedFile *upload.File
	Duration     time.Duration
}

// Pipeline runs load, render, compile and upload in order
type Pipeline struct {
	loader   Loader
	renderer Renderer
	compiler Compiler
	uploader Uploader
	logger   *zap.Logger
}

// New creates a Pipeline. compiler and uploader may be nil when the
// corresponding steps are never requested.
func New(loader Loader, renderer Renderer, compiler Compiler, uploader Uploader, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		loader:   loader,
		renderer: renderer,
		compiler: compiler,
		uploader: uploader,
		logger:   logger,
	}
}

// Run executes the steps sequentially; the first failure aborts the run
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{TexPath: opts.TexPath()}

	if opts.Upload && p.uploader == nil {
		return nil, ErrNoUploader
	}

	p.logger.Info("Loading report data", zap.String("config", opts.ConfigPath))
	data, err := p.loader.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	result.Data = data

	p.logger.Info("Rendering template",
		zap.String("template", opts.TemplatePath),
		zap.String("tex", result.TexPath))
	if err := p.renderer.Render(data, opts.TemplatePath, result.TexPath); err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}

	artifact := result.TexPath
	if !opts.SkipPDF {
		if p.compiler == nil {
			return nil, fmt.Errorf("failed to compile: no PDF compiler configured")
		}
		pdfPath, err := p.compiler.Compile(ctx, result.TexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to compile: %w", err)
		}
		result.PDFPath = pdfPath
		artifact = pdfPath
	}

	if opts.Upload {
		file, err := p.uploader.PushFile(ctx, artifact)
		if err != nil {
			return nil, fmt.Errorf("failed to upload: %w", err)
		}
		result.UploadedFile = file
	}

	result.Duration = time.Since(start)

	p.logger.Info("Report generated",
		zap.String("artifact", artifact),
		zap.Int("total_hours", data.TotalWorkingHours()),
		zap.Bool("uploaded", result.UploadedFile != nil),
		zap.Duration("duration", result.Duration))

	return result, nil
}
