package pipeline

import (
	"context"

	"github.com/username/hourly-report/internal/report"
	"github.com/username/hourly-report/internal/upload"
)

// Loader reads a config file and builds the report data.
// The pipeline depends on these interfaces, not on the concrete packages.
//
//go:generate mockgen -destination=mocks/mock_pipeline.go -package=mocks -source=interface.go
type Loader interface {
	Load(configPath string) (*report.Data, error)
}

// Renderer writes the rendered template for the report data
type Renderer interface {
	Render(data *report.Data, templatePath, outputPath string) error
}

// Compiler turns a rendered .tex file into a PDF and returns its path
type Compiler interface {
	Compile(ctx context.Context, texPath string) (string, error)
}

// Uploader pushes a finished file to cloud storage
type Uploader interface {
	PushFile(ctx context.Context, localPath string) (*upload.File, error)
}
