package pipeline_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/hourly-report/internal/pipeline"
	mock_pipeline "github.com/username/hourly-report/internal/pipeline/mocks"
	"github.com/username/hourly-report/internal/report"
	"github.com/username/hourly-report/internal/upload"
)

func newTestData(t *testing.T) *report.Data {
	t.Helper()

	worker, err := report.NewWorker("The Guy", "12345678A", []string{"08", "12345678", "15"})
	require.NoError(t, err)
	company, err := report.NewCompany("The Boss", "Home", "A12345678", []string{"08", "12345678", "15"})
	require.NoError(t, err)
	off, err := report.NewDatesOff([]int{6, 7}, []int{11, 24})
	require.NoError(t, err)
	data, err := report.New(2020, 9, []int{9, 13, 14, 18}, worker, company, off)
	require.NoError(t, err)

	return data
}

func TestOptions_TexPath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"hourly_report.pdf", "hourly_report.tex"},
		{filepath.Join("out", "sept.pdf"), filepath.Join("out", "sept.tex")},
		{"noext", "noext.tex"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pipeline.Options{OutputPath: tt.output}.TexPath())
	}
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()
	data := newTestData(t)
	loadErr := errors.New("boom")

	tests := []struct {
		name      string
		opts      pipeline.Options
		setup     func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader)
		want      *pipeline.Result
		wantErrIs error
		wantErr   bool
	}{
		{
			name: "render, compile and upload",
			opts: pipeline.Options{ConfigPath: "example.yaml", TemplatePath: "latex/template.tex", OutputPath: "hourly_report.pdf", Upload: true},
			setup: func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader) {
				gomock.InOrder(
					l.EXPECT().Load("example.yaml").Return(data, nil),
					r.EXPECT().Render(data, "latex/template.tex", "hourly_report.tex").Return(nil),
					c.EXPECT().Compile(ctx, "hourly_report.tex").Return("hourly_report.pdf", nil),
					u.EXPECT().PushFile(ctx, "hourly_report.pdf").Return(&upload.File{ID: "abc", Name: "hourly_report.pdf"}, nil),
				)
			},
			want: &pipeline.Result{
				Data:         data,
				TexPath:      "hourly_report.tex",
				PDFPath:      "hourly_report.pdf",
				UploadedFile: &upload.File{ID: "abc", Name: "hourly_report.pdf"},
			},
		},
		{
			name: "tex only, no upload",
			opts: pipeline.Options{ConfigPath: "example.yaml", TemplatePath: "t.tex", OutputPath: "report.pdf", SkipPDF: true},
			setup: func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader) {
				l.EXPECT().Load("example.yaml").Return(data, nil)
				r.EXPECT().Render(data, "t.tex", "report.tex").Return(nil)
			},
			want: &pipeline.Result{Data: data, TexPath: "report.tex"},
		},
		{
			name: "upload tex when pdf skipped",
			opts: pipeline.Options{ConfigPath: "example.yaml", TemplatePath: "t.tex", OutputPath: "report.pdf", SkipPDF: true, Upload: true},
			setup: func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader) {
				l.EXPECT().Load("example.yaml").Return(data, nil)
				r.EXPECT().Render(data, "t.tex", "report.tex").Return(nil)
				u.EXPECT().PushFile(ctx, "report.tex").Return(&upload.File{ID: "t"}, nil)
			},
			want: &pipeline.Result{Data: data, TexPath: "report.tex", UploadedFile: &upload.File{ID: "t"}},
		},
		{
			name: "load failure stops the run",
			opts: pipeline.Options{ConfigPath: "bad.yaml", TemplatePath: "t.tex", OutputPath: "report.pdf", Upload: true},
			setup: func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader) {
				l.EXPECT().Load("bad.yaml").Return(nil, loadErr)
			},
			wantErrIs: loadErr,
			wantErr:   true,
		},
		{
			name: "invalid document surfaces to caller",
			opts: pipeline.Options{ConfigPath: "bad.yaml", TemplatePath: "t.tex", OutputPath: "report.pdf"},
			setup: func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader) {
				l.EXPECT().Load("bad.yaml").Return(nil, &report.InvalidDocumentError{Type: "DNI", Value: "112345678A"})
			},
			wantErrIs: report.ErrInvalidDocument,
			wantErr:   true,
		},
		{
			name: "compile failure skips upload",
			opts: pipeline.Options{ConfigPath: "example.yaml", TemplatePath: "t.tex", OutputPath: "report.pdf", Upload: true},
			setup: func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader) {
				l.EXPECT().Load("example.yaml").Return(data, nil)
				r.EXPECT().Render(data, "t.tex", "report.tex").Return(nil)
				c.EXPECT().Compile(ctx, "report.tex").Return("", errors.New("pdflatex not found"))
			},
			wantErr: true,
		},
		{
			name: "upload failure",
			opts: pipeline.Options{ConfigPath: "example.yaml", TemplatePath: "t.tex", OutputPath: "report.pdf", Upload: true},
			setup: func(l *mock_pipeline.MockLoader, r *mock_pipeline.MockRenderer, c *mock_pipeline.MockCompiler, u *mock_pipeline.MockUploader) {
				l.EXPECT().Load("example.yaml").Return(data, nil)
				r.EXPECT().Render(data, "t.tex", "report.tex").Return(nil)
				c.EXPECT().Compile(ctx, "report.tex").Return("report.pdf", nil)
				u.EXPECT().PushFile(ctx, "report.pdf").Return(nil, upload.ErrMissingFile)
			},
			wantErrIs: upload.ErrMissingFile,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			loader := mock_pipeline.NewMockLoader(ctrl)
			renderer := mock_pipeline.NewMockRenderer(ctrl)
			compiler := mock_pipeline.NewMockCompiler(ctrl)
			uploader := mock_pipeline.NewMockUploader(ctrl)
			tt.setup(loader, renderer, compiler, uploader)

			p := pipeline.New(loader, renderer, compiler, uploader, zap.NewNop())
			got, err := p.Run(ctx, tt.opts)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Data, got.Data)
			assert.Equal(t, tt.want.TexPath, got.TexPath)
			assert.Equal(t, tt.want.PDFPath, got.PDFPath)
			assert.Equal(t, tt.want.UploadedFile, got.UploadedFile)
		})
	}
}

func TestPipeline_Run_UploadWithoutUploader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := pipeline.New(mock_pipeline.NewMockLoader(ctrl), mock_pipeline.NewMockRenderer(ctrl), nil, nil, zap.NewNop())

	_, err := p.Run(context.Background(), pipeline.Options{OutputPath: "report.pdf", Upload: true})
	assert.ErrorIs(t, err, pipeline.ErrNoUploader)
}
