package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrMissingFile is returned when a local path is not an existing file
var ErrMissingFile = errors.New("missing file")

// File is the Drive file created by an upload
type File struct {
	ID       string
	Name     string
	MimeType string
}

// Drive uploads files into a single Google Drive folder
type Drive struct {
	folderID string
	files    *drive.FilesService
	logger   *zap.Logger
}

// NewDrive creates a Drive client for the destination folder. opts carry the
// credentials, usually option.WithTokenSource.
func NewDrive(ctx context.Context, folderID string, logger *zap.Logger, opts ...option.ClientOption) (*Drive, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Drive{
		folderID: folderID,
		files:    svc.Files,
		logger:   logger,
	}, nil
}

// NewDriveFromConfig creates a Drive client from the drive settings
func NewDriveFromConfig(ctx context.Context, cfg *DriveConfig, ts oauth2.TokenSource, logger *zap.Logger) (*Drive, error) {
	return NewDrive(ctx, cfg.DestinationFolderID, logger, option.WithTokenSource(ts))
}

// PushFile uploads the local file to the destination folder, keeping its name
func (d *Drive) PushFile(ctx context.Context, localPath string) (*File, error) {
	name, err := ExtractFileName(localPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", localPath, err)
	}
	defer f.Close()

	meta := &drive.File{Name: name}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}

	d.logger.Info("Uploading file to Google Drive",
		zap.String("file", localPath),
		zap.String("folder_id", d.folderID))

	created, err := d.files.Create(meta).
		Media(f, googleapi.ContentType(contentTypeFor(name))).
		Fields("id", "name", "mimeType").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("drive API error (status %d): %s", apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("upload request failed: %w", err)
	}

	d.logger.Info("File uploaded",
		zap.String("id", created.Id),
		zap.String("name", created.Name))

	return &File{ID: created.Id, Name: created.Name, MimeType: created.MimeType}, nil
}

// ExtractFileName returns the base name of path, which must be an existing file
func ExtractFileName(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: Input path must be an existing file path! Got '%s'", ErrMissingFile, path)
	}

	return filepath.Base(path), nil
}

func contentTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".pdf":
		return "application/pdf"
	case ".tex":
		return "application/x-tex"
	default:
		return "application/octet-stream"
	}
}
