package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// imageMimeTypes lists the Drive mime types treated as images
var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: client,
	}, nil
}

// escapeQueryValue escapes a literal for the Drive query language
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// FindImageByName looks up an image by exact file name inside a folder
func (ds *DriveService) FindImageByName(ctx context.Context, folderID string, name string) (string, bool, error) {
	query := fmt.Sprintf("'%s' in parents and name = '%s' and trashed=false",
		escapeQueryValue(folderID), escapeQueryValue(name))

	r, err := ds.client.Files.List().
		Q(query).
		Fields("files(id, name, mimeType)").
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return "", false, fmt.Errorf("failed to list files: %w", err)
	}

	for _, file := range r.Files {
		if imageMimeTypes[strings.ToLower(file.MimeType)] {
			return file.Id, true, nil
		}
	}
	return "", false, nil
}

// DownloadImage downloads the raw bytes of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
