package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	// FindImageByName returns the file id of a non-trashed image named name in folderID.
	// found is false when no such image exists.
	FindImageByName(ctx context.Context, folderID string, name string) (fileID string, found bool, err error)
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
