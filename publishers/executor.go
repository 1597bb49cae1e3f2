package publishers

import (
	"context"
	"fmt"
	"io"
)

// WriteVideo streams a rendered video to the named backend. Each backend is
// self-contained and builds its own client from the accessInfo map.
func WriteVideo(ctx context.Context, accessInfo map[string]string, reader io.Reader, backendType string) error {
	switch backendType {
	case "directServe":
		if err := UploadToDirectServe(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to upload to direct serve: %w", err)
		}
	case "s3":
		if err := UploadToS3WithCreds(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to upload to S3: %w", err)
		}
	case "gcs":
		if err := UploadToGCSWithJSON(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to upload to GCS: %w", err)
		}
	case "sftp":
		if err := UploadToSFTPWithCreds(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to upload to SFTP: %w", err)
		}
	default:
		return fmt.Errorf("unknown backend type: %s", backendType)
	}
	return nil
}
