package publishers

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"

	"glitchvid/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// UploadToGCSWithJSON uploads a rendered video to a Google Cloud Storage
// object, using a base64-encoded service account key from accessInfo.
func UploadToGCSWithJSON(ctx context.Context, accessInfo map[string]string, reader io.Reader) error {
	credentialsJSON, err := base64.StdEncoding.DecodeString(accessInfo["credentialsJSON"])
	if err != nil {
		// Raw JSON is also accepted.
		credentialsJSON = []byte(accessInfo["credentialsJSON"])
	}
	bucketName := accessInfo["bucket"]
	objectName := accessInfo["object"]
	if objectName == "" {
		objectName = path.Join(accessInfo["folder"], accessInfo["filename"])
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	obj := client.Bucket(bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)

	if _, err = io.Copy(wc, reader); err != nil {
		return fmt.Errorf("io.Copy: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}

	logger.Infof("Successfully uploaded object '%s' to bucket '%s'", objectName, bucketName)
	return nil
}
