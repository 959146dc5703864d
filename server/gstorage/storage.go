package gstorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const uploadTimeout = time.Second * 50

// Uploader is the object-store capability the upload workflow depends on.
// It's an interface so tests can swap in UploaderStub.
type Uploader interface {
	// UploadFile stores the file at filePath under bucket/objectKey with
	// public-read access & returns the object's public URI.
	UploadFile(ctx context.Context, bucket, objectKey, filePath string) (string, error)
}

type GStorage struct {
	storageClient *storage.Client
}

func NewGStorage(credentialsFilePath string) (*GStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFilePath != "" {
		client, err = storage.NewClient(context.Background(), option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = storage.NewClient(context.Background())
	}

	if err != nil {
		return nil, fmt.Errorf("NewGStorage: %v", err)
	}

	return &GStorage{storageClient: client}, nil
}

// UploadFile uploads an object with public-read access.
func (gs *GStorage) UploadFile(ctx context.Context, bucket, objectKey, filePath string) (string, error) {
	// Open local file in filePath
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("os.Open: %v", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	// Upload an object with storage.Writer.
	wc := gs.storageClient.Bucket(bucket).Object(objectKey).NewWriter(ctx)
	wc.PredefinedACL = "publicRead"
	if _, err = io.Copy(wc, f); err != nil {
		return "", fmt.Errorf("io.Copy: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("Writer.Close: %v", err)
	}

	return PublicURI(bucket, objectKey), nil
}

// PublicURI is the browser-accessible address of an uploaded object.
func PublicURI(bucket, objectKey string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", bucket, objectKey)
}
