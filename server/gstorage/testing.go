package gstorage

import "context"

// UploaderStub records uploads in memory, for tests.
type UploaderStub struct {
	UploadedKeys  []string
	UploadedFiles []string
	UploadError   error
}

func (stub *UploaderStub) UploadFile(ctx context.Context, bucket, objectKey, filePath string) (string, error) {
	if stub.UploadError != nil {
		return "", stub.UploadError
	}

	stub.UploadedKeys = append(stub.UploadedKeys, objectKey)
	stub.UploadedFiles = append(stub.UploadedFiles, filePath)

	return PublicURI(bucket, objectKey), nil
}
