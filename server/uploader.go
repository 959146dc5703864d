package server

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rolodexhq/rolodex/server/gstorage"
	"github.com/rolodexhq/rolodex/server/models"
	"github.com/rolodexhq/rolodex/utils"
	"go.uber.org/zap"
)

var (
	ErrNoFile             = errors.New("no file received")
	ErrStorageUnavailable = errors.New("unable to store file")
)

// Uploader coordinates a picture upload: stage the inbound file locally,
// verify the target contact, push the bytes to object storage & persist the
// pic record. The staged file is removed on every exit path.
type Uploader struct {
	store      *models.Store
	storage    gstorage.Uploader
	bucket     string
	stagingDir string
	logg       *zap.SugaredLogger
}

type UploadRequest struct {
	ContactID string
	File      io.Reader
	FileName  string
	Name      string
	Desc      string
	UserID    uint
}

func NewUploader(
	store *models.Store,
	storage gstorage.Uploader,
	bucket string,
	stagingDir string,
	logg *zap.SugaredLogger) *Uploader {

	return &Uploader{
		store:      store,
		storage:    storage,
		bucket:     bucket,
		stagingDir: stagingDir,
		logg:       logg,
	}
}

// Upload runs the picture workflow & returns the persisted record.
// Failures from the contact lookup, the object-store upload or the record
// create are returned as-is - a pic record only ever exists for an upload
// that actually succeeded.
func (uploader *Uploader) Upload(ctx context.Context, request UploadRequest) (*models.Pic, error) {
	if request.File == nil {
		return nil, ErrNoFile
	}

	stagedFilePath, err := uploader.stageFile(request.File, request.FileName)
	if err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	defer uploader.removeStagedFile(stagedFilePath)

	// Look up the contact before the network upload, so a doomed request
	// never ships bytes to the object store. A contact deleted between this
	// check & the pic create still slips through - there's no transaction
	// spanning the db & the object store.
	contact, err := uploader.store.FindContact(request.ContactID)
	if err != nil {
		return nil, err
	}

	objectKey := filepath.Base(stagedFilePath)
	imageURI, err := uploader.storage.UploadFile(ctx, uploader.bucket, objectKey, stagedFilePath)
	if err != nil {
		return nil, errors.Wrapf(err, "upload of %v failed", objectKey)
	}

	pic := &models.Pic{
		Name:      request.Name,
		Desc:      request.Desc,
		ObjectKey: objectKey,
		ImageURI:  imageURI,
		UserID:    request.UserID,
		ContactID: contact.ID,
	}
	if err := uploader.store.CreatePic(pic); err != nil {
		return nil, err
	}

	return pic, nil
}

// stageFile copies the inbound stream to the staging dir under a generated
// unique name, keeping the original extension so the object key still hints
// at the content type.
func (uploader *Uploader) stageFile(file io.Reader, fileName string) (string, error) {
	if err := utils.CreateDirIfNotExist(uploader.stagingDir); err != nil {
		return "", err
	}

	stagedFilePath := filepath.Join(uploader.stagingDir, uuid.NewString()+filepath.Ext(fileName))

	stagedFile, err := os.Create(stagedFilePath)
	if err != nil {
		return "", err
	}
	defer stagedFile.Close()

	if _, err := io.Copy(stagedFile, file); err != nil {
		return "", err
	}

	return stagedFilePath, nil
}

// removeStagedFile deletes the per-request staging file. A failure is logged
// & never surfaced - the client's response must not depend on local cleanup.
func (uploader *Uploader) removeStagedFile(stagedFilePath string) {
	if !utils.FileExist(stagedFilePath) {
		return
	}

	if err := os.Remove(stagedFilePath); err != nil {
		uploader.logg.Errorf("failed to remove staged file %v: %v", stagedFilePath, err)
	}
}
