package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rolodexhq/rolodex/server/gstorage"
	"github.com/rolodexhq/rolodex/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestUploader(t *testing.T) (*Uploader, *gstorage.UploaderStub, *models.Store) {
	store := models.InitializeTestDb()
	stub := &gstorage.UploaderStub{}
	uploader := NewUploader(store, stub, "test-bucket", t.TempDir(), zap.NewNop().Sugar())

	return uploader, stub, store
}

func seedContact(t *testing.T, store *models.Store) *models.Contact {
	user := &models.User{Email: "stark@avengers.com", Password: "very-secure"}
	require.NoError(t, store.CreateUser(user))

	contact := &models.Contact{Name: "Test Contact", Dob: "10/12/1984", Phone: 2065555555, UserID: user.ID}
	require.NoError(t, store.CreateContact(contact))

	return contact
}

func stagedFileCount(t *testing.T, stagingDir string) int {
	entries, err := os.ReadDir(stagingDir)
	require.NoError(t, err)

	return len(entries)
}

func TestUpload(t *testing.T) {
	uploader, stub, store := newTestUploader(t)
	contact := seedContact(t, store)

	pic, err := uploader.Upload(context.Background(), UploadRequest{
		ContactID: fmt.Sprint(contact.ID),
		File:      bytes.NewReader([]byte("fake png bytes")),
		FileName:  "tester.png",
		Name:      "example pic",
		Desc:      "example pic description",
		UserID:    contact.UserID,
	})
	require.NoError(t, err)

	assert.Equal(t, "example pic", pic.Name)
	assert.Equal(t, "example pic description", pic.Desc)
	assert.Equal(t, contact.ID, pic.ContactID)
	assert.Equal(t, contact.UserID, pic.UserID)
	assert.True(t, strings.HasSuffix(pic.ObjectKey, ".png"), "object key should keep the original extension")
	assert.Equal(t, gstorage.PublicURI("test-bucket", pic.ObjectKey), pic.ImageURI)

	// the pic record was persisted & the staged file cleaned up
	pics, err := store.FindPicsBy("contact_id", contact.ID)
	require.NoError(t, err)
	assert.Len(t, pics, 1)

	assert.Equal(t, []string{pic.ObjectKey}, stub.UploadedKeys)
	assert.Equal(t, 0, stagedFileCount(t, uploader.stagingDir))
}

func TestUploadUniqueObjectKeys(t *testing.T) {
	uploader, stub, store := newTestUploader(t)
	contact := seedContact(t, store)

	for i := 0; i < 2; i++ {
		_, err := uploader.Upload(context.Background(), UploadRequest{
			ContactID: fmt.Sprint(contact.ID),
			File:      bytes.NewReader([]byte("fake png bytes")),
			FileName:  "tester.png",
			UserID:    contact.UserID,
		})
		require.NoError(t, err)
	}

	require.Len(t, stub.UploadedKeys, 2)
	assert.NotEqual(t, stub.UploadedKeys[0], stub.UploadedKeys[1])
}

func TestUploadContactNotFound(t *testing.T) {
	uploader, stub, _ := newTestUploader(t)

	_, err := uploader.Upload(context.Background(), UploadRequest{
		ContactID: "9999",
		File:      bytes.NewReader([]byte("fake png bytes")),
		FileName:  "tester.png",
		UserID:    1,
	})

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// nothing was shipped to the object store, & the staged file is gone
	assert.Empty(t, stub.UploadedKeys)
	assert.Equal(t, 0, stagedFileCount(t, uploader.stagingDir))
}

func TestUploadStorageFailurePropagates(t *testing.T) {
	uploader, stub, store := newTestUploader(t)
	contact := seedContact(t, store)
	stub.UploadError = errors.New("storage blew up")

	_, err := uploader.Upload(context.Background(), UploadRequest{
		ContactID: fmt.Sprint(contact.ID),
		File:      bytes.NewReader([]byte("fake png bytes")),
		FileName:  "tester.png",
		UserID:    contact.UserID,
	})
	require.Error(t, err)

	// no pic record exists for an upload that never happened
	pics, err := store.FindPicsBy("contact_id", contact.ID)
	require.NoError(t, err)
	assert.Empty(t, pics)

	assert.Equal(t, 0, stagedFileCount(t, uploader.stagingDir))
}

func TestUploadNoFile(t *testing.T) {
	uploader, _, store := newTestUploader(t)
	contact := seedContact(t, store)

	_, err := uploader.Upload(context.Background(), UploadRequest{
		ContactID: fmt.Sprint(contact.ID),
		UserID:    contact.UserID,
	})

	assert.True(t, errors.Is(err, ErrNoFile))
}
