package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, store *Store) *User {
	user := &User{Email: "stark@avengers.com", Password: "very-secure"}
	require.NoError(t, store.CreateUser(user))

	return user
}

func createTestContact(t *testing.T, store *Store, userID uint) *Contact {
	contact := &Contact{
		Name:   "Test Contact",
		Dob:    "10/12/1984",
		Phone:  2065555555,
		UserID: userID,
	}
	require.NoError(t, store.CreateContact(contact))

	return contact
}

func TestContactCreateAndFind(t *testing.T) {
	store := InitializeTestDb()
	user := createTestUser(t, store)
	contact := createTestContact(t, store, user.ID)

	found, err := store.FindContact(fmt.Sprint(contact.ID))
	require.NoError(t, err)

	assert.Equal(t, "Test Contact", found.Name)
	assert.Equal(t, "10/12/1984", found.Dob)
	assert.Equal(t, int64(2065555555), found.Phone)
	assert.Equal(t, user.ID, found.UserID)
}

func TestFindContactNotFound(t *testing.T) {
	store := InitializeTestDb()

	testCases := []struct {
		desc string
		id   string
	}{
		{"non-existent id", "9999"},
		{"malformed id", "not-an-id"},
		{"empty id", ""},
	}

	for _, tcase := range testCases {
		t.Run(tcase.desc, func(t *testing.T) {
			_, err := store.FindContact(tcase.id)
			assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		})
	}
}

func TestUpdateContactAppliesOnlyGivenFields(t *testing.T) {
	store := InitializeTestDb()
	user := createTestUser(t, store)
	contact := createTestContact(t, store, user.ID)

	updated, err := store.UpdateContact(
		fmt.Sprint(contact.ID),
		map[string]interface{}{"name": "My Updated Contact", "phone": 2531111111},
	)
	require.NoError(t, err)

	assert.Equal(t, "My Updated Contact", updated.Name)
	assert.Equal(t, int64(2531111111), updated.Phone)

	// untouched fields survive the update
	assert.Equal(t, "10/12/1984", updated.Dob)
	assert.Equal(t, user.ID, updated.UserID)
}

func TestUpdateContactNotFound(t *testing.T) {
	store := InitializeTestDb()

	_, err := store.UpdateContact("9999", map[string]interface{}{"name": "ghost"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteContactIsIdempotentNotFound(t *testing.T) {
	store := InitializeTestDb()
	user := createTestUser(t, store)
	contact := createTestContact(t, store, user.ID)
	contactID := fmt.Sprint(contact.ID)

	require.NoError(t, store.DeleteContact(contactID))

	// repeated deletes keep reporting not-found, never an unexpected error
	assert.True(t, errors.Is(store.DeleteContact(contactID), gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(store.DeleteContact(contactID), gorm.ErrRecordNotFound))
}

func TestContactsOwnedBy(t *testing.T) {
	store := InitializeTestDb()
	user := createTestUser(t, store)

	otherUser := &User{Email: "web@avengers.com", Password: "secure???"}
	require.NoError(t, store.CreateUser(otherUser))

	createTestContact(t, store, user.ID)
	createTestContact(t, store, user.ID)
	createTestContact(t, store, otherUser.ID)

	contacts, err := store.ContactsOwnedBy(user.ID)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)

	for _, contact := range contacts {
		assert.Equal(t, user.ID, contact.UserID)
	}
}
