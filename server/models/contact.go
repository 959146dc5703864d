package models

import "gorm.io/gorm"

// ContactUpdatableFields are the only attributes a PUT may touch. 'user_id'
// is deliberately absent - a contact's owner never changes after creation.
var ContactUpdatableFields = map[string]bool{
	"name":  true,
	"dob":   true,
	"phone": true,
}

type Contact struct {
	BaseModel
	Name   string `json:"name" validate:"required"`
	Dob    string `json:"dob" validate:"required"`
	Phone  int64  `json:"phone" validate:"required"`
	UserID uint   `json:"userID" gorm:"not null"`
	Pics   []Pic  `json:"pics,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (store *Store) CreateContact(contact *Contact) error {
	return store.db.Create(contact).Error
}

// FindContact fetches a contact by id. Lookup is by id only; contacts are not
// scoped to the requesting user.
func (store *Store) FindContact(id string) (*Contact, error) {
	contactID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	contact := Contact{}
	if err := store.db.First(&contact, contactID).Error; err != nil {
		return nil, err
	}

	return &contact, nil
}

// UpdateContact applies the given fields to the contact & returns the
// post-update record.
func (store *Store) UpdateContact(id string, data map[string]interface{}) (*Contact, error) {
	contact, err := store.FindContact(id)
	if err != nil {
		return nil, err
	}

	err = store.db.Model(contact).Updates(data).Error
	if err != nil {
		return nil, err
	}

	return store.FindContact(id)
}

func (store *Store) DeleteContact(id string) error {
	contactID, err := parseID(id)
	if err != nil {
		return err
	}

	result := store.db.Delete(&Contact{}, contactID)
	if result.Error != nil {
		return result.Error
	}

	// Deleting an absent record reports not-found, so repeated
	// deletes of the same id stay a 404 & never a 500.
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (store *Store) ContactsOwnedBy(userID uint) ([]Contact, error) {
	contacts := []Contact{}
	err := store.db.Limit(500).Find(&contacts, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}
