package models

import (
	"errors"
	"fmt"

	"github.com/rolodexhq/rolodex/server/auth"
	"gorm.io/gorm"
)

var allUserFieldsExceptPassword = []string{"id",
	"email",
	"created_at",
	"updated_at",
}

type User struct {
	BaseModel
	Email    string    `json:"email" validate:"required,email" gorm:"not null;unique"`
	Password string    `json:"password,omitempty" validate:"required,min=8" gorm:"not null"`
	Contacts []Contact `json:"contacts,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Pics     []Pic     `json:"pics,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreateUser stores a new user record, with the password replaced by its hash.
func (store *Store) CreateUser(user *User) error {
	passwordHash, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = passwordHash

	return store.db.Create(user).Error
}

func (store *Store) FindUserBy(field string, value interface{}) (*User, error) {
	user := User{}
	err := store.db.Select(allUserFieldsExceptPassword).First(&user, fmt.Sprintf("%v = ?", field), value).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (store *Store) FindUserPassword(email string) (string, error) {
	user := &User{}
	err := store.db.Select("Password").First(user, "email = ?", email).Error
	if err != nil {
		return "", err
	}

	return user.Password, nil
}

func (store *Store) DeleteUser(id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}

	return store.db.Delete(&User{}, userID).Error
}

func (store *Store) UserExists(id string) bool {
	userID, err := parseID(id)
	if err != nil {
		return false
	}

	err = store.db.Select("id").First(&User{}, userID).Error
	return !errors.Is(err, gorm.ErrRecordNotFound)
}
