package models

// Pic is the metadata record for an uploaded picture. ObjectKey & ImageURI
// are set from a successful object-store upload before the record is created,
// never after.
type Pic struct {
	BaseModel
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	ObjectKey string `json:"objectKey" gorm:"not null"`
	ImageURI  string `json:"imageURI" gorm:"not null"`
	UserID    uint   `json:"userID" gorm:"not null"`
	ContactID uint   `json:"contactID" gorm:"not null"`
}

func (store *Store) CreatePic(pic *Pic) error {
	return store.db.Create(pic).Error
}

func (store *Store) FindPicsBy(field string, value interface{}) ([]Pic, error) {
	pics := []Pic{}
	err := store.db.Find(&pics, field+" = ?", value).Error
	if err != nil {
		return nil, err
	}

	return pics, nil
}
