package catalog

import "encoding/json"

// Book is one catalog record as stored by the backend.
// The identifier is server-assigned and immutable; ImageURL and
// ImagePublicID are either both set or both empty.
type Book struct {
	ID              string `json:"_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Genre           string `json:"genre"`
	Description     string `json:"description,omitempty"`
	Available       bool   `json:"available"`
	ImageURL        string `json:"image_url,omitempty"`
	ImagePublicID   string `json:"image_public_id,omitempty"`
}

// UnmarshalJSON accepts records keyed by either "_id" (Mongo-style) or "id".
func (b *Book) UnmarshalJSON(data []byte) error {
	type alias Book
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = aux.AltID
	}
	return nil
}

// HasImage reports whether the record carries a cover image.
func (b Book) HasImage() bool {
	return b.ImageURL != "" && b.ImagePublicID != ""
}

// ByID returns the first book with the given ID, or nil.
func ByID(books []Book, id string) *Book {
	for i := range books {
		if books[i].ID == id {
			return &books[i]
		}
	}
	return nil
}
