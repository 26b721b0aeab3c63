package catalog

import (
	"fmt"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FormBuffer holds the in-progress edit state for one book. It is an owned
// value: views copy it in and out of transitions, there is no shared
// singleton. Fields mirror the form inputs, so the year is kept as text
// until validation.
type FormBuffer struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear string `json:"publication_year"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	Available       bool   `json:"available"`
}

// FormFromBook populates a buffer from an existing record for editing.
func FormFromBook(b Book) FormBuffer {
	year := ""
	if b.PublicationYear != 0 {
		year = strconv.Itoa(b.PublicationYear)
	}
	return FormBuffer{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: year,
		Genre:           b.Genre,
		Description:     b.Description,
		Available:       b.Available,
	}
}

// ValidationError is a client-side rejection: nothing was sent.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validate checks the buffer before any network call. Required-field
// presence is checked first; only if all fields are present is the year
// parsed and range-checked against [1000, now.Year()+10].
func (f FormBuffer) Validate(now time.Time) error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Author, validation.Required),
		validation.Field(&f.ISBN, validation.Required),
		validation.Field(&f.PublicationYear, validation.Required),
		validation.Field(&f.Genre, validation.Required),
	)
	if err != nil {
		return &ValidationError{msg: fmt.Sprintf("please fill in all required fields (%v)", err)}
	}

	year, err := strconv.Atoi(f.PublicationYear)
	if err != nil {
		return &ValidationError{msg: "please enter a valid publication year"}
	}
	maxYear := now.Year() + 10
	if err := validation.Validate(year, validation.Min(1000), validation.Max(maxYear)); err != nil {
		return &ValidationError{msg: fmt.Sprintf("publication year must be between 1000 and %d", maxYear)}
	}
	return nil
}

// Year returns the parsed publication year. Call after Validate.
func (f FormBuffer) Year() int {
	y, _ := strconv.Atoi(f.PublicationYear)
	return y
}

// CreateBody builds the POST /books/ payload. The image fields are always
// present; empty strings become explicit nulls since a brand-new record has
// nothing to leave unchanged.
func (f FormBuffer) CreateBody(imageURL, imagePublicID string) map[string]any {
	body := f.baseBody()
	body["image_url"] = nullable(imageURL)
	body["image_public_id"] = nullable(imagePublicID)
	return body
}

// UpdateBody builds the PUT /books/{id} payload. Image fields are included
// only when the caller intends to change them: explicit nulls on removal,
// new values after a session upload, omitted entirely otherwise so the
// server keeps whatever is persisted.
func (f FormBuffer) UpdateBody(imageURL, imagePublicID string, removeImage bool) map[string]any {
	body := f.baseBody()
	switch {
	case removeImage:
		body["image_url"] = nil
		body["image_public_id"] = nil
	case imageURL != "" && imagePublicID != "":
		body["image_url"] = imageURL
		body["image_public_id"] = imagePublicID
	}
	return body
}

func (f FormBuffer) baseBody() map[string]any {
	return map[string]any{
		"title":            f.Title,
		"author":           f.Author,
		"isbn":             f.ISBN,
		"publication_year": f.Year(),
		"genre":            f.Genre,
		"description":      nullable(f.Description),
		"available":        f.Available,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
