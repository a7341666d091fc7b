package models

import "time"

type EmbedTemplate struct {
	ID                int64     `json:"id" db:"message_id"`
	Title             *string   `json:"title" db:"title"`
	Description       *string   `json:"description" db:"description"`
	Colour            *int64    `json:"colour" db:"colour"`
	ImageURL          *string   `json:"image_url" db:"image_url"`
	ThumbnailImageURL *string   `json:"thumbnail_image_url" db:"thumbnail_image_url"`
	AuthorName        string    `json:"author_name" db:"author_name"`
	AuthorNameURL     *string   `json:"author_name_url" db:"author_name_url"`
	AuthorIconURL     *string   `json:"author_icon_url" db:"author_icon_url"`
	FooterText        *string   `json:"footer_text" db:"footer_text"`
	FooterIconURL     *string   `json:"footer_icon_url" db:"footer_icon_url"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Fields returns the template contents as a fully populated EmbedFields.
func (t EmbedTemplate) Fields() EmbedFields {
	authorName := t.AuthorName
	return EmbedFields{
		Title:             t.Title,
		Description:       t.Description,
		Colour:            t.Colour,
		ImageURL:          t.ImageURL,
		ThumbnailImageURL: t.ThumbnailImageURL,
		AuthorName:        &authorName,
		AuthorNameURL:     t.AuthorNameURL,
		AuthorIconURL:     t.AuthorIconURL,
		FooterText:        t.FooterText,
		FooterIconURL:     t.FooterIconURL,
	}
}

// EmbedFields carries the user supplied parts of a template. A nil field was
// not supplied; a pointer to "" was supplied as empty.
type EmbedFields struct {
	Title             *string
	Description       *string
	Colour            *int64
	ImageURL          *string
	ThumbnailImageURL *string
	AuthorName        *string
	AuthorNameURL     *string
	AuthorIconURL     *string
	FooterText        *string
	FooterIconURL     *string
}

func (f EmbedFields) IsEmpty() bool {
	return f == EmbedFields{}
}

type TemplateSummary struct {
	ID        int64     `json:"id" db:"message_id"`
	Title     *string   `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
