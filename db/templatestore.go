package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zarkopopovski/embed-bot/models"
)

var (
	ErrNoFieldsToUpdate   = errors.New("db: no fields to update")
	ErrAuthorNameRequired = errors.New("db: author name is required")
)

// column pairs an updatable column with the value supplied for it, if any.
type column struct {
	name    string
	present bool
	value   any
}

// updatableColumns is the allow-list of columns a partial update may set, in
// the order they appear in the generated SET clause.
func updatableColumns(fields models.EmbedFields) []column {
	return []column{
		{"title", fields.Title != nil, fields.Title},
		{"description", fields.Description != nil, fields.Description},
		{"colour", fields.Colour != nil, fields.Colour},
		{"image_url", fields.ImageURL != nil, fields.ImageURL},
		{"thumbnail_image_url", fields.ThumbnailImageURL != nil, fields.ThumbnailImageURL},
		{"author_name", fields.AuthorName != nil, fields.AuthorName},
		{"author_name_url", fields.AuthorNameURL != nil, fields.AuthorNameURL},
		{"author_icon_url", fields.AuthorIconURL != nil, fields.AuthorIconURL},
		{"footer_text", fields.FooterText != nil, fields.FooterText},
		{"footer_icon_url", fields.FooterIconURL != nil, fields.FooterIconURL},
	}
}

// buildUpdateQuery returns the UPDATE statement and its positional arguments
// for the supplied fields, with id bound last. ok is false when no field was
// supplied.
func buildUpdateQuery(id int64, fields models.EmbedFields) (query string, args []any, ok bool) {
	assignments := make([]string, 0)

	for _, col := range updatableColumns(fields) {
		if !col.present {
			continue
		}
		assignments = append(assignments, col.name+" = ?")
		args = append(args, col.value)
	}

	if len(assignments) == 0 {
		return "", nil, false
	}

	args = append(args, id)

	query = "UPDATE messages SET " + strings.Join(assignments, ", ") + " WHERE message_id = ?"

	return query, args, true
}

func (dbManager *DBManager) CreateTemplate(ctx context.Context, fields models.EmbedFields) (int64, error) {
	if fields.AuthorName == nil {
		return 0, ErrAuthorNameRequired
	}

	queryStr := `INSERT INTO messages(title, description, colour, image_url, thumbnail_image_url,
		author_name, author_name_url, author_icon_url, footer_text, footer_icon_url)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := dbManager.DB.ExecContext(ctx, queryStr,
		fields.Title,
		fields.Description,
		fields.Colour,
		fields.ImageURL,
		fields.ThumbnailImageURL,
		*fields.AuthorName,
		fields.AuthorNameURL,
		fields.AuthorIconURL,
		fields.FooterText,
		fields.FooterIconURL,
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted message id: %w", err)
	}

	return id, nil
}

// GetTemplate returns found=false with a nil error when id does not exist.
func (dbManager *DBManager) GetTemplate(ctx context.Context, id int64) (models.EmbedTemplate, bool, error) {
	queryStr := "SELECT * FROM messages WHERE message_id = ?"

	template := models.EmbedTemplate{}

	err := dbManager.DB.GetContext(ctx, &template, queryStr, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EmbedTemplate{}, false, nil
	}
	if err != nil {
		return models.EmbedTemplate{}, false, fmt.Errorf("get message %d: %w", id, err)
	}

	return template, true, nil
}

func (dbManager *DBManager) ListTemplateSummaries(ctx context.Context) ([]models.TemplateSummary, error) {
	queryStr := "SELECT message_id, title, created_at FROM messages ORDER BY message_id ASC"

	summaries := make([]models.TemplateSummary, 0)

	if err := dbManager.DB.SelectContext(ctx, &summaries, queryStr); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return summaries, nil
}

// UpdateTemplate sets only the supplied fields and reports whether exactly
// one row changed. It returns ErrNoFieldsToUpdate without touching storage
// when nothing was supplied.
func (dbManager *DBManager) UpdateTemplate(ctx context.Context, id int64, fields models.EmbedFields) (bool, error) {
	queryStr, args, ok := buildUpdateQuery(id, fields)
	if !ok {
		return false, ErrNoFieldsToUpdate
	}

	result, err := dbManager.DB.ExecContext(ctx, queryStr, args...)
	if err != nil {
		return false, fmt.Errorf("update message %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update message %d: %w", id, err)
	}

	return affected == 1, nil
}

func (dbManager *DBManager) DeleteTemplate(ctx context.Context, id int64) (bool, error) {
	queryStr := "DELETE FROM messages WHERE message_id = ?"

	result, err := dbManager.DB.ExecContext(ctx, queryStr, id)
	if err != nil {
		return false, fmt.Errorf("delete message %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete message %d: %w", id, err)
	}

	return affected > 0, nil
}
