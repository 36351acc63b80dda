package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/readshelf/readshelf/pkg/data"
)

const booksPath = "/rest/v1/books"

// cardProjection is the field set the list view needs; review text is
// left out of list payloads.
const cardProjection = "id,title,author,status,rating,is_favorite,reading_progress,created_at"

// Books is the record store surface for the books table. Row-level
// ownership is enforced server-side: every call is scoped to the
// identity behind the token, so reads never filter by user_id here.
type Books struct {
	c *Client
}

// bookPayload is the full editable field set. Absent author/review are
// sent as explicit nulls so a replace-style update clears them.
type bookPayload struct {
	Title           string      `json:"title"`
	Author          *string     `json:"author"`
	Status          data.Status `json:"status"`
	Rating          *int        `json:"rating"`
	Review          *string     `json:"review"`
	IsFavorite      bool        `json:"is_favorite"`
	ReadingProgress int         `json:"reading_progress"`
	UserID          string      `json:"user_id,omitempty"`
}

func payload(d data.BookDraft, userID string) bookPayload {
	d = d.Normalized()
	return bookPayload{
		Title:           d.Title,
		Author:          d.OptAuthor(),
		Status:          d.Status,
		Rating:          d.Rating,
		Review:          d.OptReview(),
		IsFavorite:      d.IsFavorite,
		ReadingProgress: d.ReadingProgress,
		UserID:          userID,
	}
}

// List returns the user's books newest first, projected for card
// display.
func (b *Books) List(ctx context.Context, token string) ([]data.Book, error) {
	q := url.Values{
		"select": {cardProjection},
		"order":  {"created_at.desc"},
	}
	var rows []data.Book
	if err := b.c.do(ctx, http.MethodGet, booksPath, q, token, "", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Get fetches one book by id. A lookup that matches no visible row
// returns ErrNotFound, which also covers rows owned by someone else.
func (b *Books) Get(ctx context.Context, token, id string) (*data.Book, error) {
	q := url.Values{
		"id":     {"eq." + id},
		"select": {"*"},
	}
	var rows []data.Book
	if err := b.c.do(ctx, http.MethodGet, booksPath, q, token, "", nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// Insert creates a book owned by userID and returns the stored row.
func (b *Books) Insert(ctx context.Context, token, userID string, d data.BookDraft) (*data.Book, error) {
	var rows []data.Book
	err := b.c.do(ctx, http.MethodPost, booksPath, nil, token, "return=representation", payload(d, userID), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("backend: insert returned no row")
	}
	return &rows[0], nil
}

// Update replaces the editable fields of the book and returns the
// stored row. Updating a row the user cannot see yields ErrNotFound.
func (b *Books) Update(ctx context.Context, token, id string, d data.BookDraft) (*data.Book, error) {
	q := url.Values{"id": {"eq." + id}}
	var rows []data.Book
	err := b.c.do(ctx, http.MethodPatch, booksPath, q, token, "return=representation", payload(d, ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// Delete removes the book. Deleting an invisible row is reported as
// ErrNotFound.
func (b *Books) Delete(ctx context.Context, token, id string) error {
	q := url.Values{"id": {"eq." + id}}
	var rows []data.Book
	err := b.c.do(ctx, http.MethodDelete, booksPath, q, token, "return=representation", nil, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}
