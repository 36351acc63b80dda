package data

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Status is the reading state of a book.
type Status string

const (
	StatusWantToRead Status = "want_to_read"
	StatusReading    Status = "reading"
	StatusRead       Status = "read"
)

// Statuses lists all states in display order.
var Statuses = []Status{StatusWantToRead, StatusReading, StatusRead}

func (s Status) Valid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusRead:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusWantToRead:
		return "Want to read"
	case StatusReading:
		return "Reading"
	case StatusRead:
		return "Read"
	}
	return string(s)
}

// Book is one row of the backend "books" table. The server assigns ID,
// UserID and CreatedAt; the client never writes them back.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          *string   `json:"author,omitempty"`
	Status          Status    `json:"status"`
	Rating          *int      `json:"rating,omitempty"`
	Review          *string   `json:"review,omitempty"`
	IsFavorite      bool      `json:"is_favorite"`
	ReadingProgress int       `json:"reading_progress"`
	UserID          string    `json:"user_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (b Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return *b.Author
}

// BookDraft holds the editable fields of a Book as a single value.
// Forms work on plain string fields; Normalized collapses the
// whitespace-only ones so they are stored as absent.
type BookDraft struct {
	Title           string `validate:"required"`
	Author          string
	Status          Status `validate:"required,oneof=want_to_read reading read"`
	Rating          *int   `validate:"omitempty,gte=1,lte=5"`
	Review          string
	IsFavorite      bool
	ReadingProgress int `validate:"gte=0,lte=100"`
}

// NewDraft returns the defaults used when creating a book.
func NewDraft() BookDraft {
	return BookDraft{Status: StatusWantToRead}
}

// DraftOf seeds a draft from an existing book for editing.
func DraftOf(b Book) BookDraft {
	var review string
	if b.Review != nil {
		review = *b.Review
	}
	return BookDraft{
		Title:           b.Title,
		Author:          b.AuthorName(),
		Status:          b.Status,
		Rating:          b.Rating,
		Review:          review,
		IsFavorite:      b.IsFavorite,
		ReadingProgress: b.ReadingProgress,
	}
}

// Normalized trims the title, author and review.
func (d BookDraft) Normalized() BookDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Author = strings.TrimSpace(d.Author)
	d.Review = strings.TrimSpace(d.Review)
	return d
}

// OptAuthor returns the author as stored: nil when blank.
func (d BookDraft) OptAuthor() *string { return optString(d.Author) }

// OptReview returns the review as stored: nil when blank.
func (d BookDraft) OptReview() *string { return optString(d.Review) }

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FieldError is one failed constraint on a draft field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string { return e.Field + " " + e.Reason }

var validate = validator.New()

// Validate checks the normalized draft and returns the list of field
// errors, empty when the draft is acceptable.
func (d BookDraft) Validate() []FieldError {
	err := validate.Struct(d.Normalized())
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "draft", Reason: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldName(fe.Field()), Reason: reason(fe)})
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "ReadingProgress":
		return "reading_progress"
	default:
		return strings.ToLower(structField)
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}
