package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"easypack/internal/kv"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrAlreadyLiked      = errors.New("already liked in this session")
	ErrCorruptSnapshot   = errors.New("review snapshot cannot be decoded")
	QueryTimeoutDuration = time.Second * 5
)

// ValidationError reports a rejected field on a create operation. It is
// surfaced to clients as a 400 and never logged as a server error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type Storage struct {
	Users interface {
		Create(context.Context, *User) error
		GetByUserID(context.Context, string) (*User, error)
		GetByID(context.Context, int64) (*User, error)
		Update(context.Context, int64, map[string]interface{}) error
	}
	Reviews interface {
		List(context.Context) ([]Review, error)
		Create(context.Context, Country, int, string, string) (*Review, error)
		Delete(context.Context, string) error
		ToggleLike(context.Context, string) error
		AddComment(ctx context.Context, reviewID, author, text string) (*Comment, error)
		DeleteComment(ctx context.Context, reviewID, commentID string) error
		LikeComment(ctx context.Context, commentID string) error
		AddReply(ctx context.Context, reviewID, commentID, author, text string) (*Reply, error)
		DeleteReply(ctx context.Context, reviewID, commentID, replyID string) error
		LikeReply(ctx context.Context, replyID string) error
		Board(context.Context, Country) ([]Review, error)
		LatestPerCountry(context.Context) (map[Country]Review, error)
		Popular(context.Context, int) ([]Review, error)
		Reset(context.Context) error
	}
}

func NewStorage(db *pgxpool.Pool, snapshots kv.Store) Storage {
	return Storage{
		Users:   &UsersStore{db: db},
		Reviews: NewReviewStore(snapshots),
	}
}
