package repositories

import (
	"context"
	"time"

	"librental/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// BookRepository defines book repository interface.
// The availability counter updates are plain UPDATE expressions without
// locking; concurrent rentals of the last copy can both succeed.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByExternalID(ctx context.Context, externalID int64) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	ExistsByExternalID(ctx context.Context, externalID int64) (bool, error)
	DecrementAvailable(ctx context.Context, externalID int64) error
	IncrementAvailable(ctx context.Context, externalID int64) error
}

// ReservationRepository defines reservation repository interface
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	List(ctx context.Context, offset, limit int) ([]*models.Reservation, int64, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.Reservation, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Reservation, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Reservation, error)
}
