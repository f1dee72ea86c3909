package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Users & Auth Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// User Roles
const (
	RoleUser      = "USER"
	RoleLibrarian = "LIBRARIAN"
	RoleAdmin     = "ADMIN"
)

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog Tables
// ============================================================

// Book represents books table. ExternalID is the identifier of the
// title in the upstream catalog; the public API addresses books by it.
// Price may be absent for titles the catalog carries without pricing.
type Book struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	ExternalID        int64               `gorm:"uniqueIndex;not null" json:"external_id"`
	Title             string              `gorm:"size:255;not null" json:"title"`
	Author            string              `gorm:"size:255" json:"author"`
	Price             decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price"`
	StockQuantity     int                 `gorm:"not null;default:0" json:"stock_quantity"`
	AvailableQuantity int                 `gorm:"not null;default:0" json:"available_quantity"`
	CreatedAt         time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// BookResponse DTO
type BookResponse struct {
	ExternalID        int64               `json:"external_id"`
	Title             string              `json:"title"`
	Author            string              `json:"author,omitempty"`
	Price             decimal.NullDecimal `json:"price"`
	StockQuantity     int                 `json:"stock_quantity"`
	AvailableQuantity int                 `json:"available_quantity"`
	CreatedAt         time.Time           `json:"created_at"`
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ExternalID:        b.ExternalID,
		Title:             b.Title,
		Author:            b.Author,
		Price:             b.Price,
		StockQuantity:     b.StockQuantity,
		AvailableQuantity: b.AvailableQuantity,
		CreatedAt:         b.CreatedAt,
	}
}

// ============================================================
// Rental Tables
// ============================================================

// Reservation Statuses. A reservation leaves ACTIVE exactly once, on
// the return event; RETURNED and OVERDUE are terminal.
const (
	ReservationStatusActive   = "ACTIVE"
	ReservationStatusReturned = "RETURNED"
	ReservationStatusOverdue  = "OVERDUE"
)

// Reservation represents reservations table (one rental transaction)
type Reservation struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	UserID             uint                `gorm:"not null;index" json:"user_id"`
	BookID             uint                `gorm:"not null;index" json:"book_id"`
	RentalDays         int                 `gorm:"not null" json:"rental_days"`
	StartDate          time.Time           `gorm:"type:date;not null" json:"start_date"`
	ExpectedReturnDate time.Time           `gorm:"type:date;not null;index" json:"expected_return_date"`
	ActualReturnDate   *time.Time          `gorm:"type:date" json:"actual_return_date"`
	DailyRate          decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"daily_rate"`
	TotalFee           decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"total_fee"`
	LateFee            decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"late_fee"`
	Status             string              `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// IsTerminal reports whether the reservation already left ACTIVE
func (r *Reservation) IsTerminal() bool {
	return r.Status != ReservationStatusActive
}

// ReservationResponse DTO
type ReservationResponse struct {
	ID                 uint                `json:"id"`
	UserID             uint                `json:"user_id"`
	UserName           string              `json:"user_name,omitempty"`
	BookExternalID     int64               `json:"book_external_id,omitempty"`
	BookTitle          string              `json:"book_title,omitempty"`
	RentalDays         int                 `json:"rental_days"`
	StartDate          time.Time           `json:"start_date"`
	ExpectedReturnDate time.Time           `json:"expected_return_date"`
	ActualReturnDate   *time.Time          `json:"actual_return_date"`
	DailyRate          decimal.NullDecimal `json:"daily_rate"`
	TotalFee           decimal.Decimal     `json:"total_fee"`
	LateFee            decimal.Decimal     `json:"late_fee"`
	Status             string              `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
}

func (r *Reservation) ToResponse() *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		RentalDays:         r.RentalDays,
		StartDate:          r.StartDate,
		ExpectedReturnDate: r.ExpectedReturnDate,
		ActualReturnDate:   r.ActualReturnDate,
		DailyRate:          r.DailyRate,
		TotalFee:           r.TotalFee,
		LateFee:            r.LateFee,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
	}

	if r.User != nil {
		resp.UserName = r.User.Name
	}
	if r.Book != nil {
		resp.BookExternalID = r.Book.ExternalID
		resp.BookTitle = r.Book.Title
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Book{},
		&Reservation{},
	)
}
