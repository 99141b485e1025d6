package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is created lazily, one per user.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// CartItem is a single (cart, color, size) line. Quantity is always >= 1.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line" json:"cart_id"`
	ColorID   uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"color_id"`
	Color     Color     `json:"color"`
	SizeCode  string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_cart_line" json:"size_code"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CartEvent is published after every successful cart mutation.
type CartEvent struct {
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	CartID    string    `json:"cart_id"`
	ItemID    uint      `json:"item_id"`
	ColorID   uint      `json:"color_id"`
	SizeCode  string    `json:"size_code"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	CartEventItemAdded   = "cart.item_added"
	CartEventItemUpdated = "cart.item_updated"
	CartEventItemRemoved = "cart.item_removed"
)
