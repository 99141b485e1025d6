package dto

import (
	"time"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Items          []CartItem     `json:"items"`
	PaymentSummary PaymentSummary `json:"paymentSummary"`
}

type PaymentSummary struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

type CartItem struct {
	ID        uint       `json:"id"`
	CartID    string     `json:"cart_id"`
	ColorID   uint       `json:"color_id"`
	SizeCode  string     `json:"size_code"`
	Quantity  int        `json:"quantity"`
	Color     *CartColor `json:"color,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartColor is the color of a cart line with per-size, per-branch stock.
type CartColor struct {
	ID           uint        `json:"id"`
	ProductID    uint        `json:"product_id"`
	Slug         string      `json:"slug"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	ProductName  string      `json:"product_name"`
	ColorName    string      `json:"color_name"`
	MainImageURL string      `json:"main_image_url"`
	Image        string      `json:"image"`
	Price        float64     `json:"price"`
	Sizes        []SizeStock `json:"sizes"`
}

type SizeStock struct {
	ID          uint          `json:"id"`
	Code        string        `json:"code"`
	Hip         float64       `json:"hip"`
	Chest       float64       `json:"chest"`
	Quantity    int           `json:"quantity"`
	Inventories []BranchStock `json:"inventories"`
}

type BranchStock struct {
	ID                uint   `json:"id"`
	BranchID          uint   `json:"branch_id"`
	BranchName        string `json:"branch_name"`
	AvailableQuantity int    `json:"available_quantity"`
}

// NewCart projects a cart and its displayable lines. The total price is
// computed in decimal and only converted for the JSON body.
func NewCart(cart models.Cart, items []models.CartItem, lang i18n.Lang) Cart {
	out := Cart{
		ID:     cart.ID.String(),
		UserID: cart.UserID.String(),
		Items:  make([]CartItem, 0, len(items)),
	}

	total := decimal.Zero
	for _, item := range items {
		out.Items = append(out.Items, NewCartItem(item, lang))
		total = total.Add(item.Color.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	out.PaymentSummary = PaymentSummary{
		TotalItems: len(items),
		TotalPrice: total.Round(2).InexactFloat64(),
	}
	return out
}

// NewCartItem projects one line. The color block is present only when the
// color was loaded.
func NewCartItem(item models.CartItem, lang i18n.Lang) CartItem {
	out := CartItem{
		ID:        item.ID,
		CartID:    item.CartID.String(),
		ColorID:   item.ColorID,
		SizeCode:  item.SizeCode,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.Color.ID != 0 {
		color := NewCartColor(item.Color, lang)
		out.Color = &color
	}
	return out
}

func NewCartColor(c models.Color, lang i18n.Lang) CartColor {
	p := c.Product
	out := CartColor{
		ID:           c.ID,
		ProductID:    p.ID,
		Slug:         p.Slug,
		Code:         p.Code,
		Name:         fullName(p, c, lang),
		Description:  p.DescriptionText().In(lang),
		ProductName:  i18n.Localized(p, lang),
		ColorName:    i18n.Localized(c, lang),
		MainImageURL: p.MainImageURL,
		Image:        c.Image,
		Price:        p.Price.InexactFloat64(),
		Sizes:        make([]SizeStock, 0, len(c.Sizes)),
	}
	for _, s := range c.Sizes {
		size := SizeStock{
			ID:          s.ID,
			Code:        s.SizeCode,
			Hip:         s.Hip,
			Chest:       s.Chest,
			Quantity:    s.Available(),
			Inventories: make([]BranchStock, 0, len(s.Inventories)),
		}
		for _, inv := range s.Inventories {
			size.Inventories = append(size.Inventories, BranchStock{
				ID:                inv.ID,
				BranchID:          inv.BranchID,
				BranchName:        i18n.Localized(inv.Branch, lang),
				AvailableQuantity: inv.Available(),
			})
		}
		out.Sizes = append(out.Sizes, size)
	}
	return out
}

func fullName(p models.Product, c models.Color, lang i18n.Lang) string {
	return i18n.Localized(p, lang) + " - " + i18n.Localized(c, lang)
}
