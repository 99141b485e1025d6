package dto

import (
	"time"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
)

type Region struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Emirate NamedItem `json:"emirate"`
}

type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	RegionID  uint      `json:"region_id"`
	Region    *Region   `json:"region,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser never exposes the password hash. Region is included when loaded.
func NewUser(u models.User, lang i18n.Lang) User {
	out := User{
		ID:        u.ID.String(),
		Phone:     u.Phone,
		Email:     u.Email,
		Name:      u.Name,
		Address:   u.Address,
		Role:      u.Role,
		RegionID:  u.RegionID,
		CreatedAt: u.CreatedAt,
	}
	if u.Region.ID != 0 {
		out.Region = &Region{
			ID:   u.Region.ID,
			Name: i18n.Localized(u.Region, lang),
			Emirate: NamedItem{
				ID:   u.Region.Emirate.ID,
				Name: i18n.Localized(u.Region.Emirate, lang),
			},
		}
	}
	return out
}

type AuthResult struct {
	AccessToken string `json:"accessToken"`
	User        any    `json:"user"`
}

type Admin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func NewAdmin(a models.Admin) Admin {
	return Admin{ID: a.ID.String(), Email: a.Email, Name: a.Name, Role: a.Role}
}
