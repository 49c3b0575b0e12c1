package domain

import (
	"time"

	"github.com/google/uuid"
)

// MenuPricing is the closed set of menu pricing kinds. Every pricing branch
// must handle all three; an unknown kind is a fault, never a zero price.
type MenuPricing string

const (
	MenuPerFood    MenuPricing = "per_food"
	MenuFixedPrice MenuPricing = "fixed_price"
	MenuPriceless  MenuPricing = "priceless"
)

func (p MenuPricing) Valid() bool {
	switch p {
	case MenuPerFood, MenuFixedPrice, MenuPriceless:
		return true
	}
	return false
}

// Restaurant is the tenant a storefront session browses and an admin manages.
type Restaurant struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	City          string    `json:"city"`
	Currency      string    `json:"currency"`
	DeliveryPrice Money     `json:"delivery_price"`
	Open          bool      `json:"open"`
	CreatedAt     time.Time `json:"created_at"`
}

type Food struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Lang         string    `json:"lang"`
	Price        Money     `json:"price"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

type Menu struct {
	ID           uuid.UUID   `json:"id"`
	RestaurantID uuid.UUID   `json:"restaurant_id"`
	Name         string      `json:"name"`
	Pricing      MenuPricing `json:"pricing"`
	Price        Money       `json:"price"`
	CreatedAt    time.Time   `json:"created_at"`
}

// FoodFilter narrows a storefront food listing.
type FoodFilter struct {
	Lang         string
	RestaurantID *uuid.UUID
	Category     string
	Limit        int
}

type BlogPost struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
}
