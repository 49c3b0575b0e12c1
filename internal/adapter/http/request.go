package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
)

var validate = validator.New()

// MoneyRequest follows the domain's empty-currency convention: a zero amount
// may omit the currency code, so optional prices (a per-food menu's
// additional_price, a free option item) validate as their zero value.
type MoneyRequest struct {
	Amount   int64  `json:"amount" validate:"gte=0"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

func (m MoneyRequest) toDomain() domain.Money {
	return domain.Money{Amount: m.Amount, Currency: m.Currency}
}

type AccompanimentItemRequest struct {
	ID           string       `json:"id" validate:"omitempty,uuid"`
	Name         string       `json:"name" validate:"required"`
	Price        MoneyRequest `json:"price"`
	IsObligatory bool         `json:"is_obligatory"`
}

type GroupEntryRequest struct {
	Item     AccompanimentItemRequest `json:"item"`
	Quantity int                      `json:"quantity" validate:"gte=0"`
}

type AccompanimentGroupRequest struct {
	ID           string              `json:"id" validate:"omitempty,uuid"`
	Title        string              `json:"title" validate:"required"`
	MaxOptions   int                 `json:"max_options" validate:"gte=0"`
	Items        []GroupEntryRequest `json:"items" validate:"dive"`
	IsObligatory bool                `json:"is_obligatory"`
}

// SaveAccompanimentsRequest carries the editor's full ordered collection;
// there is no delta form.
type SaveAccompanimentsRequest struct {
	Groups []AccompanimentGroupRequest `json:"groups" validate:"dive"`
}

func (r SaveAccompanimentsRequest) toDomain() []domain.AccompanimentGroup {
	out := make([]domain.AccompanimentGroup, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.toDomain()
	}
	return out
}

func (g AccompanimentGroupRequest) toDomain() domain.AccompanimentGroup {
	items := make([]domain.GroupEntry, len(g.Items))
	for i, e := range g.Items {
		items[i] = domain.GroupEntry{
			Item: domain.AccompanimentItem{
				ID:           parseOptionalID(e.Item.ID),
				Name:         e.Item.Name,
				Price:        e.Item.Price.toDomain(),
				IsObligatory: e.Item.IsObligatory,
			},
			Quantity: e.Quantity,
		}
	}
	return domain.AccompanimentGroup{
		ID:           parseOptionalID(g.ID),
		Title:        g.Title,
		MaxOptions:   g.MaxOptions,
		Items:        items,
		IsObligatory: g.IsObligatory,
	}
}

type FoodRequest struct {
	ID    string       `json:"id" validate:"required,uuid"`
	Name  string       `json:"name" validate:"required"`
	Price MoneyRequest `json:"price"`
}

func (f FoodRequest) toDomain() domain.Food {
	return domain.Food{
		ID:    parseOptionalID(f.ID),
		Name:  f.Name,
		Price: f.Price.toDomain(),
	}
}

type FoodLineRequest struct {
	Item     FoodRequest                 `json:"item"`
	Quantity int                         `json:"quantity" validate:"min=1"`
	Options  []AccompanimentGroupRequest `json:"options" validate:"dive"`
}

type MenuRequest struct {
	ID      string       `json:"id" validate:"required,uuid"`
	Name    string       `json:"name" validate:"required"`
	Pricing string       `json:"pricing" validate:"required,oneof=per_food fixed_price priceless"`
	Price   MoneyRequest `json:"price"`
}

type MenuFoodRequest struct {
	Food            FoodRequest                 `json:"food"`
	Quantity        int                         `json:"quantity" validate:"min=1"`
	AdditionalPrice MoneyRequest                `json:"additional_price"`
	Options         []AccompanimentGroupRequest `json:"options" validate:"dive"`
}

type MenuLineRequest struct {
	Item     MenuRequest       `json:"item"`
	Quantity int               `json:"quantity" validate:"min=1"`
	Foods    []MenuFoodRequest `json:"foods" validate:"dive"`
}

// CommandDraftRequest is the cart a storefront session submits for estimation
// or checkout. Line items carry record snapshots rather than bare ids: the
// price shown and the price charged must come from the same data.
type CommandDraftRequest struct {
	RestaurantID    string            `json:"restaurant_id" validate:"required,uuid"`
	Type            string            `json:"type" validate:"required,oneof=delivery on_site takeaway"`
	Items           []FoodLineRequest `json:"items" validate:"dive"`
	Menus           []MenuLineRequest `json:"menus" validate:"dive"`
	Priceless       bool              `json:"priceless"`
	ShippingAddress *string           `json:"shipping_address,omitempty"`
	ShippingTime    *time.Time        `json:"shipping_time,omitempty"`
}

func (r CommandDraftRequest) toDraft() interfaces.CommandDraft {
	draft := interfaces.CommandDraft{
		RestaurantID:    parseOptionalID(r.RestaurantID),
		Type:            domain.CommandType(r.Type),
		Priceless:       r.Priceless,
		ShippingAddress: r.ShippingAddress,
		ShippingTime:    r.ShippingTime,
	}

	for _, line := range r.Items {
		draft.Items = append(draft.Items, domain.FoodLineItem{
			Item:     line.Item.toDomain(),
			Quantity: line.Quantity,
			Options:  groupsToDomain(line.Options),
		})
	}

	for _, line := range r.Menus {
		menu := domain.MenuLineItem{
			Item: domain.Menu{
				ID:      parseOptionalID(line.Item.ID),
				Name:    line.Item.Name,
				Pricing: domain.MenuPricing(line.Item.Pricing),
				Price:   line.Item.Price.toDomain(),
			},
			Quantity: line.Quantity,
		}
		for _, mf := range line.Foods {
			menu.Foods = append(menu.Foods, domain.MenuFood{
				Food:            mf.Food.toDomain(),
				Quantity:        mf.Quantity,
				AdditionalPrice: mf.AdditionalPrice.toDomain(),
				Options:         groupsToDomain(mf.Options),
			})
		}
		draft.Menus = append(draft.Menus, menu)
	}

	return draft
}

func groupsToDomain(groups []AccompanimentGroupRequest) []domain.AccompanimentGroup {
	if len(groups) == 0 {
		return nil
	}
	out := make([]domain.AccompanimentGroup, len(groups))
	for i, g := range groups {
		out[i] = g.toDomain()
	}
	return out
}

// parseOptionalID trusts the validator to have rejected malformed uuids; an
// empty string becomes the nil id (a new record).
func parseOptionalID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, _ := uuid.Parse(s)
	return id
}
