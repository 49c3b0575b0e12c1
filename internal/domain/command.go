package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CommandType string

const (
	CommandDelivery CommandType = "delivery"
	CommandOnSite   CommandType = "on_site"
	CommandTakeaway CommandType = "takeaway"
)

func (t CommandType) Valid() bool {
	switch t {
	case CommandDelivery, CommandOnSite, CommandTakeaway:
		return true
	}
	return false
}

// FoodLineItem is one distinct food selection inside a command, with the
// customer's option selections frozen at order time.
type FoodLineItem struct {
	Item     Food                 `json:"item"`
	Quantity int                  `json:"quantity"`
	Options  []AccompanimentGroup `json:"options,omitempty"`
}

// MenuFood is one food embedded in a menu line. AdditionalPrice is the
// per-food surcharge a fixed-price menu may declare for this food; it is zero
// for per-food menus.
type MenuFood struct {
	Food            Food                 `json:"food"`
	Quantity        int                  `json:"quantity"`
	AdditionalPrice Money                `json:"additional_price"`
	Options         []AccompanimentGroup `json:"options,omitempty"`
}

// MenuLineItem is one menu selection inside a command. How it is priced
// depends on Item.Pricing.
type MenuLineItem struct {
	Item     Menu       `json:"item"`
	Quantity int        `json:"quantity"`
	Foods    []MenuFood `json:"foods,omitempty"`
}

// Command is the aggregate root for a placed order. Code is the stable
// human-facing order number, distinct from the internal id. Validated and
// Revoked are mutually exclusive terminal flags: once either is set the
// command is immutable.
type Command struct {
	ID              uuid.UUID
	Code            int
	RestaurantID    uuid.UUID
	Type            CommandType
	Items           []FoodLineItem
	Menus           []MenuLineItem
	Priceless       bool
	ShippingAddress *string
	ShippingTime    *time.Time
	DeliveryPrice   Money
	TotalPrice      Money
	Validated       bool
	Revoked         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var (
	ErrCommandFinalized   = errors.New("command is already validated or revoked")
	ErrCommandNotFound    = errors.New("command not found")
	ErrInvalidCommandType = errors.New("invalid command type")
)

// NewCommand builds a command from customer selections, applying structural
// business rules. Line items are expected to carry snapshots already (see
// AccompanimentGroup.Snapshot).
func NewCommand(restaurantID uuid.UUID, commandType CommandType, items []FoodLineItem, menus []MenuLineItem, shippingAddress *string, shippingTime *time.Time) (*Command, error) {
	cmd := &Command{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		Type:            commandType,
		Items:           items,
		Menus:           menus,
		ShippingAddress: shippingAddress,
		ShippingTime:    shippingTime,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Validate applies structural business rules.
func (c *Command) Validate() error {
	if !c.Type.Valid() {
		return ErrInvalidCommandType
	}

	if c.Type == CommandDelivery && (c.ShippingAddress == nil || len(*c.ShippingAddress) < 10) {
		return errors.New("shipping address required for delivery commands (min 10 characters)")
	}

	if len(c.Items) == 0 && len(c.Menus) == 0 {
		return errors.New("command must contain at least one food or menu")
	}

	for _, line := range c.Items {
		if line.Quantity < 1 {
			return errors.New("food line quantity must be at least 1")
		}
	}

	for _, line := range c.Menus {
		if line.Quantity < 1 {
			return errors.New("menu line quantity must be at least 1")
		}
		if !line.Item.Pricing.Valid() {
			return errors.New("menu line has an unknown pricing kind")
		}
	}

	return nil
}

// Finalized reports whether the command reached a terminal state.
func (c *Command) Finalized() bool {
	return c.Validated || c.Revoked
}

// MarkValidated sets the validated terminal flag. It refuses to touch a
// command that is already validated or revoked.
func (c *Command) MarkValidated() error {
	if c.Finalized() {
		return ErrCommandFinalized
	}
	c.Validated = true
	c.UpdatedAt = time.Now()
	return nil
}

// MarkRevoked sets the revoked terminal flag, under the same exclusion rule.
func (c *Command) MarkRevoked() error {
	if c.Finalized() {
		return ErrCommandFinalized
	}
	c.Revoked = true
	c.UpdatedAt = time.Now()
	return nil
}
