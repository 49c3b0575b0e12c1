package pricing

import (
	"errors"
	"fmt"

	"resto-platform/internal/domain"
)

// ErrComputationFault marks inputs the engine refuses to price: negative
// amounts or quantities, mixed currencies, unknown pricing kinds. These are
// programmer errors upstream, never clamped or silently priced at zero.
var ErrComputationFault = errors.New("pricing computation fault")

// Engine derives a total and a per-line breakdown from a command. It is a
// pure function over its input: the command is never mutated and repeated
// calls return identical results.
type Engine struct {
	// ScaleAdditionalPriceByMenuQuantity controls whether a fixed-price
	// menu's per-food surcharge is multiplied by the menu line quantity.
	// The historical behavior adds the surcharge once per line regardless
	// of quantity; product has not yet confirmed which reading is
	// intended, so both are supported and tested.
	ScaleAdditionalPriceByMenuQuantity bool
}

// BreakdownLine is one labelled amount in a command breakdown. Amount is the
// full contribution of the line in minor units, option sub-lines included.
type BreakdownLine struct {
	Label    string          `json:"label"`
	Quantity int             `json:"quantity"`
	Amount   int64           `json:"amount"`
	Options  []BreakdownLine `json:"options,omitempty"`
}

// CommandBreakdown is the ordered, priced composition of a command: food
// lines first, then menu lines, then the delivery surcharge when present.
type CommandBreakdown struct {
	Currency string          `json:"currency"`
	Lines    []BreakdownLine `json:"lines"`
	Total    int64           `json:"total"`
}

// EstimateCommand returns the command total in minor units.
func (e Engine) EstimateCommand(cmd *domain.Command) (int64, error) {
	bd, err := e.Breakdown(cmd)
	if err != nil {
		return 0, err
	}
	return bd.Total, nil
}

// Breakdown prices every line of the command and returns the ordered
// composition. All Money values in one command must share a currency; a
// mismatch is rejected rather than summed.
func (e Engine) Breakdown(cmd *domain.Command) (*CommandBreakdown, error) {
	if !cmd.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown command type %q", ErrComputationFault, cmd.Type)
	}

	cc := currencyCheck{}

	bd := &CommandBreakdown{}

	for i, line := range cmd.Items {
		bl, err := e.foodLine(line, &cc)
		if err != nil {
			return nil, fmt.Errorf("food line %d: %w", i, err)
		}
		bd.Lines = append(bd.Lines, bl)
		bd.Total += bl.Amount
	}

	for i, line := range cmd.Menus {
		bl, err := e.menuLine(line, &cc)
		if err != nil {
			return nil, fmt.Errorf("menu line %d: %w", i, err)
		}
		bd.Lines = append(bd.Lines, bl)
		bd.Total += bl.Amount
	}

	if cmd.Type == domain.CommandDelivery && !cmd.Priceless {
		if err := cc.observe(cmd.DeliveryPrice); err != nil {
			return nil, fmt.Errorf("delivery price: %w", err)
		}
		bd.Lines = append(bd.Lines, BreakdownLine{
			Label:    "delivery",
			Quantity: 1,
			Amount:   cmd.DeliveryPrice.Amount,
		})
		bd.Total += cmd.DeliveryPrice.Amount
	}

	if bd.Total < 0 {
		return nil, fmt.Errorf("%w: negative total %d", ErrComputationFault, bd.Total)
	}

	bd.Currency = cc.seen.Currency
	return bd, nil
}

// foodLine prices one standalone food selection. Option item prices multiply
// by both the option quantity and the enclosing food's quantity: ordering two
// portions of a food doubles every selected option as well.
func (e Engine) foodLine(line domain.FoodLineItem, cc *currencyCheck) (BreakdownLine, error) {
	if line.Quantity < 1 {
		return BreakdownLine{}, fmt.Errorf("%w: quantity %d", ErrComputationFault, line.Quantity)
	}
	if err := cc.observe(line.Item.Price); err != nil {
		return BreakdownLine{}, err
	}

	bl := BreakdownLine{
		Label:    line.Item.Name,
		Quantity: line.Quantity,
		Amount:   line.Item.Price.Amount * int64(line.Quantity),
	}

	opts, sum, err := e.optionLines(line.Options, int64(line.Quantity), cc)
	if err != nil {
		return BreakdownLine{}, err
	}
	bl.Options = opts
	bl.Amount += sum

	return bl, nil
}

// menuLine prices one menu selection according to its pricing kind. The
// switch is exhaustive over the closed enum; a kind added without a branch
// here surfaces as a fault instead of pricing at zero.
func (e Engine) menuLine(line domain.MenuLineItem, cc *currencyCheck) (BreakdownLine, error) {
	if line.Quantity < 1 {
		return BreakdownLine{}, fmt.Errorf("%w: quantity %d", ErrComputationFault, line.Quantity)
	}

	bl := BreakdownLine{
		Label:    line.Item.Name,
		Quantity: line.Quantity,
	}

	switch line.Item.Pricing {
	case domain.MenuFixedPrice:
		if err := cc.observe(line.Item.Price); err != nil {
			return BreakdownLine{}, err
		}
		bl.Amount = line.Item.Price.Amount * int64(line.Quantity)

		// A fixed-price menu's embedded foods carry implicit quantity 1:
		// surcharges and option prices are not scaled by the food quantity.
		for _, mf := range line.Foods {
			if !mf.AdditionalPrice.IsZero() {
				if err := cc.observe(mf.AdditionalPrice); err != nil {
					return BreakdownLine{}, err
				}
				extra := mf.AdditionalPrice.Amount
				if e.ScaleAdditionalPriceByMenuQuantity {
					extra *= int64(line.Quantity)
				}
				bl.Options = append(bl.Options, BreakdownLine{
					Label:    mf.Food.Name,
					Quantity: 1,
					Amount:   extra,
				})
				bl.Amount += extra
			}

			opts, sum, err := e.optionLines(mf.Options, 1, cc)
			if err != nil {
				return BreakdownLine{}, err
			}
			bl.Options = append(bl.Options, opts...)
			bl.Amount += sum
		}

	case domain.MenuPerFood:
		var perMenu int64
		for _, mf := range line.Foods {
			if err := cc.observe(mf.Food.Price); err != nil {
				return BreakdownLine{}, err
			}
			perMenu += mf.Food.Price.Amount

			opts, sum, err := e.optionLines(mf.Options, 1, cc)
			if err != nil {
				return BreakdownLine{}, err
			}
			bl.Options = append(bl.Options, opts...)
			perMenu += sum
		}
		bl.Amount = perMenu * int64(line.Quantity)

	case domain.MenuPriceless:
		bl.Amount = 0

	default:
		return BreakdownLine{}, fmt.Errorf("%w: unknown menu pricing %q", ErrComputationFault, line.Item.Pricing)
	}

	return bl, nil
}

// optionLines prices the selected items of a group sequence. multiplier is
// the enclosing line's quantity factor (the food quantity for standalone
// foods, 1 inside menus).
func (e Engine) optionLines(groups []domain.AccompanimentGroup, multiplier int64, cc *currencyCheck) ([]BreakdownLine, int64, error) {
	var out []BreakdownLine
	var sum int64

	for _, g := range groups {
		for _, entry := range g.Items {
			if entry.Quantity < 0 {
				return nil, 0, fmt.Errorf("%w: option quantity %d", ErrComputationFault, entry.Quantity)
			}
			if err := cc.observe(entry.Item.Price); err != nil {
				return nil, 0, err
			}
			amount := entry.Item.Price.Amount * int64(entry.Quantity) * multiplier
			out = append(out, BreakdownLine{
				Label:    entry.Item.Name,
				Quantity: entry.Quantity,
				Amount:   amount,
			})
			sum += amount
		}
	}

	return out, sum, nil
}

// currencyCheck enforces the currency-homogeneity precondition while walking
// a command, and rejects negative amounts on the way.
type currencyCheck struct {
	seen domain.Money
}

func (c *currencyCheck) observe(m domain.Money) error {
	if m.Amount < 0 {
		return fmt.Errorf("%w: negative amount %d", ErrComputationFault, m.Amount)
	}
	if !c.seen.SameCurrency(m) {
		return fmt.Errorf("%w: mixed currencies %s and %s", ErrComputationFault, c.seen.Currency, m.Currency)
	}
	if c.seen.Currency == "" {
		c.seen.Currency = m.Currency
	}
	return nil
}
