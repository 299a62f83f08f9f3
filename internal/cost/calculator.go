package cost

import "github.com/shopspring/decimal"

// Rates holds the contractual flat rates.
type Rates struct {
	LoadingPerCBM int64 `yaml:"loading_per_cbm" mapstructure:"loading_per_cbm"`
	AddingPoint   int64 `yaml:"adding_point" mapstructure:"adding_point"`
}

// Calculator computes the rate-driven fee components.
type Calculator struct {
	loadingPerCBM decimal.Decimal
	addingPoint   decimal.Decimal
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{
		loadingPerCBM: decimal.NewFromInt(rates.LoadingPerCBM),
		addingPoint:   decimal.NewFromInt(rates.AddingPoint),
	}
}

// LoadingPerCBM returns the unit loading price.
func (c *Calculator) LoadingPerCBM() decimal.Decimal {
	return c.loadingPerCBM
}

// Loading computes the fee for bringing volume cubic meters down to ground.
func (c *Calculator) Loading(volume decimal.Decimal) decimal.Decimal {
	return c.loadingPerCBM.Mul(volume)
}

// AddingPoint returns the flat surcharge for an extra drop, or zero when it
// does not apply.
func (c *Calculator) AddingPoint(applies bool) decimal.Decimal {
	if !applies {
		return decimal.Zero
	}
	return c.addingPoint
}

// DefaultRates returns the default contract rates.
func DefaultRates() Rates {
	return Rates{
		LoadingPerCBM: 25000,
		AddingPoint:   90000,
	}
}
