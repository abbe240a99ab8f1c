package evaluatedto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItemInput struct {
	ProductID  string
	CategoryID string
	UnitPrice  decimal.Decimal
	Quantity   int
}

type EvaluateInput struct {
	UserID string
	Items  []CartItemInput
	// Now is the evaluation instant; zero means time.Now().UTC()
	Now time.Time
}
