package models

import (
	"fmt"
	"strings"
)

// Order is one fulfilled checkout session, as recorded in the ledger.
type Order struct {
	OrderID       string
	SessionID     string
	CustomerEmail string
	AmountTotal   int64 // minor units
	Currency      string
	PaymentStatus string
	PriceIDs      []string
	CreatedAt     string
}

// Amount renders AmountTotal as "12.34 USD".
func (o Order) Amount() string {
	cur := strings.ToUpper(o.Currency)
	if cur == "" {
		return fmt.Sprintf("%d", o.AmountTotal)
	}
	sign := ""
	v := o.AmountTotal
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, v/100, v%100, cur)
}
