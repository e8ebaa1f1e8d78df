// Package billing implements the payment processor gateway and the price
// table that binds plan selections to processor prices.
package billing

import (
	"github.com/fakturio-inc/fakturio/internal/application/subscription/usecases"
	vo "github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
)

// PriceTable is the shipped mapping between plan selections and Stripe
// prices. Like the entitlement tables it is code, not configuration; adding
// a price is a deploy. Amounts are euro cents per billing period.
type PriceTable struct {
	prices map[vo.PlanSelection]usecases.BillingPrice
}

func NewPriceTable() *PriceTable {
	return &PriceTable{prices: map[vo.PlanSelection]usecases.BillingPrice{
		{Tier: vo.PlanStarter, Interval: vo.IntervalMonthly}: {PriceID: "price_starter_monthly", Amount: 900},
		{Tier: vo.PlanStarter, Interval: vo.IntervalYearly}:  {PriceID: "price_starter_yearly", Amount: 9000},
		{Tier: vo.PlanPro, Interval: vo.IntervalMonthly}:     {PriceID: "price_pro_monthly", Amount: 2900},
		{Tier: vo.PlanPro, Interval: vo.IntervalYearly}:      {PriceID: "price_pro_yearly", Amount: 29000},
	}}
}

func (t *PriceTable) PriceFor(selection vo.PlanSelection) (usecases.BillingPrice, bool) {
	price, ok := t.prices[selection]
	return price, ok
}

func (t *PriceTable) SelectionFor(priceID string) (vo.PlanSelection, bool) {
	for selection, price := range t.prices {
		if price.PriceID == priceID {
			return selection, true
		}
	}
	return vo.PlanSelection{}, false
}
