// Package valuation computes managerial, campaign and unit-economics valuation metrics.
// Every calculation is a pure function of its input record; nothing is kept
// between calls.
package valuation

import (
	"github.com/shopspring/decimal"

	verrors "valuation-calc/pkg/errors"
	"valuation-calc/pkg/table"
)

// MoneyPlaces is the precision monetary results are rounded to at derivation.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// round2 rounds the exact decimal half to even: 2.675 becomes 2.68.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyPlaces)
}

// nonZero returns an InvalidInputError naming the first zero divisor.
func nonZero(divisors ...divisor) error {
	for _, d := range divisors {
		if d.value.IsZero() {
			return verrors.NewZeroDivisorError(d.field)
		}
	}
	return nil
}

type divisor struct {
	field string
	value decimal.Decimal
}

func buildTable(op string, labels []string, values []decimal.Decimal) (*table.Table, error) {
	t, err := table.New(labels, values)
	if err != nil {
		return nil, &verrors.ComputationError{Op: op, Err: err}
	}
	return t, nil
}

// Kind names one of the supported analyses.
type Kind string

const (
	KindManagerial    Kind = "managerial"
	KindCampaign      Kind = "campaign"
	KindUnitEconomics Kind = "unit-economics"
)

// Title is the human readable heading of a kind's report.
func (k Kind) Title() string {
	switch k {
	case KindManagerial:
		return "Análise Gerencial"
	case KindCampaign:
		return "ROI da Campanha"
	case KindUnitEconomics:
		return "Análise de Unidade"
	default:
		return string(k)
	}
}

// Report is implemented by every result record.
type Report interface {
	Table() (*table.Table, error)
}
