package valuation

import (
	"github.com/shopspring/decimal"

	"valuation-calc/pkg/table"
)

// Managerial analysis row labels, in table order.
const (
	LabelGrossProfit     = "Lucro Bruto (R$)"
	LabelOperatingProfit = "Lucro Operacional (R$)"
	LabelROI             = "ROI (%)"
	LabelOpportunityCost = "Custo de Oportunidade (R$)"
	LabelEconomicProfit  = "Lucro Econômico (R$)"
	LabelGoodwill        = "Goodwill (R$)"
)

// ManagerialLabels is the fixed row order of a managerial analysis.
var ManagerialLabels = []string{
	LabelGrossProfit,
	LabelOperatingProfit,
	LabelROI,
	LabelOpportunityCost,
	LabelEconomicProfit,
	LabelGoodwill,
}

// ManagerialInput holds the day-to-day figures of a business.
type ManagerialInput struct {
	Investment        decimal.Decimal `json:"investment"`
	EquityCapital     decimal.Decimal `json:"equity_capital"`
	Revenue           decimal.Decimal `json:"revenue"`
	COGS              decimal.Decimal `json:"cogs"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	// OpportunityRate is the minimum return the investor expects, as a fraction.
	OpportunityRate decimal.Decimal `json:"opportunity_rate"`
	// ThirdPartyCapital is accepted but does not enter any metric.
	ThirdPartyCapital decimal.NullDecimal `json:"third_party_capital"`
}

// ManagerialResult is the outcome of Managerial.
type ManagerialResult struct {
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`
	ROI             decimal.Decimal `json:"roi"`
	OpportunityCost decimal.Decimal `json:"opportunity_cost"`
	EconomicProfit  decimal.Decimal `json:"economic_profit"`
	Goodwill        decimal.Decimal `json:"goodwill"`
}

// Managerial computes profit, ROI, economic profit and goodwill.
// Investment and OpportunityRate must be non-zero.
func Managerial(in ManagerialInput) (*ManagerialResult, error) {
	if err := nonZero(
		divisor{"investment", in.Investment},
		divisor{"opportunity_rate", in.OpportunityRate},
	); err != nil {
		return nil, err
	}

	r := &ManagerialResult{}
	r.GrossProfit = round2(in.Revenue.Sub(in.COGS))
	r.OperatingProfit = round2(r.GrossProfit.Sub(in.OperatingExpenses))
	r.ROI = round2(r.OperatingProfit.Mul(hundred).Div(in.Investment))
	r.OpportunityCost = round2(in.OpportunityRate.Mul(in.Investment))
	r.EconomicProfit = r.OperatingProfit.Sub(r.OpportunityCost)
	r.Goodwill = round2(r.EconomicProfit.Div(in.OpportunityRate))
	return r, nil
}

// Table lays the result out in ManagerialLabels order.
func (r *ManagerialResult) Table() (*table.Table, error) {
	return buildTable("managerial", ManagerialLabels, []decimal.Decimal{
		r.GrossProfit,
		r.OperatingProfit,
		r.ROI,
		r.OpportunityCost,
		r.EconomicProfit,
		r.Goodwill,
	})
}
