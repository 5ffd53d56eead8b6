package valuation

import (
	"github.com/shopspring/decimal"

	"valuation-calc/pkg/table"
)

// Unit-economics row labels.
const (
	LabelEBITDA            = "EBITDA (R$)"
	LabelEBIT              = "EBIT (R$)"
	LabelNOPAT             = "NOPAT (R$)"
	LabelOperatingCashFlow = "Fluxo de Caixa Operacional (R$)"
	LabelNetCashFlow       = "Fluxo de Caixa Líquido (R$)"
)

// UnitEconomicsLabels is the fixed row order of a unit-economics analysis.
var UnitEconomicsLabels = []string{
	LabelEBITDA,
	LabelEBIT,
	LabelNOPAT,
	LabelEconomicProfit,
	LabelOperatingCashFlow,
	LabelNetCashFlow,
}

// UnitEconomicsInput describes the monthly operation of a single retail unit.
type UnitEconomicsInput struct {
	Investment      decimal.Decimal `json:"investment"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	FixedExpenses   decimal.Decimal `json:"fixed_expenses"`
	Depreciation    decimal.Decimal `json:"depreciation"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	OpportunityRate decimal.Decimal `json:"opportunity_rate"`
	UnitsSold       decimal.Decimal `json:"units_sold"`
	// FinancingInstallment is optional; an absent installment counts as zero.
	FinancingInstallment decimal.NullDecimal `json:"financing_installment"`
}

// UnitEconomicsResult is the outcome of UnitEconomics. Values are exact;
// rounding happens only when rendered.
type UnitEconomicsResult struct {
	UnitMargin    decimal.Decimal `json:"unit_margin"`
	NetUnitMargin decimal.Decimal `json:"net_unit_margin"`

	FixedCostsExDepreciation decimal.Decimal `json:"fixed_costs_ex_depreciation"`
	Revenue                  decimal.Decimal `json:"revenue"`
	VariableCosts            decimal.Decimal `json:"variable_costs"`
	ContributionMargin       decimal.Decimal `json:"contribution_margin"`

	EBITDA          decimal.Decimal `json:"ebitda"`
	EBIT            decimal.Decimal `json:"ebit"`
	TaxOnProfit     decimal.Decimal `json:"tax_on_profit"`
	NOPAT           decimal.Decimal `json:"nopat"`
	OpportunityCost decimal.Decimal `json:"opportunity_cost"`
	EconomicProfit  decimal.Decimal `json:"economic_profit"`

	OperatingCashFlow decimal.Decimal `json:"operating_cash_flow"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`
}

// UnitEconomics derives EBITDA, EBIT, NOPAT, economic profit and cash flows.
//
// Tax is waived when EBITDA is not positive but is otherwise levied on EBIT,
// so a positive EBITDA with a negative EBIT yields a negative tax.
func UnitEconomics(in UnitEconomicsInput) (*UnitEconomicsResult, error) {
	r := &UnitEconomicsResult{}
	r.UnitMargin = in.SalePrice.Sub(in.CostPrice)
	r.NetUnitMargin = r.UnitMargin.Mul(decimal.NewFromInt(1).Sub(in.TaxRate))

	r.FixedCostsExDepreciation = in.FixedExpenses.Sub(in.Depreciation)
	r.Revenue = in.UnitsSold.Mul(in.SalePrice)
	r.VariableCosts = in.UnitsSold.Mul(in.CostPrice)
	r.ContributionMargin = r.Revenue.Sub(r.VariableCosts)

	r.EBITDA = r.ContributionMargin.Sub(r.FixedCostsExDepreciation)
	r.EBIT = r.EBITDA.Sub(in.Depreciation)
	if r.EBITDA.LessThanOrEqual(decimal.Zero) {
		r.TaxOnProfit = decimal.Zero
	} else {
		r.TaxOnProfit = r.EBIT.Mul(in.TaxRate)
	}
	r.NOPAT = r.EBIT.Sub(r.TaxOnProfit)
	r.OpportunityCost = in.OpportunityRate.Mul(in.Investment)
	r.EconomicProfit = r.NOPAT.Sub(r.OpportunityCost)

	installment := decimal.Zero
	if in.FinancingInstallment.Valid {
		installment = in.FinancingInstallment.Decimal
	}
	r.OperatingCashFlow = r.NOPAT.Add(in.Depreciation)
	r.NetCashFlow = r.OperatingCashFlow.Sub(installment)
	return r, nil
}

// Table lays the result out in UnitEconomicsLabels order.
func (r *UnitEconomicsResult) Table() (*table.Table, error) {
	return buildTable("unit-economics", UnitEconomicsLabels, []decimal.Decimal{
		r.EBITDA,
		r.EBIT,
		r.NOPAT,
		r.EconomicProfit,
		r.OperatingCashFlow,
		r.NetCashFlow,
	})
}
