package valuation

import (
	"github.com/shopspring/decimal"

	"valuation-calc/pkg/table"
)

// Campaign-only row labels.
const (
	LabelSalesRevenue = "Receita de Vendas (R$)"
	LabelCampaignCost = "Custo da Campanha (R$)"
)

// CampaignLabels is the fixed row order of a campaign ROI analysis.
var CampaignLabels = []string{
	LabelSalesRevenue,
	LabelGrossProfit,
	LabelCampaignCost,
	LabelOperatingProfit,
	LabelROI,
}

// CampaignInput describes an e-mail campaign and its commercial outcome.
type CampaignInput struct {
	EmailsSent     decimal.Decimal `json:"emails_sent"`
	DeliveryErrors decimal.Decimal `json:"delivery_errors"`
	Clicks         decimal.Decimal `json:"clicks"`
	Sales          decimal.Decimal `json:"sales"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	Investment     decimal.Decimal `json:"investment"`
	GrossMargin    decimal.Decimal `json:"gross_margin"`
}

// CampaignResult is the outcome of Campaign. The funnel rates are not part
// of the table.
type CampaignResult struct {
	EffectiveEmails decimal.Decimal `json:"effective_emails"`
	ErrorRate       decimal.Decimal `json:"error_rate"`
	ClickRate       decimal.Decimal `json:"click_rate"`
	ConversionRate  decimal.Decimal `json:"conversion_rate"`

	SalesRevenue    decimal.Decimal `json:"sales_revenue"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	CampaignCost    decimal.Decimal `json:"campaign_cost"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`
	ROI             decimal.Decimal `json:"roi"`
}

// Campaign computes the return on a marketing campaign.
// EmailsSent, EmailsSent-DeliveryErrors, Clicks and Investment must be non-zero.
func Campaign(in CampaignInput) (*CampaignResult, error) {
	effective := in.EmailsSent.Sub(in.DeliveryErrors)
	if err := nonZero(
		divisor{"emails_sent", in.EmailsSent},
		divisor{"effective_emails", effective},
		divisor{"clicks", in.Clicks},
		divisor{"investment", in.Investment},
	); err != nil {
		return nil, err
	}

	r := &CampaignResult{EffectiveEmails: effective, CampaignCost: in.Investment}
	r.ErrorRate = in.DeliveryErrors.Div(in.EmailsSent)
	r.ClickRate = in.Clicks.Div(effective)
	r.ConversionRate = in.Sales.Div(in.Clicks)

	r.SalesRevenue = round2(in.Sales.Mul(in.AverageTicket))
	r.GrossProfit = round2(r.SalesRevenue.Mul(in.GrossMargin))
	r.OperatingProfit = round2(r.GrossProfit.Sub(in.Investment))
	r.ROI = round2(r.OperatingProfit.Mul(hundred).Div(in.Investment))
	return r, nil
}

// Table lays the result out in CampaignLabels order.
func (r *CampaignResult) Table() (*table.Table, error) {
	return buildTable("campaign", CampaignLabels, []decimal.Decimal{
		r.SalesRevenue,
		r.GrossProfit,
		r.CampaignCost,
		r.OperatingProfit,
		r.ROI,
	})
}
