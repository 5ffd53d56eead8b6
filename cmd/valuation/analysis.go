package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"valuation-calc/decision/valuation"
	verrors "valuation-calc/pkg/errors"
	"valuation-calc/pkg/table"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   string(table.FormatTable),
			Usage:   "Output format (table, json, markdown)",
		},
		&cli.BoolFlag{
			Name:  "details",
			Usage: "Also print every derived quantity as JSON",
		},
	}
}

func amountFlag(name, usage string, required bool) cli.Flag {
	f := &cli.StringFlag{Name: name, Usage: usage, Required: required}
	if !required {
		f.Value = "0"
	}
	return f
}

func optionalAmountFlag(name, usage string) cli.Flag {
	return &cli.StringFlag{Name: name, Usage: usage + " (optional)"}
}

// amount parses a decimal flag value.
func amount(c *cli.Context, name string) (decimal.Decimal, error) {
	raw := c.String(name)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, verrors.NewInvalidNumberError(name, raw)
	}
	return v, nil
}

func optionalAmount(c *cli.Context, name string) (decimal.NullDecimal, error) {
	if !c.IsSet(name) {
		return decimal.NullDecimal{}, nil
	}
	v, err := amount(c, name)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(v), nil
}

type target struct {
	flag string
	dst  *decimal.Decimal
}

// amounts parses flags into their destinations in order, stopping at the first bad value.
func amounts(c *cli.Context, targets []target) error {
	for _, t := range targets {
		v, err := amount(c, t.flag)
		if err != nil {
			return err
		}
		*t.dst = v
	}
	return nil
}

// =============================================================================
// MANAGERIAL COMMAND
// =============================================================================

func managerialCommand() *cli.Command {
	return &cli.Command{
		Name:  string(valuation.KindManagerial),
		Usage: "Gross/operating profit, ROI, economic profit and goodwill",
		Flags: append([]cli.Flag{
			amountFlag("investment", "Invested capital", true),
			amountFlag("equity-capital", "Owner equity capital", false),
			amountFlag("revenue", "Revenue", true),
			amountFlag("cogs", "Cost of goods sold", false),
			amountFlag("operating-expenses", "Operating expenses", false),
			amountFlag("opportunity-rate", "Minimum required return, as a fraction", true),
			optionalAmountFlag("third-party-capital", "Third-party capital"),
		}, outputFlags()...),
		Action: func(c *cli.Context) error {
			var in valuation.ManagerialInput
			err := amounts(c, []target{
				{"investment", &in.Investment},
				{"equity-capital", &in.EquityCapital},
				{"revenue", &in.Revenue},
				{"cogs", &in.COGS},
				{"operating-expenses", &in.OperatingExpenses},
				{"opportunity-rate", &in.OpportunityRate},
			})
			if err != nil {
				return err
			}
			if in.ThirdPartyCapital, err = optionalAmount(c, "third-party-capital"); err != nil {
				return err
			}

			result, err := valuation.Managerial(in)
			if err != nil {
				return fmt.Errorf("managerial analysis: %w", err)
			}
			return render(c, valuation.KindManagerial, result)
		},
	}
}

// =============================================================================
// CAMPAIGN COMMAND
// =============================================================================

func campaignCommand() *cli.Command {
	return &cli.Command{
		Name:  string(valuation.KindCampaign),
		Usage: "Return on investment of an e-mail campaign",
		Flags: append([]cli.Flag{
			amountFlag("emails", "E-mails sent", true),
			amountFlag("errors", "E-mails with delivery errors", false),
			amountFlag("clicks", "Clicks", true),
			amountFlag("sales", "Sales closed", true),
			amountFlag("ticket", "Average ticket value", true),
			amountFlag("investment", "Campaign cost", true),
			amountFlag("margin", "Gross margin, as a fraction", true),
		}, outputFlags()...),
		Action: func(c *cli.Context) error {
			var in valuation.CampaignInput
			if err := amounts(c, []target{
				{"emails", &in.EmailsSent},
				{"errors", &in.DeliveryErrors},
				{"clicks", &in.Clicks},
				{"sales", &in.Sales},
				{"ticket", &in.AverageTicket},
				{"investment", &in.Investment},
				{"margin", &in.GrossMargin},
			}); err != nil {
				return err
			}

			result, err := valuation.Campaign(in)
			if err != nil {
				return fmt.Errorf("campaign analysis: %w", err)
			}
			return render(c, valuation.KindCampaign, result)
		},
	}
}

// =============================================================================
// UNIT ECONOMICS COMMAND
// =============================================================================

func unitEconomicsCommand() *cli.Command {
	return &cli.Command{
		Name:  string(valuation.KindUnitEconomics),
		Usage: "EBITDA, EBIT, NOPAT, economic profit and cash flow of a single unit",
		Flags: append([]cli.Flag{
			amountFlag("investment", "Invested capital", true),
			amountFlag("sale-price", "Unit sale price", true),
			amountFlag("cost-price", "Unit cost price", true),
			amountFlag("fixed-expenses", "Fixed expenses, depreciation included", false),
			amountFlag("depreciation", "Depreciation", false),
			amountFlag("tax-rate", "Income tax rate, as a fraction", false),
			amountFlag("opportunity-rate", "Minimum required return, as a fraction", false),
			amountFlag("units", "Units sold", true),
			optionalAmountFlag("installment", "Financing installment"),
		}, outputFlags()...),
		Action: func(c *cli.Context) error {
			var in valuation.UnitEconomicsInput
			err := amounts(c, []target{
				{"investment", &in.Investment},
				{"sale-price", &in.SalePrice},
				{"cost-price", &in.CostPrice},
				{"fixed-expenses", &in.FixedExpenses},
				{"depreciation", &in.Depreciation},
				{"tax-rate", &in.TaxRate},
				{"opportunity-rate", &in.OpportunityRate},
				{"units", &in.UnitsSold},
			})
			if err != nil {
				return err
			}
			if in.FinancingInstallment, err = optionalAmount(c, "installment"); err != nil {
				return err
			}

			result, err := valuation.UnitEconomics(in)
			if err != nil {
				return fmt.Errorf("unit-economics analysis: %w", err)
			}
			return render(c, valuation.KindUnitEconomics, result)
		},
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func render(c *cli.Context, kind valuation.Kind, report valuation.Report) error {
	format, err := table.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	tbl, err := report.Table()
	if err != nil {
		return err
	}
	log.Debug().Str("analysis", string(kind)).Int("rows", tbl.Len()).Msg("Analysis computed")

	if err := table.Render(c.App.Writer, tbl, kind.Title(), format); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if c.Bool("details") {
		fmt.Fprintln(c.App.Writer)
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return nil
}
