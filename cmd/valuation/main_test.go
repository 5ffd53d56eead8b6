package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "valuation-calc/pkg/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"valuation", "--log-format", "json"}, args...))
	return stdout.String(), err
}

var managerialArgs = []string{
	"managerial",
	"--investment", "1000",
	"--revenue", "5000",
	"--cogs", "2000",
	"--operating-expenses", "1000",
	"--opportunity-rate", "0.1",
}

func TestManagerialTable(t *testing.T) {
	out, err := run(t, managerialArgs...)
	require.NoError(t, err)

	assert.Contains(t, out, "Análise Gerencial")
	assert.Contains(t, out, "Métrica")
	for _, want := range []string{"3000.00", "2000.00", "200.00", "100.00", "1900.00", "19000.00"} {
		assert.Contains(t, out, want)
	}
}

func TestManagerialJSON(t *testing.T) {
	out, err := run(t, append(managerialArgs, "--format", "json")...)
	require.NoError(t, err)

	var got struct {
		Columns []string `json:"columns"`
		Rows    []struct {
			Metric string `json:"metric"`
			Value  string `json:"value"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Rows, 6)
	assert.Equal(t, "Goodwill (R$)", got.Rows[5].Metric)
	assert.Equal(t, "19000.00", got.Rows[5].Value)
}

func TestCampaignMarkdownWithDetails(t *testing.T) {
	out, err := run(t, "campaign",
		"--emails", "1000", "--errors", "50", "--clicks", "100", "--sales", "10",
		"--ticket", "50", "--investment", "200", "--margin", "0.4",
		"-f", "markdown", "--details")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "## ROI da Campanha\n"))
	assert.Contains(t, out, "| Receita de Vendas (R$) | 500.00 |")
	assert.Contains(t, out, "| ROI (%) | 0.00 |")
	assert.Contains(t, out, `"error_rate": "0.05"`)
	assert.Contains(t, out, `"conversion_rate": "0.1"`)
}

func TestUnitEconomicsInstallment(t *testing.T) {
	args := []string{"unit-economics",
		"--investment", "100000", "--sale-price", "30", "--cost-price", "12",
		"--fixed-expenses", "20000", "--depreciation", "2000", "--tax-rate", "0.15",
		"--opportunity-rate", "0.01", "--units", "2000", "-f", "markdown"}

	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "| Fluxo de Caixa Operacional (R$) | 15600.00 |")
	assert.Contains(t, out, "| Fluxo de Caixa Líquido (R$) | 15600.00 |")

	out, err = run(t, append(args, "--installment", "1500")...)
	require.NoError(t, err)
	assert.Contains(t, out, "| Fluxo de Caixa Líquido (R$) | 14100.00 |")
}

func TestZeroDivisorIsInvalidInput(t *testing.T) {
	_, err := run(t, "campaign",
		"--emails", "1000", "--clicks", "0", "--sales", "10",
		"--ticket", "50", "--investment", "200", "--margin", "0.4")
	require.Error(t, err)

	invalid, ok := verrors.AsInvalidInput(err)
	require.True(t, ok)
	assert.Equal(t, verrors.ErrCodeZeroDivisor, invalid.Code)
	assert.Equal(t, "clicks", invalid.Field)
}

func TestInvalidNumber(t *testing.T) {
	args := append([]string{}, managerialArgs...)
	args[4] = "five thousand"
	_, err := run(t, args...)

	invalid, ok := verrors.AsInvalidInput(err)
	require.True(t, ok)
	assert.Equal(t, verrors.ErrCodeInvalidNumber, invalid.Code)
	assert.Equal(t, "revenue", invalid.Field)
}

func TestMissingRequiredFlag(t *testing.T) {
	_, err := run(t, "managerial", "--revenue", "5000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "investment")
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, append(managerialArgs, "--format", "csv")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestInvalidLogLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"valuation", "--log-level", "loud"}, managerialArgs...))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
	assert.NotContains(t, stdout.String(), "19000.00")
}

func TestExitCode(t *testing.T) {
	_, err := run(t, "managerial", "--investment", "0", "--revenue", "5000", "--opportunity-rate", "0.1")
	assert.Equal(t, 2, exitCode(err))

	_, err = run(t, append(managerialArgs, "--format", "csv")...)
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, 1, exitCode(errors.New("server failed")))
}
