package table

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		[]string{"Lucro Bruto (R$)", "ROI (%)"},
		[]decimal.Decimal{decimal.NewFromInt(3000), decimal.RequireFromString("12.5")},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewRejectsMisalignedColumns(t *testing.T) {
	_, err := New([]string{"a", "b"}, []decimal.Decimal{decimal.Zero})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 labels but 1 values")
}

func TestRowsAreCopies(t *testing.T) {
	tbl := sample(t)
	rows := tbl.Rows()
	rows[0].Label = "changed"

	assert.Equal(t, "Lucro Bruto (R$)", tbl.Rows()[0].Label)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, [2]string{"Métrica", "Valor"}, tbl.Columns())
}

func TestMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(sample(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"columns": ["Métrica", "Valor"],
		"rows": [
			{"metric": "Lucro Bruto (R$)", "value": "3000.00"},
			{"metric": "ROI (%)", "value": "12.50"}
		]
	}`, string(raw))
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sample(t), "Análise Gerencial"))
	assert.Equal(t, "## Análise Gerencial\n\n"+
		"| Métrica | Valor |\n"+
		"|--------|-------|\n"+
		"| Lucro Bruto (R$) | 3000.00 |\n"+
		"| ROI (%) | 12.50 |\n", buf.String())
}

func TestWriteBoxLinesHaveEqualWidth(t *testing.T) {
	for _, title := range []string{"", "Análise Gerencial", strings.Repeat("X", 60)} {
		var buf bytes.Buffer
		require.NoError(t, WriteBox(&buf, sample(t), title))

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		want := runewidth.StringWidth(lines[0])
		for _, line := range lines {
			assert.Equal(t, want, runewidth.StringWidth(line), "line %q", line)
		}
		assert.Contains(t, buf.String(), "3000.00")
		assert.Contains(t, buf.String(), "Métrica")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"markdown", FormatMarkdown, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestRenderDispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(t), "t", FormatJSON))
	assert.True(t, json.Valid(buf.Bytes()))
}
