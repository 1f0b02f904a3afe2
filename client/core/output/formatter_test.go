package output

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateRow struct {
	Unit   string `json:"unit"`
	Amount string `json:"amount"`
}

type rates []rateRow

func (r rates) Table() Table {
	t := Table{{"Unit", "Amount"}}
	for _, row := range r {
		t = append(t, []string{row.Unit, row.Amount})
	}
	return t
}

func (r rates) Text() string {
	parts := make([]string, 0, len(r))
	for _, row := range r {
		parts = append(parts, row.Amount+"/"+row.Unit)
	}
	return strings.Join(parts, ", ")
}

func TestFormatter_Print(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	data := rates{{"day", "3.33"}, {"month", "100.00"}}

	tests := []struct {
		format Format
		check  func(t *testing.T, out string)
	}{
		{FormatJSON, func(t *testing.T, out string) {
			assert.Equal(t, `[{"unit":"day","amount":"3.33"},{"unit":"month","amount":"100.00"}]`+"\n", out)
		}},
		{FormatPretty, func(t *testing.T, out string) {
			assert.Contains(t, out, "\n  {\n")
		}},
		{FormatTable, func(t *testing.T, out string) {
			assert.Contains(t, out, "Unit")
			assert.Contains(t, out, "100.00")
			assert.NotContains(t, out, "{")
		}},
		{FormatText, func(t *testing.T, out string) {
			assert.Equal(t, "3.33/day, 100.00/month\n", out)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			f := NewFormatter(tt.format, &buf)
			require.NoError(t, f.Print(data))
			tt.check(t, buf.String())
		})
	}
}

func TestFormatter_TableFallbacks(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	f := NewFormatter(FormatTable, &buf)

	require.NoError(t, f.Print(map[string]interface{}{"b": 2, "a": "x"}))
	out := buf.String()
	assert.Less(t, strings.Index(out, "x"), strings.Index(out, "2"))

	buf.Reset()
	require.NoError(t, f.Print(struct {
		Name string `json:"name"`
	}{"drip"}))
	assert.Contains(t, buf.String(), `"name": "drip"`)
}

func TestFormatter_SilentAndLogs(t *testing.T) {
	var out, logs bytes.Buffer
	f := NewFormatter(FormatJSON, &out)
	f.SetLogWriter(&logs)

	f.PrintInfo("info")
	f.PrintSuccess("ok")
	f.SetSilent(true)
	f.PrintWarning("hidden")
	f.PrintError(errors.New("boom"))
	require.NoError(t, f.Print("data"))

	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "info")
	assert.Contains(t, logs.String(), "ok")
	assert.NotContains(t, logs.String(), "hidden")
	assert.Contains(t, logs.String(), "boom")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("table")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-", FormatValue(nil))
	assert.Equal(t, "12345678901234567890", FormatValue(new(big.Int).SetUint64(12345678901234567890)))
	assert.Equal(t, "1.50", FormatValue(1.5))
	assert.Equal(t, `["a"]`, FormatValue([]string{"a"}))
}
