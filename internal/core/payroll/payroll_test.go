package payroll

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

const (
	employer = "0x00000000000000000000000000000000000E0001"
	alice    = "0xa11ce00000000000000000000000000000000001"
	bob      = "0xb0b0000000000000000000000000000000000002"
	carol    = "0xca20100000000000000000000000000000000003"
	chainID  = uint64(84532)
)

var t0 = time.Unix(1_700_000_000, 0).UTC()

func fixture(now time.Time) []Record {
	hourEnd := t0.Add(time.Hour)
	return []Record{
		NewInstant(employer, alice, chainID, "USDCx", 6, "250.5", t0.Add(24*time.Hour)),
		NewStream(employer, alice, chainID, "USDCx", 6, flow.FlowRateFromInt64(13888), t0, &hourEnd),
		NewStream(employer, bob, chainID, "USDCx", 6, flow.FlowRateFromInt64(13888), now.Add(-2*time.Hour), nil),
		NewStream(employer, carol, chainID, "usdcx", 18, flow.FlowRateFromInt64(38580246913580), t0, nil),
		{ID: uuid.New(), Kind: "refund", Receiver: bob, Token: "USDCx", StartTime: t0},
	}
}

func TestSummarize(t *testing.T) {
	now := t0.Add(30 * 24 * time.Hour)
	records := fixture(now)

	s := Summarize(records, now)
	assert.Equal(t, 5, s.Records)
	require.Len(t, s.Skipped, 1)
	assert.Equal(t, records[4].ID.String(), s.Skipped[0])
	require.Len(t, s.Tokens, 2)

	six := s.Tokens[0]
	assert.Equal(t, uint8(6), six.Decimals)
	assert.Equal(t, "USDCX", six.Token)
	assert.Equal(t, 1, six.InstantCount)
	assert.Equal(t, 2, six.StreamCount)
	assert.Equal(t, 1, six.ActiveStreams)
	assert.Equal(t, "250500000", six.InstantUnits)
	assert.Equal(t, "149990400", six.StreamedUnits)
	assert.Equal(t, "400490400", six.TotalUnits)
	assert.Equal(t, "250.50", six.InstantTotal)
	assert.Equal(t, "149.99", six.StreamedTotal)
	assert.Equal(t, "400.49", six.Total)
	assert.Equal(t, "35997.70", six.MonthlyRate)

	require.Len(t, six.Receivers, 2)
	assert.Equal(t, alice, six.Receivers[0].Receiver)
	assert.Equal(t, "300496800", six.Receivers[0].Units)
	assert.Equal(t, "300.50", six.Receivers[0].Total)
	assert.Equal(t, bob, six.Receivers[1].Receiver)
	assert.Equal(t, "99.99", six.Receivers[1].Total)

	// 同名代币、不同精度单独分组
	eighteen := s.Tokens[1]
	assert.Equal(t, uint8(18), eighteen.Decimals)
	assert.Equal(t, "99999999999999360000", eighteen.StreamedUnits)
	assert.Equal(t, "100.00", eighteen.Total)
	assert.Equal(t, "100.00", eighteen.MonthlyRate)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, t0)
	assert.Equal(t, 0, s.Records)
	assert.NotNil(t, s.Tokens)
	assert.Empty(t, s.Tokens)
	assert.NotNil(t, s.Skipped)
}

func TestSummarize_NotYetStarted(t *testing.T) {
	rec := NewStream(employer, bob, chainID, "USDCx", 6, flow.FlowRateFromInt64(13888), t0.Add(time.Hour), nil)

	s := Summarize([]Record{rec}, t0)
	require.Len(t, s.Tokens, 1)
	assert.Equal(t, "0", s.Tokens[0].StreamedUnits)
	assert.Equal(t, 0, s.Tokens[0].ActiveStreams)
}

func TestBuildInvoice(t *testing.T) {
	now := t0.Add(30 * 24 * time.Hour)
	records := fixture(now)

	inv, err := BuildInvoice(records, "0x"+strings.ToUpper(alice[2:]), now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.Number, "INV-20231214-"), inv.Number)
	assert.Equal(t, now, inv.IssuedAt)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, KindStream, inv.Items[0].Kind)
	assert.Contains(t, inv.Items[0].Description, "Stream USDCx from 2023-11-14 to 2023-11-14")
	assert.Equal(t, "50.00", inv.Items[0].Amount)
	assert.Equal(t, KindInstant, inv.Items[1].Kind)
	assert.Equal(t, "Payment 250.5 USDCx", inv.Items[1].Description)

	require.Len(t, inv.Totals, 1)
	assert.Equal(t, "300496800", inv.Totals[0].Units)
	assert.Equal(t, "300.50", inv.Totals[0].Amount)

	again, err := BuildInvoice(records, alice, now)
	require.NoError(t, err)
	assert.Equal(t, inv.Number, again.Number)

	other, err := BuildInvoice(records, bob, now)
	require.NoError(t, err)
	assert.NotEqual(t, inv.Number, other.Number)
	assert.Contains(t, other.Items[0].Description, "to ongoing")
}

func TestBuildInvoice_NoRecords(t *testing.T) {
	_, err := BuildInvoice(fixture(t0), "0xdead", t0)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestLoadRecords(t *testing.T) {
	input := `[
	  {"kind":"INSTANT","sender":"0x1","receiver":"0x2","chain_id":84532,"token":"USDCx","decimals":6,
	   "amount":"12.5","start_time":"2025-10-01T00:00:00Z"},
	  {"id":"6f1c1b7e-6d8a-4c8e-9b1a-2f7f9f0e5a11","kind":"stream","receiver":"0x2","token":"USDCx","decimals":18,
	   "flow_rate":"38580246913580","start_time":"2025-10-01T00:00:00Z","end_time":"2025-11-01T00:00:00Z"}
	]`

	records, err := LoadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, KindInstant, records[0].Kind)
	assert.NotEqual(t, uuid.Nil, records[0].ID)
	assert.Equal(t, "6f1c1b7e-6d8a-4c8e-9b1a-2f7f9f0e5a11", records[1].ID.String())
	assert.Equal(t, "38580246913580", records[1].FlowRate.String())
	require.NotNil(t, records[1].EndTime)
}

func TestLoadRecords_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"缺少接收方", `[{"kind":"instant","token":"USDCx","amount":"1","start_time":"2025-10-01T00:00:00Z"}]`},
		{"金额非法", `[{"kind":"instant","receiver":"0x2","token":"USDCx","amount":"-1","start_time":"2025-10-01T00:00:00Z"}]`},
		{"零流速", `[{"kind":"stream","receiver":"0x2","token":"USDCx","flow_rate":"0","start_time":"2025-10-01T00:00:00Z"}]`},
		{"结束早于开始", `[{"kind":"stream","receiver":"0x2","token":"USDCx","flow_rate":"1",
			"start_time":"2025-10-02T00:00:00Z","end_time":"2025-10-01T00:00:00Z"}]`},
		{"缺少开始时间", `[{"kind":"stream","receiver":"0x2","token":"USDCx","flow_rate":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecords(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidRecord)
			assert.Contains(t, err.Error(), "record 0")
		})
	}

	_, err := LoadRecords(strings.NewReader(`{"not":"an array"}`))
	assert.Error(t, err)
}
