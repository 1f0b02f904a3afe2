package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/chain"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/infrastructure/clock"
	corelog "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/infrastructure/log"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/payroll"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/schedule"
)

var t0 = time.Unix(1_700_000_000, 0).UTC()

const (
	testToken    = "0x1650581f573ead727b92073b5ef8b4f5b94d1648"
	testReceiver = "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf"
	testSender   = "0x2b5ad5c4795c026514f8317c7a215e218dccd6cf"
)

// run 以固定时钟执行一次 drip 命令，返回标准输出与标准错误
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(corelog.CLIModeEnv, "true")
	t.Setenv(app.EnvConfigPath, "")
	pterm.DisableStyling()

	var stdout, stderr bytes.Buffer
	c := &cli{stdout: &stdout, stderr: &stderr, now: clock.NewMockClock(t0).Now}
	root := newRootCmdWith(c)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, out string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func TestFlowRateFromAmount(t *testing.T) {
	out, _, err := run(t, "flowrate", "from-amount", "100", "--unit", "month", "--decimals", "6")
	require.NoError(t, err)

	var res struct {
		FlowRate string `json:"flow_rate"`
		Decimals uint8  `json:"decimals"`
		PerUnit  []struct {
			Unit   string `json:"unit"`
			Amount string `json:"amount"`
		} `json:"per_unit"`
	}
	decode(t, out, &res)
	assert.Equal(t, "38", res.FlowRate)
	assert.Equal(t, uint8(6), res.Decimals)
	require.Len(t, res.PerUnit, 4)
	assert.Equal(t, "month", res.PerUnit[3].Unit)
	assert.Equal(t, "98.496000", res.PerUnit[3].Amount)

	// 精度来自注册表
	out, _, err = run(t, "flowrate", "from-amount", "100", "--chain", "84532", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "38580246913580\n", out)
}

func TestFlowRateErrors(t *testing.T) {
	_, _, err := run(t, "flowrate", "from-amount", "100")
	assert.ErrorIs(t, err, errMissingDecimals)

	_, _, err = run(t, "flowrate", "from-amount", "100", "--chain", "1")
	assert.ErrorIs(t, err, chain.ErrUnknownChain)

	_, _, err = run(t, "flowrate", "from-amount", "abc", "--decimals", "6")
	assert.ErrorIs(t, err, flow.ErrInvalidAmount)

	_, _, err = run(t, "flowrate", "from-amount", "100", "--decimals", "6", "--unit", "year")
	assert.ErrorIs(t, err, flow.ErrInvalidTimeUnit)

	_, _, err = run(t, "flowrate", "from-total", "100", "--decimals", "6", "--start", "1700000000", "--end", "1700000000")
	assert.ErrorIs(t, err, flow.ErrInvalidInterval)

	_, _, err = run(t, "flowrate", "from-amount", "100", "--decimals", "6", "-o", "yaml")
	assert.Error(t, err)
}

func TestFlowRateFromTotalAndDisplay(t *testing.T) {
	out, _, err := run(t, "flowrate", "from-total", "50", "--decimals", "6",
		"--start", "2023-11-14T22:13:20Z", "--end", "1700003600", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "13888\n", out)

	out, _, err = run(t, "flowrate", "display", "38", "--decimals", "6", "--precision", "2", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "98.50\n", out)

	_, _, err = run(t, "flowrate", "display", "38", "--decimals", "6", "--precision", "19")
	assert.Error(t, err)
}

func TestAccrued(t *testing.T) {
	out, _, err := run(t, "accrued", "--flow-rate", "13888", "--decimals", "6",
		"--start", "1700000000", "--end", "1700003600")
	require.NoError(t, err)

	var res accruedResult
	decode(t, out, &res)
	assert.Equal(t, "50.00", res.Total)
	assert.Equal(t, "49996800", res.Units)

	// 未给出 --end 时按当前时间（固定时钟）计算，尚未开始的流为 0
	out, _, err = run(t, "accrued", "--flow-rate", "13888", "--decimals", "6", "--start", "1700000100", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "0.00\n", out)
}

func TestBalance(t *testing.T) {
	out, _, err := run(t, "balance", "--starting-balance", "1234000000", "--since", "1700000000",
		"--flow-rate", "13888", "--decimals", "6", "--at", "1700000001")
	require.NoError(t, err)

	var res balanceResult
	decode(t, out, &res)
	assert.Equal(t, "1234013888", res.Balance)
	assert.Equal(t, "1234.0138", res.Display)
	assert.Equal(t, 4, res.DisplayDecimals)

	_, _, err = run(t, "balance", "--starting-balance", "1.5", "--since", "1700000000",
		"--flow-rate", "1", "--decimals", "6")
	assert.ErrorIs(t, err, flow.ErrInvalidAmount)

	_, _, err = run(t, "balance", "--since", "1700000000", "--flow-rate", "1", "--decimals", "6", "--tick-ms", "0")
	assert.Error(t, err)
}

func TestScheduleValidate(t *testing.T) {
	out, _, err := run(t, "schedule", "validate", "--super-token", "0x1", "--receiver", testReceiver)
	require.ErrorIs(t, err, schedule.ErrInvalidParams)

	var res schedule.ValidationResult
	decode(t, out, &res)
	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Errors)

	out, _, err = run(t, "schedule", "validate", "--super-token", testToken, "--receiver", testReceiver,
		"--start", "1700003600", "--flow-rate", "13888", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)
}

func TestScheduleCalldata(t *testing.T) {
	out, _, err := run(t, "schedule", "calldata", "--super-token", testToken, "--receiver", testReceiver,
		"--start", "1700003600", "--flow-rate", "13888", "--start-amount", "1000000", "--user-data", "0xdeadbeef")
	require.NoError(t, err)

	var res struct {
		Method string        `json:"method"`
		Data   hexutil.Bytes `json:"data"`
	}
	decode(t, out, &res)
	assert.Equal(t, "create", res.Method)

	decoded, err := schedule.DecodeCreateFlowSchedule(res.Data)
	require.NoError(t, err)
	require.NotNil(t, decoded.FlowRate)
	assert.Equal(t, "13888", decoded.FlowRate.String())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, decoded.UserData)

	out, _, err = run(t, "schedule", "calldata", "--method", "execute_delete",
		"--super-token", testToken, "--sender", testSender, "--receiver", testReceiver, "-o", "text")
	require.NoError(t, err)
	id, _ := schedule.MethodID(schedule.MethodExecuteDeleteFlow)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), hexutil.Encode(id)), out)

	_, _, err = run(t, "schedule", "calldata", "--method", "transfer", "--super-token", testToken, "--receiver", testReceiver)
	assert.Error(t, err)

	_, _, err = run(t, "schedule", "calldata", "--super-token", testToken, "--receiver", testReceiver,
		"--user-data", "zz")
	assert.Error(t, err)
}

func writeRecords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	records := `[
	  {"kind":"instant","sender":"0x1","receiver":"0xaa","chain_id":84532,"token":"USDCx","decimals":6,
	   "amount":"12.5","start_time":"2023-11-14T00:00:00Z"},
	  {"kind":"stream","sender":"0x1","receiver":"0xaa","chain_id":84532,"token":"USDCx","decimals":6,
	   "flow_rate":"13888","start_time":"2023-11-14T22:13:20Z","end_time":"2023-11-14T23:13:20Z"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(records), 0o600))
	return path
}

func TestPayroll(t *testing.T) {
	path := writeRecords(t)

	out, _, err := run(t, "payroll", "summary", "--file", path)
	require.NoError(t, err)

	var summary struct {
		Records int `json:"records"`
		Tokens  []struct {
			Total string `json:"total"`
		} `json:"tokens"`
	}
	decode(t, out, &summary)
	require.Len(t, summary.Tokens, 1)
	assert.Equal(t, "62.50", summary.Tokens[0].Total)

	out, _, err = run(t, "payroll", "invoice", "--file", path, "--receiver", "0xAA", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "USDCx")

	_, _, err = run(t, "payroll", "invoice", "--file", path, "--receiver", "0xcc")
	assert.Error(t, err)

	_, _, err = run(t, "payroll", "summary", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad,
		[]byte(`[{"kind":"stream","receiver":"0xbb","token":"USDCx","flow_rate":"0","start_time":"2023-11-14T00:00:00Z"}]`), 0o600))
	_, _, err = run(t, "payroll", "summary", "--file", bad)
	assert.ErrorIs(t, err, payroll.ErrInvalidRecord)
}

func TestChains(t *testing.T) {
	out, _, err := run(t, "chains", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "84532")
	assert.Contains(t, out, "11155111")

	out, _, err = run(t, "chains", "84532")
	require.NoError(t, err)
	var c chain.Chain
	decode(t, out, &c)
	assert.Equal(t, uint64(84532), c.ChainID)
	assert.Equal(t, uint8(18), c.Super.Decimals)

	_, _, err = run(t, "chains", "1")
	assert.ErrorIs(t, err, chain.ErrUnknownChain)
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("1700000000")
	require.NoError(t, err)
	assert.True(t, got.Equal(t0))

	got, err = parseTime("2023-11-14T22:13:20Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(t0))

	_, err = parseTime("yesterday")
	assert.Error(t, err)

	none, err := optionalTime(" ")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSilent(t *testing.T) {
	out, _, err := run(t, "chains", "--silent")
	require.NoError(t, err)
	assert.Empty(t, out)
}
