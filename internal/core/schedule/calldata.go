package schedule

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/core/flow"
)

// 方法名
const (
	MethodCreateFlowSchedule = "createFlowSchedule"
	MethodDeleteFlowSchedule = "deleteFlowSchedule"
	MethodExecuteCreateFlow  = "executeCreateFlow"
	MethodExecuteDeleteFlow  = "executeDeleteFlow"
)

// ErrDateOutOfRange 日期无法编码为 uint32 秒级时间戳
var ErrDateOutOfRange = errors.New("date out of uint32 range")

// flowSchedulerJSON FlowScheduler 合约中本包使用的方法
const flowSchedulerJSON = `[
  {"type":"function","name":"createFlowSchedule","stateMutability":"nonpayable",
   "inputs":[
     {"name":"superToken","type":"address"},
     {"name":"receiver","type":"address"},
     {"name":"startDate","type":"uint32"},
     {"name":"startMaxDelay","type":"uint32"},
     {"name":"flowRate","type":"int96"},
     {"name":"startAmount","type":"uint256"},
     {"name":"endDate","type":"uint32"},
     {"name":"userData","type":"bytes"},
     {"name":"ctx","type":"bytes"}],
   "outputs":[{"name":"newCtx","type":"bytes"}]},
  {"type":"function","name":"deleteFlowSchedule","stateMutability":"nonpayable",
   "inputs":[
     {"name":"superToken","type":"address"},
     {"name":"receiver","type":"address"},
     {"name":"ctx","type":"bytes"}],
   "outputs":[{"name":"newCtx","type":"bytes"}]},
  {"type":"function","name":"executeCreateFlow","stateMutability":"nonpayable",
   "inputs":[
     {"name":"superToken","type":"address"},
     {"name":"sender","type":"address"},
     {"name":"receiver","type":"address"},
     {"name":"userData","type":"bytes"}],
   "outputs":[{"name":"success","type":"bool"}]},
  {"type":"function","name":"executeDeleteFlow","stateMutability":"nonpayable",
   "inputs":[
     {"name":"superToken","type":"address"},
     {"name":"sender","type":"address"},
     {"name":"receiver","type":"address"},
     {"name":"userData","type":"bytes"}],
   "outputs":[{"name":"success","type":"bool"}]}
]`

var flowSchedulerABI = mustParseABI(flowSchedulerJSON)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("parse FlowScheduler ABI: %v", err))
	}
	return parsed
}

// MethodID 返回方法的 4 字节选择器
func MethodID(method string) ([]byte, bool) {
	m, ok := flowSchedulerABI.Methods[method]
	if !ok {
		return nil, false
	}
	return common.CopyBytes(m.ID), true
}

// EncodeCreateFlowSchedule 编码 createFlowSchedule 调用
//
// 参数先经过 Validate；未设置的可选字段按合约约定编码为 0 / 空字节，ctx 始终为空
// （由宿主合约在调用时注入）。
func EncodeCreateFlowSchedule(p Params, now time.Time) ([]byte, error) {
	if err := Validate(p, now).Err(); err != nil {
		return nil, err
	}

	startDate, err := unixSeconds(p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endDate, err := unixSeconds(p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}

	var maxDelay uint32
	if p.StartMaxDelay != nil {
		maxDelay = *p.StartMaxDelay
	}
	rate := new(big.Int)
	if p.FlowRate != nil {
		rate = p.FlowRate.BigInt()
	}
	startAmount := new(big.Int)
	if p.StartAmount != nil {
		startAmount.Set(p.StartAmount)
	}

	return flowSchedulerABI.Pack(MethodCreateFlowSchedule,
		common.HexToAddress(p.SuperToken),
		common.HexToAddress(p.Receiver),
		startDate,
		maxDelay,
		rate,
		startAmount,
		endDate,
		nonNil(p.UserData),
		[]byte{},
	)
}

// EncodeDeleteFlowSchedule 编码 deleteFlowSchedule 调用
func EncodeDeleteFlowSchedule(superToken, receiver string) ([]byte, error) {
	if err := checkAddresses(map[string]string{"super token": superToken, "receiver": receiver}); err != nil {
		return nil, err
	}
	return flowSchedulerABI.Pack(MethodDeleteFlowSchedule,
		common.HexToAddress(superToken),
		common.HexToAddress(receiver),
		[]byte{},
	)
}

// EncodeExecuteCreateFlow 编码 executeCreateFlow 调用（由执行者在开始时间到达后发起）
func EncodeExecuteCreateFlow(superToken, sender, receiver string, userData []byte) ([]byte, error) {
	return encodeExecute(MethodExecuteCreateFlow, superToken, sender, receiver, userData)
}

// EncodeExecuteDeleteFlow 编码 executeDeleteFlow 调用（由执行者在结束时间到达后发起）
func EncodeExecuteDeleteFlow(superToken, sender, receiver string, userData []byte) ([]byte, error) {
	return encodeExecute(MethodExecuteDeleteFlow, superToken, sender, receiver, userData)
}

func encodeExecute(method, superToken, sender, receiver string, userData []byte) ([]byte, error) {
	if err := checkAddresses(map[string]string{"super token": superToken, "sender": sender, "receiver": receiver}); err != nil {
		return nil, err
	}
	return flowSchedulerABI.Pack(method,
		common.HexToAddress(superToken),
		common.HexToAddress(sender),
		common.HexToAddress(receiver),
		nonNil(userData),
	)
}

// DecodeCreateFlowSchedule 解析 createFlowSchedule calldata
func DecodeCreateFlowSchedule(data []byte) (Params, error) {
	method := flowSchedulerABI.Methods[MethodCreateFlowSchedule]
	if len(data) < 4 || !bytes.Equal(data[:4], method.ID) {
		return Params{}, fmt.Errorf("%w: not a %s call", ErrInvalidParams, MethodCreateFlowSchedule)
	}

	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	p := Params{
		SuperToken:  values[0].(common.Address).Hex(),
		Receiver:    values[1].(common.Address).Hex(),
		StartAmount: values[5].(*big.Int),
		UserData:    values[7].([]byte),
	}
	if start := values[2].(uint32); start != 0 {
		t := time.Unix(int64(start), 0).UTC()
		p.StartDate = &t
	}
	if delay := values[3].(uint32); delay != 0 {
		p.StartMaxDelay = &delay
	}
	if raw := values[4].(*big.Int); raw.Sign() != 0 {
		rate, err := flow.NewFlowRate(raw)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		p.FlowRate = &rate
	}
	if end := values[6].(uint32); end != 0 {
		t := time.Unix(int64(end), 0).UTC()
		p.EndDate = &t
	}
	return p, nil
}

func unixSeconds(t *time.Time) (uint32, error) {
	if t == nil {
		return 0, nil
	}
	secs := t.Unix()
	if secs < 0 || secs > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s", ErrDateOutOfRange, t.UTC().Format(time.RFC3339))
	}
	return uint32(secs), nil
}

func checkAddresses(fields map[string]string) error {
	var errs []error
	for _, name := range []string{"super token", "sender", "receiver"} {
		addr, ok := fields[name]
		if ok && !IsAddress(addr) {
			errs = append(errs, fmt.Errorf("%s %q is not a valid address", name, addr))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
