// Package output provides output formatting functionality for client commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pterm/pterm"
)

// Format 输出格式
type Format string

const (
	// FormatJSON JSON格式（默认）
	FormatJSON Format = "json"
	// FormatPretty 美化JSON格式
	FormatPretty Format = "pretty"
	// FormatTable 表格格式
	FormatTable Format = "table"
	// FormatText 纯文本格式
	FormatText Format = "text"
)

// ParseFormat 解析输出格式，未知值返回错误
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatPretty, FormatTable, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected json|pretty|table|text)", s)
}

// Table 表格数据，第一行为表头
type Table [][]string

// Tabular 可以以表格形式输出的数据
type Tabular interface {
	Table() Table
}

// Texter 可以以单行/多行文本输出的数据
type Texter interface {
	Text() string
}

// Formatter 输出格式化器
type Formatter struct {
	format    Format
	writer    io.Writer // 数据输出（JSON/表格等）
	logWriter io.Writer // 日志输出（Info/Success/Error等）
	silent    bool
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Formatter{
		format:    format,
		writer:    writer,
		logWriter: os.Stderr, // 日志输出到 stderr，避免污染 JSON
	}
}

// SetLogWriter 设置日志输出目标（默认 stderr）
func (f *Formatter) SetLogWriter(writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	f.logWriter = writer
}

// SetSilent 设置静默模式
func (f *Formatter) SetSilent(silent bool) {
	f.silent = silent
}

// OutputFormat 当前输出格式
func (f *Formatter) OutputFormat() Format {
	return f.format
}

// Writer 数据输出目标
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// Print 打印输出
func (f *Formatter) Print(data interface{}) error {
	if f.silent {
		return nil
	}

	switch f.format {
	case FormatPretty:
		return f.printJSON(data, true)
	case FormatTable:
		return f.printTable(data)
	case FormatText:
		return f.printText(data)
	default:
		return f.printJSON(data, false)
	}
}

func (f *Formatter) printJSON(data interface{}, pretty bool) error {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, string(out)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printTable 使用 pterm 渲染表格，无法表格化的数据降级为美化 JSON
func (f *Formatter) printTable(data interface{}) error {
	var table Table
	switch v := data.(type) {
	case Tabular:
		table = v.Table()
	case map[string]interface{}:
		table = mapTable(v)
	case map[string]string:
		m := make(map[string]interface{}, len(v))
		for k, s := range v {
			m[k] = s
		}
		table = mapTable(m)
	default:
		return f.printJSON(data, true)
	}
	if len(table) == 0 {
		return nil
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(table)).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (f *Formatter) printText(data interface{}) error {
	var s string
	switch v := data.(type) {
	case Texter:
		s = v.Text()
	case string:
		s = v
	default:
		s = FormatValue(v)
	}
	if _, err := fmt.Fprintln(f.writer, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// PrintSuccess 打印成功消息（输出到 stderr，避免污染 JSON）
func (f *Formatter) PrintSuccess(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprintf(f.logWriter, "✅ %s\n", message)
}

// PrintError 打印错误消息，静默模式下也输出
func (f *Formatter) PrintError(err error) {
	_, _ = fmt.Fprintf(f.logWriter, "❌ Error: %v\n", err)
}

// PrintWarning 打印警告消息
func (f *Formatter) PrintWarning(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprintf(f.logWriter, "⚠️  %s\n", message)
}

// PrintInfo 打印信息消息
func (f *Formatter) PrintInfo(message string) {
	if f.silent {
		return
	}
	_, _ = fmt.Fprintf(f.logWriter, "ℹ️  %s\n", message)
}

// ===== 辅助函数 =====

// FormatValue 将任意值格式化为单元格文本
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case int, int64, uint, uint64, uint8:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return "-"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// mapTable 两列 Key | Value，按 key 排序
func mapTable(data map[string]interface{}) Table {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := Table{{"Key", "Value"}}
	for _, k := range keys {
		table = append(table, []string{k, FormatValue(data[k])})
	}
	return table
}
