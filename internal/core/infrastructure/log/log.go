// Package log 提供基于zap的日志实现
// 支持控制台/文件双输出、lumberjack 日志轮转与全局日志记录器
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	logconfig "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config/log"
	logInterface "github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/infrastructure/log"
)

// CLIModeEnv 为 "true" 时禁止控制台输出，避免日志混入命令行结果
const CLIModeEnv = "DRIP_CLI_MODE"

var (
	// 全局日志实例，使用接口类型
	globalLogger logInterface.Logger
	// 用于保护全局日志实例的互斥锁
	mu sync.RWMutex
)

// Logger 是日志记录器的结构体，实现了log.Logger接口
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

// 初始化全局日志记录器
func init() {
	ResetDefault()
}

// ResetDefault 重置全局日志记录器为默认配置
func ResetDefault() {
	logger, err := New(logconfig.New(nil).GetOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize default logger: %v\n", err)
		return
	}
	SetLogger(logger)
}

// cliMode 是否处于 CLI 模式
func cliMode() bool {
	return os.Getenv(CLIModeEnv) == "true"
}

// createFileWriter 创建带轮转的日志文件写入器
func createFileWriter(options *logconfig.LogOptions) (zapcore.WriteSyncer, error) {
	logPath, err := filepath.Abs(options.FilePath)
	if err != nil {
		return nil, fmt.Errorf("解析日志路径失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return nil, fmt.Errorf("创建日志目录失败 %s: %w", filepath.Dir(logPath), err)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    options.MaxSize,    // megabytes
		MaxBackups: options.MaxBackups, // 最多保留文件数
		MaxAge:     options.MaxAge,     // days
		Compress:   options.Compress,
	}), nil
}

// New 根据配置创建新的日志记录器
//
// FilePath 为 "stdout"/"stderr" 时按控制台处理；CLI 模式下控制台输出被关闭，
// 若此时也没有文件输出，返回丢弃全部日志的记录器。
func New(options *logconfig.LogOptions) (logInterface.Logger, error) {
	if options == nil {
		options = logconfig.New(nil).GetOptions()
	}
	level := zap.NewAtomicLevelAt(options.GetZapLevel())

	var cores []zapcore.Core

	outputPath := options.FilePath
	toStd := outputPath == "stdout" || outputPath == "stderr"
	if !cliMode() && (toStd || options.ToConsole) {
		output := zapcore.AddSync(os.Stdout)
		if outputPath == "stderr" {
			output = zapcore.AddSync(os.Stderr)
		}
		cores = append(cores, zapcore.NewCore(options.CreateConsoleEncoder(), output, level))
	}

	if outputPath != "" && !toStd {
		writer, err := createFileWriter(options)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(options.CreateFileEncoder(), writer, level))
	}

	var zapOpts []zap.Option
	if options.EnableCaller {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if options.EnableStacktrace {
		zapOpts = append(zapOpts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zapOpts...)
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}, nil
}

// NewNop 创建丢弃所有输出的日志记录器（测试与静默模式使用）
func NewNop() logInterface.Logger {
	z := zap.NewNop()
	return &Logger{zapLogger: z, sugar: z.Sugar()}
}

// FromZap 包装已有的 zap 日志记录器
func FromZap(z *zap.Logger) logInterface.Logger {
	if z == nil {
		return NewNop()
	}
	return &Logger{zapLogger: z, sugar: z.Sugar()}
}

// GetZapLogger 获取底层的zap日志记录器
func (l *Logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}

// SetLogger 设置全局日志记录器
func SetLogger(logger logInterface.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// current 返回全局日志记录器，未初始化时返回丢弃输出的记录器
func current() logInterface.Logger {
	if l := GetLogger(); l != nil {
		return l
	}
	return NewNop()
}

// 以下是全局日志函数

// Debugf 使用格式化字符串记录调试级别的日志
func Debugf(format string, args ...interface{}) { current().Debugf(format, args...) }

// Infof 使用格式化字符串记录信息级别的日志
func Infof(format string, args ...interface{}) { current().Infof(format, args...) }

// Warnf 使用格式化字符串记录警告级别的日志
func Warnf(format string, args ...interface{}) { current().Warnf(format, args...) }

// Errorf 使用格式化字符串记录错误级别的日志
func Errorf(format string, args ...interface{}) { current().Errorf(format, args...) }

// With 创建带有额外字段的日志记录器
func With(args ...interface{}) logInterface.Logger { return current().With(args...) }

// 将可变参数转换为zap字段
// 参数必须是偶数个，按键值对形式提供：key1, value1, key2, value2, ...
func toZapFields(args ...interface{}) []zap.Field {
	if len(args)%2 != 0 {
		args = args[:len(args)-1]
	}

	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

func (l *Logger) Debug(msg string)                          { l.sugar.Debug(msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(msg string)                           { l.sugar.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(msg string)                           { l.sugar.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(msg string)                          { l.sugar.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l *Logger) Fatal(msg string)                          { l.sugar.Fatal(msg) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// With 返回一个带有额外字段的Logger
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	z := l.zapLogger.With(toZapFields(args...)...)
	return &Logger{zapLogger: z, sugar: z.Sugar()}
}

// Sync 同步日志缓冲区到输出
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
