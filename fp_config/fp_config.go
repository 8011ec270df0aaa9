package fp_config

import "time"

const GinPort = "19123"

// 挖掘默认参数
const (
	MinSupport    = float64(0.01)
	MinConfidence = float64(0.5)
	MinLift       = float64(0)
	// Workers 为0时按CPU数决定并发度
	Workers = 0
	// MaxWorkers 协程池上限
	MaxWorkers = 64
)

// MaxItemSetSize 规则生成按位枚举子集, 超过这个长度的频繁项集无法枚举
const MaxItemSetSize = 63

// 支持度换算成最小计数时的浮点误差容忍
const SupportEpsilon = 1e-9

// 输入输出
const (
	InputSeparator = ","
	ResultDir      = "result"
	RuleArrow      = " => "
	ItemSeparator  = " "
)

// 输出格式
const (
	FormatCsv   = "csv"
	FormatYaml  = "yaml"
	FormatTable = "table"
)

// 任务状态
const (
	TaskRunning  = "running"
	TaskFinished = "finished"
	TaskFailed   = "failed"
)

// TaskRetention 结束的任务保留时间, 过期后在新任务提交时清理
const TaskRetention = time.Hour

// 规则过滤表达式中可用的变量
const (
	FilterSupport        = "support"
	FilterConfidence     = "confidence"
	FilterLift           = "lift"
	FilterCount          = "count"
	FilterAntecedentSize = "antecedent_size"
	FilterConsequentSize = "consequent_size"
)
