package engine

import (
	"math"
	"time"

	"fpminer/catalog"
	"fpminer/fptree"
	"fpminer/growth"
	"fpminer/rock-share/base/logger"
	"fpminer/rules"
	"fpminer/utils"
)

// Options 挖掘参数. MinCount非0时直接作为最小计数, 否则由MinSupport换算
type Options struct {
	MinSupport    float64
	MinCount      uint32
	MinConfidence float64
	MinLift       float64
	Workers       int    // <=0 按CPU数, 1 串行
	Filter        string // 规则过滤表达式, 可为空
	CheckTree     bool   // 构建后检查FP树的不变量
}

// Validate 在开始挖掘之前检查阈值范围
func (o Options) Validate() error {
	if o.MinCount == 0 && (math.IsNaN(o.MinSupport) || o.MinSupport <= 0 || o.MinSupport > 1) {
		return utils.InvalidThreshold("min support %v must be in range (0,1]", o.MinSupport)
	}
	if math.IsNaN(o.MinConfidence) || o.MinConfidence < 0 || o.MinConfidence > 1 {
		return utils.InvalidThreshold("min confidence %v must be in range [0,1]", o.MinConfidence)
	}
	if math.IsNaN(o.MinLift) || o.MinLift < 0 {
		return utils.InvalidThreshold("min lift %v must be non-negative", o.MinLift)
	}
	return nil
}

// Timings 各阶段耗时
type Timings struct {
	Count  time.Duration // 统计项频率
	Build  time.Duration // 构建初始FP树
	Mine   time.Duration // 递归FP-growth
	Rules  time.Duration // 生成规则
	Filter time.Duration
	Total  time.Duration
}

type Result struct {
	Catalog   *catalog.Catalog
	Tree      *fptree.Tree
	ItemSets  []growth.ItemSet
	Rules     []rules.Rule
	Total     int
	MinCount  uint32
	MineStats growth.Stats
	Timings   Timings
}

// Run 完整的挖掘流程: 统计频率 -> 建树 -> FP-growth -> 生成规则 -> 过滤
func Run(transactions [][]string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	filter, err := rules.NewFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	sched, err := growth.NewScheduler(opts.Workers)
	if err != nil {
		return nil, err
	}
	defer sched.Close()

	start := time.Now()
	result := &Result{Total: len(transactions)}

	t := time.Now()
	c := catalog.Build(transactions)
	result.Catalog = c
	result.MinCount = opts.MinCount
	if result.MinCount == 0 {
		result.MinCount = c.MinCount(opts.MinSupport)
	}
	result.Timings.Count = time.Since(t)
	logger.Infof("counted %d transactions, %d distinct items, min count %d, in %dms",
		c.Total(), c.Len(), result.MinCount, result.Timings.Count.Milliseconds())

	t = time.Now()
	order := c.FrequentOrder(result.MinCount)
	tree := fptree.New(fptree.NewOrder(order))
	for _, transaction := range transactions {
		tree.Insert(c.Encode(transaction), 1)
	}
	result.Tree = tree
	result.Timings.Build = time.Since(t)
	logger.Infof("built fp-tree of %d frequent items and %d nodes in %dms",
		len(order), tree.NodeCount(), result.Timings.Build.Milliseconds())
	if opts.CheckTree {
		if err := tree.Validate(); err != nil {
			logger.Errorf("fp-tree invariant broken: %v", err)
			panic(err)
		}
	}

	t = time.Now()
	miner := growth.NewMiner(result.MinCount, sched)
	collection := miner.Mine(tree)
	result.ItemSets = collection.Sets()
	result.MineStats = miner.Stats()
	result.Timings.Mine = time.Since(t)
	logger.Infof("fp-growth found %d frequent item-sets with %d workers in %dms, conditional trees:%d, single paths:%d",
		collection.Len(), sched.Workers(), result.Timings.Mine.Milliseconds(),
		result.MineStats.ConditionalTrees, result.MineStats.SinglePaths)

	t = time.Now()
	thresholds := rules.Thresholds{MinConfidence: opts.MinConfidence, MinLift: opts.MinLift}
	result.Rules = rules.Generate(collection, c.Total(), thresholds, sched)
	result.Timings.Rules = time.Since(t)
	logger.Infof("generated %d rules in %dms", len(result.Rules), result.Timings.Rules.Milliseconds())

	if filter != nil {
		t = time.Now()
		if result.Rules, err = filter.Apply(result.Rules); err != nil {
			return nil, err
		}
		result.Timings.Filter = time.Since(t)
	}

	result.Timings.Total = time.Since(start)
	logger.Infof("mining finished in %dms, item-sets:%d, rules:%d",
		result.Timings.Total.Milliseconds(), len(result.ItemSets), len(result.Rules))
	return result, nil
}
