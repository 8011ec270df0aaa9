package growth

import (
	"sync/atomic"

	"fpminer/catalog"
	"fpminer/fptree"
)

// Stats 挖掘过程统计
type Stats struct {
	ConditionalTrees int64 // 构建的条件树数量
	SinglePaths      int64 // 走单路径捷径的次数
}

// Miner FP-growth递归挖掘, 每一层按项分支并发执行
type Miner struct {
	minCount uint32
	sched    *Scheduler

	conditionalTrees atomic.Int64
	singlePaths      atomic.Int64
}

func NewMiner(minCount uint32, sched *Scheduler) *Miner {
	if minCount == 0 {
		minCount = 1
	}
	return &Miner{minCount: minCount, sched: sched}
}

// Mine 挖掘tree中所有支持度>=minCount的项集. tree在挖掘期间只读
func (m *Miner) Mine(tree *fptree.Tree) *Collection {
	collection := NewCollection()
	collection.Merge(m.mine(tree, nil))
	return collection
}

func (m *Miner) Stats() Stats {
	return Stats{
		ConditionalTrees: m.conditionalTrees.Load(),
		SinglePaths:      m.singlePaths.Load(),
	}
}

func (m *Miner) mine(tree *fptree.Tree, suffix []catalog.Item) []ItemSet {
	if tree.Empty() {
		return nil
	}
	if tree.IsSinglePath() {
		m.singlePaths.Add(1)
		return m.enumeratePath(tree.SinglePath(), suffix)
	}

	// 从支持度最低的项开始, 每个项一个分支任务
	items := tree.Items()
	tasks := make([]func() []ItemSet, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		support := tree.Support(item)
		if support < m.minCount {
			continue
		}
		tasks = append(tasks, func() []ItemSet {
			return m.branch(tree, item, support, suffix)
		})
	}

	var sets []ItemSet
	for _, result := range ForkJoin(m.sched, tasks) {
		sets = append(sets, result...)
	}
	return sets
}

// branch 输出 suffix∪{item}, 再在item的条件树上递归
func (m *Miner) branch(tree *fptree.Tree, item catalog.Item, support uint32, suffix []catalog.Item) []ItemSet {
	newSuffix := make([]catalog.Item, len(suffix)+1)
	copy(newSuffix, suffix)
	newSuffix[len(suffix)] = item

	sets := []ItemSet{NewItemSet(newSuffix, support)}
	conditional := fptree.BuildConditional(tree.ConditionalBase(item), m.minCount)
	m.conditionalTrees.Add(1)
	return append(sets, m.mine(conditional, newSuffix)...)
}

// enumeratePath 单路径上任意非空子集都是频繁的, 支持度是子集中最深结点的计数(路径上计数从上到下不增)
func (m *Miner) enumeratePath(path []*fptree.Node, suffix []catalog.Item) []ItemSet {
	usable := len(path)
	for i, node := range path {
		if node.Count() < m.minCount {
			usable = i
			break
		}
	}
	path = path[:usable]

	var sets []ItemSet
	chosen := make([]catalog.Item, 0, len(suffix)+len(path))
	chosen = append(chosen, suffix...)
	var walk func(start int)
	walk = func(start int) {
		for i := start; i < len(path); i++ {
			if i > 0 && path[i].Count() > path[i-1].Count() {
				panic("growth: counts increase along a single path")
			}
			chosen = append(chosen, path[i].Item())
			sets = append(sets, NewItemSet(chosen, path[i].Count()))
			walk(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	walk(0)
	return sets
}
