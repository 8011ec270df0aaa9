/*
	FP树, 用数组保存所有结点, 结点之间用下标互相引用:
	1.每个结点记录父结点下标和子结点下标, 同一父结点下每个项最多一个子结点(前缀共享)
	2.相同项的结点用next串成链, 链头在heads里, 按项在Order中的位置索引
	树建好之后只读, 条件树由各自的挖掘任务单独构建
*/

package fptree

import (
	"fmt"

	"fpminer/catalog"
)

// NodeId Node的id，root为0，对应结点数组的下标
type NodeId int32

const (
	RootId NodeId = 0
	NilId  NodeId = -1
)

type Node struct {
	item     catalog.Item
	count    uint32   // 经过该结点的事务数
	parent   NodeId   // root的parent是NilId
	children []NodeId // 子结点, item互不相同
	next     NodeId   // 下一个同项结点
}

func (n *Node) Item() catalog.Item {
	return n.item
}

func (n *Node) Count() uint32 {
	return n.count
}

// Path 条件模式基中的一条前缀路径, Items从根往下排
type Path struct {
	Items []catalog.Item
	Count uint32
}

type Tree struct {
	nodes  []Node
	order  Order
	heads  []NodeId // heads[rank] 同项链的第一个结点
	tails  []NodeId // tails[rank] 同项链的最后一个结点, 追加用
	counts []uint32 // counts[rank] 该项在树中的支持度
}

func New(order Order) *Tree {
	t := &Tree{
		nodes:  make([]Node, 1, 16),
		order:  order,
		heads:  make([]NodeId, order.Len()),
		tails:  make([]NodeId, order.Len()),
		counts: make([]uint32, order.Len()),
	}
	t.nodes[RootId] = Node{item: catalog.NullItem, parent: NilId, next: NilId}
	for i := range t.heads {
		t.heads[i] = NilId
		t.tails[i] = NilId
	}
	return t
}

// BuildConditional 由条件模式基构建条件树, 顺序按条件支持度重新计算, 不够minCount的项直接去掉
func BuildConditional(base []Path, minCount uint32) *Tree {
	counts := make(map[catalog.Item]uint32)
	for _, path := range base {
		for _, item := range path.Items {
			counts[item] += path.Count
		}
	}
	t := New(RankByCount(counts, minCount))
	if t.order.Len() == 0 {
		return t
	}
	for _, path := range base {
		t.Insert(path.Items, path.Count)
	}
	return t
}

func (t *Tree) addNode(parent NodeId, item catalog.Item, rank int) NodeId {
	id := NodeId(len(t.nodes))
	t.nodes = append(t.nodes, Node{item: item, parent: parent, next: NilId})
	t.nodes[parent].children = append(t.nodes[parent].children, id)

	// 挂到同项链的尾部
	if t.tails[rank] == NilId {
		t.heads[rank] = id
	} else {
		t.nodes[t.tails[rank]].next = id
	}
	t.tails[rank] = id
	return id
}

func (t *Tree) childOf(id NodeId, item catalog.Item) NodeId {
	for _, child := range t.nodes[id].children {
		if t.nodes[child].item == item {
			return child
		}
	}
	return NilId
}

// Insert 插入一个事务(count份), 事务先投影到树的顺序上再按顺序排序, 共享前缀只累加计数
func (t *Tree) Insert(transaction []catalog.Item, count uint32) {
	if count == 0 {
		return
	}
	id := RootId
	for _, item := range t.order.Project(transaction) {
		rank := t.order.Rank(item)
		child := t.childOf(id, item)
		if child == NilId {
			child = t.addNode(id, item, rank)
		}
		t.nodes[child].count += count
		t.counts[rank] += count
		id = child
	}
}

func (t *Tree) Order() Order {
	return t.order
}

// Items 树中出现的项, 支持度降序
func (t *Tree) Items() []catalog.Item {
	items := make([]catalog.Item, 0, t.order.Len())
	for rank, item := range t.order.Items() {
		if t.heads[rank] != NilId {
			items = append(items, item)
		}
	}
	return items
}

// Support 项在这棵树里的支持度
func (t *Tree) Support(item catalog.Item) uint32 {
	rank := t.order.Rank(item)
	if rank < 0 {
		return 0
	}
	return t.counts[rank]
}

func (t *Tree) Empty() bool {
	return len(t.nodes) == 1
}

// NodeCount 不含root
func (t *Tree) NodeCount() int {
	return len(t.nodes) - 1
}

func (t *Tree) Node(id NodeId) *Node {
	return &t.nodes[id]
}

// IsSinglePath 所有结点最多一个孩子
func (t *Tree) IsSinglePath() bool {
	for i := range t.nodes {
		if len(t.nodes[i].children) > 1 {
			return false
		}
	}
	return true
}

// SinglePath 单路径树从上到下的结点, 不是单路径时panic
func (t *Tree) SinglePath() []*Node {
	path := make([]*Node, 0, len(t.nodes)-1)
	id := RootId
	for {
		children := t.nodes[id].children
		if len(children) == 0 {
			return path
		}
		if len(children) > 1 {
			panic("fptree: SinglePath on a branching tree")
		}
		id = children[0]
		path = append(path, &t.nodes[id])
	}
}

// Chain 同项链上所有结点
func (t *Tree) Chain(item catalog.Item) []NodeId {
	rank := t.order.Rank(item)
	if rank < 0 {
		return nil
	}
	var chain []NodeId
	for id := t.heads[rank]; id != NilId; id = t.nodes[id].next {
		chain = append(chain, id)
	}
	return chain
}

// ConditionalBase item的条件模式基: 沿同项链, 对每个结点取从root到它(不含它自己)的路径, 权重为结点计数
func (t *Tree) ConditionalBase(item catalog.Item) []Path {
	rank := t.order.Rank(item)
	if rank < 0 {
		panic(fmt.Sprintf("fptree: conditional base of item %d which is not in the tree order", item))
	}
	var base []Path
	for id := t.heads[rank]; id != NilId; id = t.nodes[id].next {
		prefix := t.prefixOf(id)
		if len(prefix) == 0 {
			continue
		}
		base = append(base, Path{Items: prefix, Count: t.nodes[id].count})
	}
	return base
}

func (t *Tree) prefixOf(id NodeId) []catalog.Item {
	var prefix []catalog.Item
	for p := t.nodes[id].parent; p != RootId && p != NilId; p = t.nodes[p].parent {
		prefix = append(prefix, t.nodes[p].item)
	}
	// 反转成从root往下
	for i, j := 0, len(prefix)-1; i < j; i, j = i+1, j-1 {
		prefix[i], prefix[j] = prefix[j], prefix[i]
	}
	return prefix
}

// Validate 检查树的不变量, 用于测试和调试
func (t *Tree) Validate() error {
	chainSum := make([]uint32, t.order.Len())
	for i := 1; i < len(t.nodes); i++ {
		id := NodeId(i)
		node := &t.nodes[i]
		rank := t.order.Rank(node.item)
		if rank < 0 {
			return fmt.Errorf("node %d: item %d not in order", id, node.item)
		}
		if node.count == 0 {
			return fmt.Errorf("node %d: zero count", id)
		}
		parent := &t.nodes[node.parent]
		if node.parent != RootId && t.order.Rank(parent.item) >= rank {
			return fmt.Errorf("node %d: item %d is not after its parent's item %d", id, node.item, parent.item)
		}
		var childSum uint64
		seen := make(map[catalog.Item]struct{}, len(node.children))
		for _, child := range node.children {
			if t.nodes[child].parent != id {
				return fmt.Errorf("node %d: child %d has parent %d", id, child, t.nodes[child].parent)
			}
			if _, ok := seen[t.nodes[child].item]; ok {
				return fmt.Errorf("node %d: two children with item %d", id, t.nodes[child].item)
			}
			seen[t.nodes[child].item] = struct{}{}
			childSum += uint64(t.nodes[child].count)
		}
		if childSum > uint64(node.count) {
			return fmt.Errorf("node %d: count %d below children sum %d", id, node.count, childSum)
		}
	}
	for rank := range t.heads {
		for id := t.heads[rank]; id != NilId; id = t.nodes[id].next {
			if t.order.Rank(t.nodes[id].item) != rank {
				return fmt.Errorf("chain %d: node %d has item %d", rank, id, t.nodes[id].item)
			}
			chainSum[rank] += t.nodes[id].count
		}
		if chainSum[rank] != t.counts[rank] {
			return fmt.Errorf("chain %d: sum %d, support %d", rank, chainSum[rank], t.counts[rank])
		}
	}
	return nil
}
