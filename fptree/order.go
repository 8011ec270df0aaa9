package fptree

import (
	"fpminer/catalog"

	"golang.org/x/exp/slices"
)

// Order 一棵树内项的全序, 位置越靠前支持度越高
type Order struct {
	items []catalog.Item
	rank  map[catalog.Item]int
}

// NewOrder items需已经按支持度降序(相同按编号升序)排好
func NewOrder(items []catalog.Item) Order {
	rank := make(map[catalog.Item]int, len(items))
	for i, item := range items {
		if _, ok := rank[item]; ok || item == catalog.NullItem {
			panic("fptree: order contains duplicate or null item")
		}
		rank[item] = i
	}
	return Order{items: items, rank: rank}
}

// RankByCount 按计数降序, 计数相同按编号升序生成顺序, 计数小于minCount的项不进入顺序
func RankByCount(counts map[catalog.Item]uint32, minCount uint32) Order {
	items := make([]catalog.Item, 0, len(counts))
	for item, count := range counts {
		if count >= minCount {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b catalog.Item) bool {
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a < b
	})
	return NewOrder(items)
}

func (o Order) Items() []catalog.Item {
	return o.items
}

func (o Order) Len() int {
	return len(o.items)
}

// Rank 不在顺序中返回-1
func (o Order) Rank(item catalog.Item) int {
	if r, ok := o.rank[item]; ok {
		return r
	}
	return -1
}

func (o Order) Contains(item catalog.Item) bool {
	_, ok := o.rank[item]
	return ok
}

// Project 只保留顺序中的项并按顺序排好(重复的项去掉), 返回新切片
func (o Order) Project(transaction []catalog.Item) []catalog.Item {
	projected := make([]catalog.Item, 0, len(transaction))
	for _, item := range transaction {
		if o.Contains(item) {
			projected = append(projected, item)
		}
	}
	slices.SortFunc(projected, func(a, b catalog.Item) bool {
		return o.rank[a] < o.rank[b]
	})
	return slices.Compact(projected)
}
