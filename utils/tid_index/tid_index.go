package tid_index

import (
	"strconv"
	"strings"

	"fpminer/catalog"

	"github.com/yourbasic/bit"
	"golang.org/x/exp/slices"
)

// Index 每个项出现在哪些事务里(事务下标的位集), 项集的支持度是各位集求交后的大小
type Index struct {
	rows  map[catalog.Item]*bit.Set
	total int
}

func New(c *catalog.Catalog, transactions [][]string) *Index {
	idx := &Index{rows: make(map[catalog.Item]*bit.Set), total: len(transactions)}
	for rowId, transaction := range transactions {
		for _, item := range c.Encode(transaction) {
			if rows, ok := idx.rows[item]; ok {
				idx.rows[item] = rows.Add(rowId)
			} else {
				idx.rows[item] = bit.New(rowId)
			}
		}
	}
	return idx
}

// Support 空项集的支持度是事务总数
func (idx *Index) Support(items []catalog.Item) uint32 {
	if len(items) == 0 {
		return uint32(idx.total)
	}
	first, ok := idx.rows[items[0]]
	if !ok {
		return 0
	}
	rows := new(bit.Set).Set(first)
	for _, item := range items[1:] {
		other, ok := idx.rows[item]
		if !ok {
			return 0
		}
		rows.SetAnd(rows, other)
		if rows.Empty() {
			return 0
		}
	}
	return uint32(rows.Size())
}

func (idx *Index) Total() int {
	return idx.total
}

// Frequent 暴力枚举items中所有支持度>=minCount的项集, key与growth.Key相同. 只用于校验, 代价是指数级的
func (idx *Index) Frequent(items []catalog.Item, minCount uint32) map[string]uint32 {
	items = append([]catalog.Item(nil), items...)
	slices.Sort(items)
	result := make(map[string]uint32)
	var walk func(start int, chosen []catalog.Item, rows *bit.Set)
	walk = func(start int, chosen []catalog.Item, rows *bit.Set) {
		for i := start; i < len(items); i++ {
			itemRows, ok := idx.rows[items[i]]
			if !ok {
				continue
			}
			next := new(bit.Set).Set(itemRows)
			if rows != nil {
				next.SetAnd(next, rows)
			}
			if uint32(next.Size()) < minCount {
				continue
			}
			set := append(append([]catalog.Item(nil), chosen...), items[i])
			result[key(set)] = uint32(next.Size())
			walk(i+1, set, next)
		}
	}
	walk(0, nil, nil)
	return result
}

func key(items []catalog.Item) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = strconv.FormatUint(uint64(item), 10)
	}
	return strings.Join(parts, ",")
}
