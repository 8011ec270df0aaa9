package growth

import (
	"fmt"
	"strconv"

	"fpminer/catalog"

	"golang.org/x/exp/slices"
)

// ItemSet 频繁项集, Items按编号升序
type ItemSet struct {
	Items []catalog.Item
	Count uint32
}

// NewItemSet 复制一份items并排序
func NewItemSet(items []catalog.Item, count uint32) ItemSet {
	sorted := make([]catalog.Item, len(items))
	copy(sorted, items)
	slices.Sort(sorted)
	return ItemSet{Items: sorted, Count: count}
}

func (s ItemSet) Len() int {
	return len(s.Items)
}

func (s ItemSet) Key() string {
	return Key(s.Items)
}

// Key 已排序项的唯一表示
func Key(items []catalog.Item) string {
	buf := make([]byte, 0, len(items)*4)
	for i, item := range items {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(item), 10)
	}
	return string(buf)
}

// Collection 按内容去重的频繁项集集合, 只在join之后由父任务写入
type Collection struct {
	sets  []ItemSet
	index map[string]int
}

func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Add 同一个项集出现两次说明递归产生了重复分支, 属于程序缺陷
func (c *Collection) Add(set ItemSet) {
	key := set.Key()
	if i, ok := c.index[key]; ok {
		panic(fmt.Sprintf("growth: itemset {%s} emitted twice (counts %d and %d)", key, c.sets[i].Count, set.Count))
	}
	c.index[key] = len(c.sets)
	c.sets = append(c.sets, set)
}

func (c *Collection) Merge(sets []ItemSet) {
	for _, set := range sets {
		c.Add(set)
	}
}

// Support items需按编号升序
func (c *Collection) Support(items []catalog.Item) (uint32, bool) {
	i, ok := c.index[Key(items)]
	if !ok {
		return 0, false
	}
	return c.sets[i].Count, true
}

func (c *Collection) Len() int {
	return len(c.sets)
}

// Sets 按长度、再按项排序后的所有项集
func (c *Collection) Sets() []ItemSet {
	sets := make([]ItemSet, len(c.sets))
	copy(sets, c.sets)
	slices.SortFunc(sets, func(a, b ItemSet) bool {
		if len(a.Items) != len(b.Items) {
			return len(a.Items) < len(b.Items)
		}
		return lessItems(a.Items, b.Items)
	})
	return sets
}

func lessItems(a, b []catalog.Item) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
