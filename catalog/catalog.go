package catalog

import (
	"fmt"
	"math"

	"fpminer/fp_config"

	mapset "github.com/deckarep/golang-set"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Item 项的内部编号, 0 留给树根
type Item uint32

const NullItem Item = 0

// Catalog 项目录: token和Item一一对应, 以及每个项的全局支持度计数
// 构建之后只读, 可以被多个挖掘任务并发共享
type Catalog struct {
	tokens []string        // tokens[item-1]
	ids    map[string]Item // token -> item
	counts []uint32        // counts[item], counts[0]不用
	total  int             // 事务数
}

// Build 扫描一遍事务统计每个项出现的事务数.
// 编号按token字典序分配, 所以编号既稳定又可以直接作为频率相同时的排序键, 与事务的输入顺序无关
func Build(transactions [][]string) *Catalog {
	tokenCount := make(map[string]uint32)
	for _, transaction := range transactions {
		for _, token := range uniqueTokens(transaction) {
			tokenCount[token]++
		}
	}

	tokens := maps.Keys(tokenCount)
	slices.Sort(tokens)

	c := &Catalog{
		tokens: tokens,
		ids:    make(map[string]Item, len(tokens)),
		counts: make([]uint32, len(tokens)+1),
		total:  len(transactions),
	}
	for i, token := range tokens {
		item := Item(i + 1)
		c.ids[token] = item
		c.counts[item] = tokenCount[token]
	}
	return c
}

// uniqueTokens 同一个事务里重复出现的项只算一次
func uniqueTokens(transaction []string) []string {
	if len(transaction) < 2 {
		return transaction
	}
	seen := mapset.NewThreadUnsafeSet()
	result := make([]string, 0, len(transaction))
	for _, token := range transaction {
		if seen.Add(token) {
			result = append(result, token)
		}
	}
	return result
}

// Encode 把一个事务转成Item, 去重; 目录里没有的token被丢弃
func (c *Catalog) Encode(transaction []string) []Item {
	items := make([]Item, 0, len(transaction))
	for _, token := range uniqueTokens(transaction) {
		if item, ok := c.ids[token]; ok {
			items = append(items, item)
		}
	}
	return items
}

// FrequentOrder 计数>=minCount的项, 按计数降序, 计数相同按编号升序
func (c *Catalog) FrequentOrder(minCount uint32) []Item {
	items := make([]Item, 0, len(c.tokens))
	for i := 1; i < len(c.counts); i++ {
		if c.counts[i] >= minCount {
			items = append(items, Item(i))
		}
	}
	slices.SortFunc(items, func(a, b Item) bool {
		if c.counts[a] != c.counts[b] {
			return c.counts[a] > c.counts[b]
		}
		return a < b
	})
	return items
}

// MinCount 把支持度比例换成最小计数 ceil(minSupport * total)
func (c *Catalog) MinCount(minSupport float64) uint32 {
	return MinCount(minSupport, c.total)
}

// MinCount 乘积会带浮点误差(0.6*5 = 3.0000000000000004), 减去SupportEpsilon再取整.
// 真实乘积比整数只大不到SupportEpsilon的情况也会被当成那个整数
func MinCount(minSupport float64, total int) uint32 {
	count := math.Ceil(minSupport*float64(total) - fp_config.SupportEpsilon)
	if count < 1 {
		return 1
	}
	return uint32(count)
}

func (c *Catalog) Support(item Item) uint32 {
	if int(item) >= len(c.counts) {
		return 0
	}
	return c.counts[item]
}

func (c *Catalog) Lookup(token string) (Item, bool) {
	item, ok := c.ids[token]
	return item, ok
}

func (c *Catalog) Token(item Item) string {
	if item == NullItem || int(item) > len(c.tokens) {
		panic(fmt.Sprintf("catalog: unknown item %d", item))
	}
	return c.tokens[item-1]
}

func (c *Catalog) Tokens(items []Item) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = c.Token(item)
	}
	return result
}

// Len 不同项的个数
func (c *Catalog) Len() int {
	return len(c.tokens)
}

// Total 事务数
func (c *Catalog) Total() int {
	return c.total
}
