package tid_index

import (
	"testing"

	"fpminer/catalog"

	"github.com/stretchr/testify/assert"
)

func TestSupport(t *testing.T) {
	transactions := [][]string{
		{"bread", "milk"},
		{"bread", "diaper", "beer", "eggs"},
		{"milk", "diaper", "beer", "cola"},
		{"bread", "milk", "diaper", "beer"},
		{"bread", "milk", "diaper", "cola"},
	}
	c := catalog.Build(transactions)
	idx := New(c, transactions)

	items := func(tokens ...string) []catalog.Item {
		result := make([]catalog.Item, 0, len(tokens))
		for _, token := range tokens {
			item, ok := c.Lookup(token)
			assert.True(t, ok, token)
			result = append(result, item)
		}
		return result
	}

	assert.Equal(t, 5, idx.Total())
	assert.EqualValues(t, 5, idx.Support(nil))
	assert.EqualValues(t, 4, idx.Support(items("bread")))
	assert.EqualValues(t, 3, idx.Support(items("bread", "milk")))
	assert.EqualValues(t, 3, idx.Support(items("diaper", "beer")))
	assert.EqualValues(t, 2, idx.Support(items("milk", "diaper", "beer")))
	assert.EqualValues(t, 0, idx.Support(items("eggs", "cola")))
	assert.EqualValues(t, 0, idx.Support([]catalog.Item{catalog.Item(99)}))
	// 求交不会改动索引里保存的位集
	assert.EqualValues(t, 4, idx.Support(items("bread")))
	assert.EqualValues(t, 4, idx.Support(items("milk")))
}

func TestFrequent(t *testing.T) {
	transactions := [][]string{{"A", "B", "C"}, {"A", "B", "C"}, {"A", "B"}}
	c := catalog.Build(transactions)
	idx := New(c, transactions)

	frequent := idx.Frequent(c.FrequentOrder(1), 2)
	// A=1 B=2 C=3
	assert.Equal(t, map[string]uint32{
		"1": 3, "2": 3, "3": 2,
		"1,2": 3, "1,3": 2, "2,3": 2,
		"1,2,3": 2,
	}, frequent)

	assert.Len(t, idx.Frequent(c.FrequentOrder(1), 3), 3)
}
