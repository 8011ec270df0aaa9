package growth

import (
	"sort"
	"strings"
	"testing"

	"fpminer/catalog"
	"fpminer/fptree"
	"fpminer/utils/tid_index"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
)

var classic = [][]string{
	{"f", "a", "c", "d", "g", "i", "m", "p"},
	{"a", "b", "c", "f", "l", "m", "o"},
	{"b", "f", "h", "j", "o"},
	{"b", "c", "k", "s", "p"},
	{"a", "f", "c", "e", "l", "p", "m", "n"},
}

var market = [][]string{
	{"bread", "milk"},
	{"bread", "diaper", "beer", "eggs"},
	{"milk", "diaper", "beer", "cola"},
	{"bread", "milk", "diaper", "beer"},
	{"bread", "milk", "diaper", "cola"},
}

func mineCollection(t testing.TB, transactions [][]string, minCount uint32, workers int) (*catalog.Catalog, *Collection, *Miner) {
	c := catalog.Build(transactions)
	tree := fptree.New(fptree.NewOrder(c.FrequentOrder(minCount)))
	for _, transaction := range transactions {
		tree.Insert(c.Encode(transaction), 1)
	}
	sched, err := NewScheduler(workers)
	require.NoError(t, err)
	defer sched.Close()

	miner := NewMiner(minCount, sched)
	return c, miner.Mine(tree), miner
}

func canonical(tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// byTokens 以token表示的项集 -> 支持度
func byTokens(c *catalog.Catalog, collection *Collection) map[string]uint32 {
	result := make(map[string]uint32, collection.Len())
	for _, set := range collection.Sets() {
		result[canonical(c.Tokens(set.Items))] = set.Count
	}
	return result
}

func mineTokens(t testing.TB, transactions [][]string, minCount uint32, workers int) map[string]uint32 {
	c, collection, _ := mineCollection(t, transactions, minCount, workers)
	return byTokens(c, collection)
}

func TestMineSinglePath(t *testing.T) {
	Convey("single path tree enumerates every subset", t, func() {
		transactions := [][]string{{"A", "B", "C"}, {"A", "B", "C"}, {"A", "B"}}
		_, collection, miner := mineCollection(t, transactions, 2, 1)
		So(miner.Stats().SinglePaths, ShouldEqual, 1)
		So(miner.Stats().ConditionalTrees, ShouldEqual, 0)

		c := catalog.Build(transactions)
		So(byTokens(c, collection), ShouldResemble, map[string]uint32{
			"A": 3, "B": 3, "C": 2,
			"A,B": 3, "A,C": 2, "B,C": 2,
			"A,B,C": 2,
		})
	})

	Convey("nodes below min count are cut from the path", t, func() {
		result := mineTokens(t, [][]string{{"A", "B", "C"}, {"A", "B", "C"}, {"A", "B"}}, 3, 1)
		So(result, ShouldResemble, map[string]uint32{"A": 3, "B": 3, "A,B": 3})
	})
}

func TestMineMarket(t *testing.T) {
	Convey("bread milk diaper beer", t, func() {
		c := catalog.Build(market)
		minCount := c.MinCount(0.6)
		So(minCount, ShouldEqual, 3)

		result := mineTokens(t, market, minCount, 4)
		So(result, ShouldResemble, map[string]uint32{
			"bread": 4, "milk": 4, "diaper": 4, "beer": 3,
			"bread,milk": 3, "bread,diaper": 3, "diaper,milk": 3, "beer,diaper": 3,
		})
	})
}

func TestMineEmpty(t *testing.T) {
	Convey("nothing frequent", t, func() {
		So(mineTokens(t, nil, 1, 1), ShouldBeEmpty)
		So(mineTokens(t, [][]string{{"a"}, {"b"}}, 2, 1), ShouldBeEmpty)
	})
}

func TestMineAgainstBruteForce(t *testing.T) {
	datasets := map[string][][]string{"classic": classic, "market": market}
	for name, transactions := range datasets {
		c := catalog.Build(transactions)
		idx := tid_index.New(c, transactions)
		for minCount := uint32(1); minCount <= 4; minCount++ {
			expected := idx.Frequent(c.FrequentOrder(1), minCount)
			for _, workers := range []int{1, 3, 8} {
				_, collection, _ := mineCollection(t, transactions, minCount, workers)
				actual := make(map[string]uint32, collection.Len())
				for _, set := range collection.Sets() {
					actual[set.Key()] = set.Count
				}
				require.Equal(t, expected, actual, "%s minCount=%d workers=%d", name, minCount, workers)
			}
		}
	}
}

func TestMineProperties(t *testing.T) {
	Convey("support never increases when items are added", t, func() {
		c, collection, _ := mineCollection(t, classic, 2, 4)
		So(collection.Len(), ShouldBeGreaterThan, 0)
		for _, set := range collection.Sets() {
			for drop := range set.Items {
				if set.Len() == 1 {
					break
				}
				subset := make([]catalog.Item, 0, set.Len()-1)
				subset = append(subset, set.Items[:drop]...)
				subset = append(subset, set.Items[drop+1:]...)
				support, ok := collection.Support(subset)
				So(ok, ShouldBeTrue)
				So(support, ShouldBeGreaterThanOrEqualTo, set.Count)
			}
			if set.Len() == 1 {
				So(set.Count, ShouldEqual, c.Support(set.Items[0]))
			}
		}
	})

	Convey("transaction order does not matter", t, func() {
		reversed := make([][]string, 0, len(classic))
		for i := len(classic) - 1; i >= 0; i-- {
			transaction := append([]string(nil), classic[i]...)
			for l, r := 0, len(transaction)-1; l < r; l, r = l+1, r-1 {
				transaction[l], transaction[r] = transaction[r], transaction[l]
			}
			reversed = append(reversed, transaction)
		}
		for minCount := uint32(1); minCount <= 3; minCount++ {
			So(mineTokens(t, reversed, minCount, 2), ShouldResemble, mineTokens(t, classic, minCount, 2))
		}
	})

	Convey("renaming items renames the result", t, func() {
		// a->z, b->y ... 字典序反过来, 频率相同的项的先后也随之反过来
		rename := func(token string) string {
			return string(rune('z' - (rune(token[0]) - 'a')))
		}
		renamed := make([][]string, len(classic))
		for i, transaction := range classic {
			for _, token := range transaction {
				renamed[i] = append(renamed[i], rename(token))
			}
		}
		for minCount := uint32(1); minCount <= 3; minCount++ {
			expected := make(map[string]uint32)
			for key, count := range mineTokens(t, classic, minCount, 1) {
				tokens := strings.Split(key, ",")
				for i := range tokens {
					tokens[i] = rename(tokens[i])
				}
				expected[canonical(tokens)] = count
			}
			So(mineTokens(t, renamed, minCount, 1), ShouldResemble, expected)
		}
	})

	Convey("sequential and parallel runs agree, including order", t, func() {
		_, sequential, _ := mineCollection(t, classic, 2, 1)
		for _, workers := range []int{2, 4, 16} {
			_, parallel, _ := mineCollection(t, classic, 2, workers)
			So(parallel.Sets(), ShouldResemble, sequential.Sets())
		}
	})
}

func TestMineConditionalTrees(t *testing.T) {
	Convey("branching tree recurses into conditional trees", t, func() {
		_, _, miner := mineCollection(t, classic, 3, 1)
		stats := miner.Stats()
		So(stats.ConditionalTrees, ShouldBeGreaterThan, 0)
		So(stats.SinglePaths, ShouldBeGreaterThan, 0)
	})
}

func TestCollection(t *testing.T) {
	Convey("duplicate item-set panics", t, func() {
		collection := NewCollection()
		collection.Add(NewItemSet([]catalog.Item{2, 1}, 3))
		So(func() { collection.Add(NewItemSet([]catalog.Item{1, 2}, 3)) }, ShouldPanic)

		support, ok := collection.Support([]catalog.Item{1, 2})
		So(ok, ShouldBeTrue)
		So(support, ShouldEqual, 3)
		_, ok = collection.Support([]catalog.Item{1})
		So(ok, ShouldBeFalse)
	})

	Convey("sets are ordered by size then items", t, func() {
		collection := NewCollection()
		collection.Merge([]ItemSet{
			NewItemSet([]catalog.Item{3, 1}, 2),
			NewItemSet([]catalog.Item{2}, 5),
			NewItemSet([]catalog.Item{1, 2}, 2),
			NewItemSet([]catalog.Item{1}, 4),
		})
		keys := make([]string, 0, collection.Len())
		for _, set := range collection.Sets() {
			keys = append(keys, set.Key())
		}
		So(keys, ShouldResemble, []string{"1", "2", "1,2", "1,3"})
	})
}
