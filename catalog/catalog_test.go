package catalog

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Build", t, func() {
		c := Build([][]string{
			{"milk", "bread", "milk"},
			{"bread", "eggs"},
			{"cola"},
			{"bread", "milk"},
		})

		Convey("ids follow lexicographic token order", func() {
			So(c.Len(), ShouldEqual, 4)
			So(c.Tokens([]Item{1, 2, 3, 4}), ShouldResemble, []string{"bread", "cola", "eggs", "milk"})
			item, ok := c.Lookup("milk")
			So(ok, ShouldBeTrue)
			So(item, ShouldEqual, Item(4))
			_, ok = c.Lookup("beer")
			So(ok, ShouldBeFalse)
		})

		Convey("duplicate items in one transaction count once", func() {
			milk, _ := c.Lookup("milk")
			bread, _ := c.Lookup("bread")
			So(c.Support(milk), ShouldEqual, 2)
			So(c.Support(bread), ShouldEqual, 3)
			So(c.Total(), ShouldEqual, 4)
			So(c.Support(Item(99)), ShouldEqual, 0)
		})

		Convey("encode drops duplicates and unknown tokens", func() {
			So(c.Encode([]string{"milk", "beer", "milk", "bread"}), ShouldResemble, []Item{4, 1})
		})

		Convey("unknown item token panics", func() {
			So(func() { c.Token(NullItem) }, ShouldPanic)
		})
	})
}

func TestFrequentOrder(t *testing.T) {
	Convey("FrequentOrder", t, func() {
		c := Build([][]string{
			{"d", "a", "c"},
			{"b", "c"},
			{"a", "b", "c"},
			{"d"},
		})
		// c:3, a:2, b:2, d:2 -> ties on 2 resolved by id (a<b<d)
		So(c.Tokens(c.FrequentOrder(1)), ShouldResemble, []string{"c", "a", "b", "d"})
		So(c.Tokens(c.FrequentOrder(3)), ShouldResemble, []string{"c"})
		So(c.FrequentOrder(4), ShouldBeEmpty)
	})

	Convey("FrequentOrder does not depend on transaction order", t, func() {
		a := Build([][]string{{"x", "y"}, {"y", "z"}, {"z", "x"}})
		b := Build([][]string{{"z", "x"}, {"y", "x"}, {"z", "y"}})
		So(a.Tokens(a.FrequentOrder(1)), ShouldResemble, b.Tokens(b.FrequentOrder(1)))
	})
}

func TestMinCount(t *testing.T) {
	Convey("MinCount", t, func() {
		So(MinCount(0.6, 5), ShouldEqual, 3)
		So(MinCount(0.61, 5), ShouldEqual, 4)
		So(MinCount(0.7, 10), ShouldEqual, 7)
		So(MinCount(0.3, 10), ShouldEqual, 3)
		So(MinCount(1, 5), ShouldEqual, 5)
		So(MinCount(0.001, 5), ShouldEqual, 1)
		So(MinCount(0.5, 0), ShouldEqual, 1)
		So(Build([][]string{{"a"}, {"b"}, {"c"}}).MinCount(0.1), ShouldEqual, 1)
	})
}
