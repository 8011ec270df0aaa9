package engine

import (
	"errors"
	"math"
	"testing"

	"fpminer/utils"

	. "github.com/smartystreets/goconvey/convey"
)

var market = [][]string{
	{"bread", "milk"},
	{"bread", "diaper", "beer", "eggs"},
	{"milk", "diaper", "beer", "cola"},
	{"bread", "milk", "diaper", "beer"},
	{"bread", "milk", "diaper", "cola"},
}

func TestValidate(t *testing.T) {
	Convey("threshold ranges", t, func() {
		So(Options{MinSupport: 1, MinConfidence: 0}.Validate(), ShouldBeNil)
		So(Options{MinCount: 3, MinSupport: 0, MinConfidence: 1, MinLift: 2}.Validate(), ShouldBeNil)

		bad := []Options{
			{MinSupport: 0},
			{MinSupport: -0.1},
			{MinSupport: 1.5},
			{MinSupport: math.NaN()},
			{MinSupport: 0.5, MinConfidence: -0.1},
			{MinSupport: 0.5, MinConfidence: 1.1},
			{MinSupport: 0.5, MinLift: -1},
		}
		for _, opts := range bad {
			err := opts.Validate()
			So(errors.Is(err, utils.ErrInvalidThreshold), ShouldBeTrue)

			_, err = Run(market, opts)
			So(errors.Is(err, utils.ErrInvalidThreshold), ShouldBeTrue)
		}
	})

	Convey("bad filter fails before mining", t, func() {
		_, err := Run(market, Options{MinSupport: 0.5, Filter: "lift >"})
		So(errors.Is(err, utils.ErrInvalidFilter), ShouldBeTrue)
	})
}

func TestRun(t *testing.T) {
	Convey("market basket", t, func() {
		result, err := Run(market, Options{MinSupport: 0.6, MinConfidence: 0.5, MinLift: 1, Workers: 4, CheckTree: true})
		So(err, ShouldBeNil)
		So(result.Total, ShouldEqual, 5)
		So(result.MinCount, ShouldEqual, 3)
		So(len(result.ItemSets), ShouldEqual, 8)
		So(len(result.Rules), ShouldEqual, 2)
		So(result.Rules[0].Format(result.Catalog), ShouldEqual, "beer => diaper")
		So(result.Rules[1].Format(result.Catalog), ShouldEqual, "diaper => beer")
		So(result.Tree.Validate(), ShouldBeNil)
	})

	Convey("absolute min count overrides support", t, func() {
		result, err := Run(market, Options{MinCount: 4, MinSupport: 0.1, MinConfidence: 0})
		So(err, ShouldBeNil)
		So(result.MinCount, ShouldEqual, 4)
		So(len(result.ItemSets), ShouldEqual, 3)
		So(result.Rules, ShouldBeEmpty)
	})

	Convey("filter is applied last", t, func() {
		result, err := Run(market, Options{MinSupport: 0.6, MinConfidence: 0.5, Filter: "confidence == 1"})
		So(err, ShouldBeNil)
		So(len(result.Rules), ShouldEqual, 1)
	})

	Convey("empty dataset gives an empty result", t, func() {
		result, err := Run(nil, Options{MinSupport: 0.5})
		So(err, ShouldBeNil)
		So(result.Total, ShouldEqual, 0)
		So(result.ItemSets, ShouldBeEmpty)
		So(result.Rules, ShouldBeEmpty)
	})

	Convey("repeated runs are identical", t, func() {
		first, err := Run(market, Options{MinSupport: 0.2, MinConfidence: 0.1, Workers: 8})
		So(err, ShouldBeNil)
		for i := 0; i < 5; i++ {
			again, err := Run(market, Options{MinSupport: 0.2, MinConfidence: 0.1, Workers: 8})
			So(err, ShouldBeNil)
			So(again.ItemSets, ShouldResemble, first.ItemSets)
			So(again.Rules, ShouldResemble, first.Rules)
		}
	})
}
