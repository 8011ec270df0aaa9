package rules

import (
	"strings"

	"fpminer/catalog"
	"fpminer/fp_config"
	"fpminer/growth"
)

// Rule 关联规则 Antecedent => Consequent, 两边不相交且都按编号升序
type Rule struct {
	Antecedent []catalog.Item
	Consequent []catalog.Item
	Count      uint32  // 两边并集的支持计数
	Support    float64 // Count / 事务数
	Confidence float64
	Lift       float64
}

func (r Rule) Key() string {
	return growth.Key(r.Antecedent) + "=>" + growth.Key(r.Consequent)
}

// Format 用token表示的规则, 比如 "bread milk => diaper"
func (r Rule) Format(c *catalog.Catalog) string {
	return strings.Join(c.Tokens(r.Antecedent), fp_config.ItemSeparator) +
		fp_config.RuleArrow +
		strings.Join(c.Tokens(r.Consequent), fp_config.ItemSeparator)
}

// Less 先比前件再比后件
func Less(a, b Rule) bool {
	if c := compareItems(a.Antecedent, b.Antecedent); c != 0 {
		return c < 0
	}
	return compareItems(a.Consequent, b.Consequent) < 0
}

func compareItems(a, b []catalog.Item) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}
