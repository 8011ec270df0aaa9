package rules

import (
	"fpminer/catalog"
	"fpminer/growth"

	"golang.org/x/exp/slices"
)

// GenerateByConsequentGrowth 另一种生成方式: 后件从单个项开始, 每轮把两条后件只差一个项的规则合并成后件多一项的规则.
// 前件变小置信度只会下降, 所以不满足置信度的规则不再参与合并; lift没有这个性质, 最后统一过滤.
// 结果与Generate完全相同, 用来互相校验
func GenerateByConsequentGrowth(collection *growth.Collection, total int, thresholds Thresholds) []Rule {
	if total <= 0 {
		return nil
	}
	s := scorer{collection: collection, total: float64(total)}
	confidenceOnly := Thresholds{MinConfidence: thresholds.MinConfidence}

	var result []Rule
	for _, set := range collection.Sets() {
		if set.Len() < 2 {
			continue
		}
		var candidates []Rule
		for i := range set.Items {
			if rule, ok := s.split(set, []catalog.Item{set.Items[i]}, confidenceOnly); ok {
				candidates = append(candidates, rule)
			}
		}
		for len(candidates) > 0 {
			for _, rule := range candidates {
				if rule.Lift >= thresholds.MinLift {
					result = append(result, rule)
				}
			}
			candidates = s.merge(set, candidates, confidenceOnly)
		}
	}
	slices.SortFunc(result, Less)
	return result
}

// split 以consequent为后件, set里其余的项为前件; 前件为空或不满足阈值时返回false
func (s scorer) split(set growth.ItemSet, consequent []catalog.Item, thresholds Thresholds) (Rule, bool) {
	antecedent := make([]catalog.Item, 0, set.Len()-len(consequent))
	for _, item := range set.Items {
		if _, found := slices.BinarySearch(consequent, item); !found {
			antecedent = append(antecedent, item)
		}
	}
	if len(antecedent) == 0 {
		return Rule{}, false
	}
	rule := s.score(antecedent, consequent, set.Count)
	return rule, thresholds.accept(rule.Confidence, rule.Lift)
}

// merge 后件大小都是k的规则两两合并, 后件交集为k-1个项时得到后件为k+1个项的新规则
func (s scorer) merge(set growth.ItemSet, rules []Rule, thresholds Thresholds) []Rule {
	seen := make(map[string]struct{})
	var next []Rule
	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			a, b := rules[i].Consequent, rules[j].Consequent
			if len(a) != len(b) || overlap(a, b) != len(a)-1 {
				continue
			}
			consequent := union(a, b)
			key := growth.Key(consequent)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if rule, ok := s.split(set, consequent, thresholds); ok {
				next = append(next, rule)
			}
		}
	}
	return next
}

// overlap 两个升序切片的交集大小
func overlap(a, b []catalog.Item) int {
	n := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			n++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return n
}

func union(a, b []catalog.Item) []catalog.Item {
	result := make([]catalog.Item, 0, len(a)+1)
	result = append(result, a...)
	result = append(result, b...)
	slices.Sort(result)
	return slices.Compact(result)
}
