package rules

import (
	"fmt"

	"fpminer/catalog"
	"fpminer/fp_config"
	"fpminer/growth"

	"golang.org/x/exp/slices"
)

// Thresholds 规则的过滤阈值
type Thresholds struct {
	MinConfidence float64
	MinLift       float64
}

func (t Thresholds) accept(confidence, lift float64) bool {
	return confidence >= t.MinConfidence && lift >= t.MinLift
}

// scorer 从频繁项集集合里查支持度并计算规则指标
type scorer struct {
	collection *growth.Collection
	total      float64
}

func (s scorer) count(items []catalog.Item) uint32 {
	count, ok := s.collection.Support(items)
	if !ok {
		// 频繁项集的子集一定是频繁的
		panic(fmt.Sprintf("rules: subset {%s} missing from the frequent item-sets", growth.Key(items)))
	}
	return count
}

func (s scorer) score(antecedent, consequent []catalog.Item, count uint32) Rule {
	confidence := float64(count) / float64(s.count(antecedent))
	lift := confidence / (float64(s.count(consequent)) / s.total)
	return Rule{
		Antecedent: antecedent,
		Consequent: consequent,
		Count:      count,
		Support:    float64(count) / s.total,
		Confidence: confidence,
		Lift:       lift,
	}
}

// Generate 对每个至少两个项的频繁项集S, 枚举S的每个非空真子集A作为前件, B=S\A作为后件:
// confidence = count(S)/count(A), lift = confidence/(count(B)/total).
// 各项集之间并发计算, 结果按(前件, 后件)排序, 相同输入的多次运行结果完全相同
func Generate(collection *growth.Collection, total int, thresholds Thresholds, sched *growth.Scheduler) []Rule {
	if total <= 0 {
		return nil
	}
	s := scorer{collection: collection, total: float64(total)}

	var candidates []growth.ItemSet
	for _, set := range collection.Sets() {
		if set.Len() < 2 {
			continue
		}
		if set.Len() > fp_config.MaxItemSetSize {
			panic(fmt.Sprintf("rules: item-set of %d items exceeds %d", set.Len(), fp_config.MaxItemSetSize))
		}
		candidates = append(candidates, set)
	}

	var tasks []func() []Rule
	for _, chunk := range split(candidates, sched.Workers()*4) {
		chunk := chunk
		tasks = append(tasks, func() []Rule {
			var result []Rule
			for _, set := range chunk {
				result = append(result, s.enumerate(set, thresholds)...)
			}
			return result
		})
	}

	var result []Rule
	for _, part := range growth.ForkJoin(sched, tasks) {
		result = append(result, part...)
	}
	slices.SortFunc(result, Less)
	return result
}

// enumerate 用位掩码枚举所有前件, 第i位为1表示第i个项在前件里
func (s scorer) enumerate(set growth.ItemSet, thresholds Thresholds) []Rule {
	n := uint(set.Len())
	full := uint64(1)<<n - 1
	var result []Rule
	for mask := uint64(1); mask < full; mask++ {
		antecedent := make([]catalog.Item, 0, n)
		consequent := make([]catalog.Item, 0, n)
		for i := uint(0); i < n; i++ {
			if mask&(1<<i) != 0 {
				antecedent = append(antecedent, set.Items[i])
			} else {
				consequent = append(consequent, set.Items[i])
			}
		}
		rule := s.score(antecedent, consequent, set.Count)
		if thresholds.accept(rule.Confidence, rule.Lift) {
			result = append(result, rule)
		}
	}
	return result
}

// split 把sets尽量平均切成最多n块
func split(sets []growth.ItemSet, n int) [][]growth.ItemSet {
	if len(sets) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	size := (len(sets) + n - 1) / n
	chunks := make([][]growth.ItemSet, 0, n)
	for start := 0; start < len(sets); start += size {
		end := start + size
		if end > len(sets) {
			end = len(sets)
		}
		chunks = append(chunks, sets[start:end])
	}
	return chunks
}
