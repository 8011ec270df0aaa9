package rules

import (
	"fpminer/fp_config"
	"fpminer/rock-share/base/logger"
	"fpminer/utils"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

// Filter 规则过滤表达式, 比如 "lift > 1.2 && antecedent_size <= 2"
type Filter struct {
	expression *govaluate.EvaluableExpression
}

// NewFilter 表达式为空时返回nil, nil的Filter接受所有规则
func NewFilter(expressionStr string) (*Filter, error) {
	if expressionStr == "" {
		return nil, nil
	}
	expression, err := govaluate.NewEvaluableExpression(expressionStr)
	if err != nil {
		return nil, errors.Wrapf(utils.ErrInvalidFilter, "%s: %v", expressionStr, err)
	}
	for _, name := range expression.Vars() {
		switch name {
		case fp_config.FilterSupport, fp_config.FilterConfidence, fp_config.FilterLift,
			fp_config.FilterCount, fp_config.FilterAntecedentSize, fp_config.FilterConsequentSize:
		default:
			return nil, errors.Wrapf(utils.ErrInvalidFilter, "%s: unknown variable %s", expressionStr, name)
		}
	}
	return &Filter{expression: expression}, nil
}

func (f *Filter) Accept(rule Rule) (bool, error) {
	if f == nil {
		return true, nil
	}
	result, err := f.expression.Evaluate(map[string]interface{}{
		fp_config.FilterSupport:        rule.Support,
		fp_config.FilterConfidence:     rule.Confidence,
		fp_config.FilterLift:           rule.Lift,
		fp_config.FilterCount:          float64(rule.Count),
		fp_config.FilterAntecedentSize: float64(len(rule.Antecedent)),
		fp_config.FilterConsequentSize: float64(len(rule.Consequent)),
	})
	if err != nil {
		return false, errors.Wrap(utils.ErrInvalidFilter, err.Error())
	}
	accepted, ok := result.(bool)
	if !ok {
		return false, errors.Wrapf(utils.ErrInvalidFilter, "%s is not a boolean expression", f.expression.String())
	}
	return accepted, nil
}

// Apply 保留表达式为真的规则, 保持原有顺序
func (f *Filter) Apply(rules []Rule) ([]Rule, error) {
	if f == nil {
		return rules, nil
	}
	kept := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		ok, err := f.Accept(rule)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, rule)
		}
	}
	logger.Infof("rule filter %s kept %d of %d rules", f.expression.String(), len(kept), len(rules))
	return kept, nil
}
