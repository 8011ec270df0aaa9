package rule_writer

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"fpminer/catalog"
	"fpminer/fp_config"
	"fpminer/rules"
	"fpminer/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var Header = []string{"Antecedent => Consequent", "Confidence", "Lift", "Support"}

// yamlRule yaml输出的一条规则
type yamlRule struct {
	Antecedent []string `yaml:"antecedent"`
	Consequent []string `yaml:"consequent"`
	Count      uint32   `yaml:"count"`
	Support    float64  `yaml:"support"`
	Confidence float64  `yaml:"confidence"`
	Lift       float64  `yaml:"lift"`
}

// Rows csv的表头和每条规则一行
func Rows(c *catalog.Catalog, rs []rules.Rule) [][]string {
	rows := make([][]string, 0, len(rs)+1)
	rows = append(rows, Header)
	for _, rule := range rs {
		rows = append(rows, []string{
			rule.Format(c),
			formatFloat(rule.Confidence),
			formatFloat(rule.Lift),
			formatFloat(rule.Support),
		})
	}
	return rows
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Write 按format把规则写到w
func Write(w io.Writer, format string, c *catalog.Catalog, rs []rules.Rule) error {
	switch strings.ToLower(format) {
	case fp_config.FormatCsv, "":
		writer := csv.NewWriter(w)
		if err := writer.WriteAll(Rows(c, rs)); err != nil {
			return errors.Wrap(utils.ErrWriteCsv, err.Error())
		}
		return nil
	case fp_config.FormatYaml:
		out := make([]yamlRule, 0, len(rs))
		for _, rule := range rs {
			out = append(out, yamlRule{
				Antecedent: c.Tokens(rule.Antecedent),
				Consequent: c.Tokens(rule.Consequent),
				Count:      rule.Count,
				Support:    rule.Support,
				Confidence: rule.Confidence,
				Lift:       rule.Lift,
			})
		}
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(out); err != nil {
			return errors.Wrap(utils.ErrWriteCsv, err.Error())
		}
		return errors.Wrap(encoder.Close(), "close yaml encoder")
	case fp_config.FormatTable:
		RuleTable(w, c, rs).Render()
		return nil
	default:
		return errors.Wrapf(utils.ErrUnknownFormat, "%s", format)
	}
}

// WriteFile csv直接走utils.CreateCsv, 其他格式先建文件再Write
func WriteFile(path, format string, c *catalog.Catalog, rs []rules.Rule) error {
	if strings.ToLower(format) == fp_config.FormatCsv || format == "" {
		return utils.CreateCsv(path, Rows(c, rs))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(utils.ErrWriteCsv, err.Error())
	}
	if err = Write(f, format, c, rs); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(utils.ErrWriteCsv, err.Error())
	}
	return nil
}

func RuleTable(w io.Writer, c *catalog.Catalog, rs []rules.Rule) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("ASSOCIATION RULES")
	t.AppendHeader(table.Row{"#", "Antecedent", "Consequent", "Count", "Support", "Confidence", "Lift"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Antecedent", AlignHeader: text.AlignCenter, WidthMax: 60},
		{Name: "Consequent", AlignHeader: text.AlignCenter, WidthMax: 60},
		{Name: "Support", Align: text.AlignRight, Transformer: floatTransformer},
		{Name: "Confidence", Align: text.AlignRight, Transformer: floatTransformer},
		{Name: "Lift", Align: text.AlignRight, Transformer: floatTransformer},
	})
	for i, rule := range rs {
		t.AppendRow(table.Row{
			i + 1,
			strings.Join(c.Tokens(rule.Antecedent), fp_config.ItemSeparator),
			strings.Join(c.Tokens(rule.Consequent), fp_config.ItemSeparator),
			rule.Count,
			rule.Support,
			rule.Confidence,
			rule.Lift,
		})
	}
	t.AppendFooter(table.Row{"", "", "rules", len(rs)})
	return t
}

func floatTransformer(val interface{}) string {
	if f, ok := val.(float64); ok {
		return strconv.FormatFloat(f, 'f', 4, 64)
	}
	return ""
}

// OptionTable 打印本次运行的参数, names和values一一对应
func OptionTable(w io.Writer, names []string, values []interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("MINING PARAMETER TABLE")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Parameter", Align: text.AlignCenter, AlignHeader: text.AlignCenter, WidthMin: 20},
		{Name: "Value", AlignHeader: text.AlignCenter, WidthMin: 30},
	})
	t.AppendHeader(table.Row{"Parameter", "Value"})
	for i, name := range names {
		t.AppendRow(table.Row{name, values[i]})
	}
	return t
}
