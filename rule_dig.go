package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fpminer/engine"
	"fpminer/fp_config"
	"fpminer/rock-share/base/logger"
	"fpminer/utils"
	"fpminer/utils/rule_writer"

	"github.com/LinkinStars/golang-util/gu"
	"github.com/pkg/errors"
)

// DigRules 读事务文件, 挖掘规则并写出结果. output为"-"时写到out
func DigRules(taskId string, request *MineRequest, resultDir string, out io.Writer) (*MineResponse, error) {
	startTime := time.Now()
	logger.Infof("task id:%v, mining %s", taskId, request.Path)
	logger.Debugf("task id:%v, request:%+v", taskId, *request)

	format := strings.ToLower(request.Format)
	if format == "" {
		format = fp_config.FormatCsv
	}
	if format != fp_config.FormatCsv && format != fp_config.FormatYaml && format != fp_config.FormatTable {
		return nil, errors.Wrapf(utils.ErrUnknownFormat, "%s", request.Format)
	}

	opts := engine.Options{
		MinSupport:    request.Support,
		MinCount:      request.Count,
		MinConfidence: request.Confidence,
		MinLift:       request.Lift,
		Workers:       request.Workers,
		Filter:        request.Filter,
	}
	// 参数不合法时不读文件
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if request.Output == "-" && out == nil {
		return nil, errors.Wrap(utils.ErrParameter, "output - needs a console to write to")
	}

	t := time.Now()
	transactions, err := utils.ReadTransactions(request.Path)
	if err != nil {
		return nil, err
	}
	logger.Infof("task id:%v, read %d transactions in %dms", taskId, len(transactions), time.Since(t).Milliseconds())

	result, err := engine.Run(transactions, opts)
	if err != nil {
		return nil, err
	}

	if request.Dot != "" {
		if err := result.Tree.ToGraph(request.Dot, result.Catalog.Token); err != nil {
			return nil, errors.Wrap(err, "write fp-tree dot")
		}
		logger.Infof("task id:%v, fp-tree written to %s", taskId, request.Dot)
	}
	if request.PrintTree && out != nil {
		fmt.Fprintln(out, result.Tree.Print(result.Catalog.Token))
	}

	resultPath := request.Output
	if resultPath == "" {
		if err := gu.CreateDirIfNotExist(resultDir); err != nil {
			return nil, errors.Wrap(utils.ErrWriteCsv, err.Error())
		}
		resultPath = filepath.Join(resultDir, taskId+"."+extension(format))
	}
	t = time.Now()
	if resultPath == "-" {
		err = rule_writer.Write(out, format, result.Catalog, result.Rules)
	} else {
		err = rule_writer.WriteFile(resultPath, format, result.Catalog, result.Rules)
	}
	if err != nil {
		return nil, err
	}
	if info, statErr := os.Stat(resultPath); statErr == nil {
		logger.Infof("task id:%v, wrote %d rules into %s (%d bytes) in %dms",
			taskId, len(result.Rules), resultPath, info.Size(), time.Since(t).Milliseconds())
	}

	spent := time.Since(startTime).Milliseconds()
	logger.Infof("task id:%v, finished in %dms, item-sets:%d, rules:%d", taskId, spent, len(result.ItemSets), len(result.Rules))
	return &MineResponse{
		TaskId:     taskId,
		ResultPath: resultPath,
		RuleSize:   len(result.Rules),
		ItemSets:   len(result.ItemSets),
		SpentTime:  spent,
	}, nil
}

func extension(format string) string {
	switch format {
	case fp_config.FormatYaml:
		return "yml"
	case fp_config.FormatTable:
		return "txt"
	default:
		return "csv"
	}
}
