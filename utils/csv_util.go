package utils

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"fpminer/rock-share/base/logger"

	"github.com/pkg/errors"
)

// ReadTransactions 每行一个事务, 项之间逗号分隔. 项去掉首尾空白, 空项和空行跳过
func ReadTransactions(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Errorf("open transactions %s failed, err:%v", path, err)
		return nil, errors.Wrap(ErrOpenCsv, err.Error())
	}
	defer f.Close()
	return ParseTransactions(f)
}

func ParseTransactions(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 每行项数不同
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var transactions [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, errors.Wrapf(ErrReadCsv, "line %d: %v", line, err)
		}
		transaction := make([]string, 0, len(record))
		for _, token := range record {
			if token = strings.TrimSpace(token); token != "" {
				transaction = append(transaction, token)
			}
		}
		if len(transaction) > 0 {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

func CreateCsv(path string, data [][]string) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return errors.Wrap(ErrWriteCsv, err.Error())
	}
	csvWriter := csv.NewWriter(csvFile)
	if err = csvWriter.WriteAll(data); err != nil {
		_ = csvFile.Close()
		return errors.Wrap(ErrWriteCsv, err.Error())
	}
	// 关闭失败说明数据没有落盘
	if err = csvFile.Close(); err != nil {
		return errors.Wrap(ErrWriteCsv, err.Error())
	}
	return nil
}
