package logger

import (
	"time"

	"go.uber.org/zap"
)

var sugar = zap.NewNop().Sugar()

func init() {
	// 未调用InitLogger之前只打控制台
	if l, err := initZap("", "info", "", 0, 0, 0, ""); err == nil {
		sugar = l.Sugar()
	}
}

// InitLogger 替换全局日志, 同时把zap全局logger替换掉
func InitLogger(level, name, logPath string, maxAge, rotationTime time.Duration, rotationSize uint32, dsn string) error {
	l, err := initZap(name, level, logPath, maxAge, rotationTime, rotationSize, dsn)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	sugar = l.Sugar()
	return nil
}

func Sync() {
	_ = sugar.Sync()
}

func Debugf(template string, args ...interface{}) {
	sugar.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}
