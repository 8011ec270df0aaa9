package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fpminer/fp_config"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// All 全部配置索引
var All = Default()

var DefaultPath = "./config"
var DebugPath = "./config/debug"

// InitConfig 读取配置文件, configFile为空时从DefaultPath找config.yml; 找不到配置文件时使用默认配置
func InitConfig(configFile string) (*AllConfig, error) {
	v := viper.New()
	setDefaults(v)

	configType := "yml"
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(DefaultPath)
		v.SetConfigName("config")
		v.SetConfigType(configType)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, err
		}
		log.Printf("config file not found under %s, using defaults", DefaultPath)
	}

	//增量配置
	if os.Getenv("DEBUG") == "true" {
		debugConfigPath := filepath.Join(DebugPath, "debug.yml")
		exists, err := isExists(debugConfigPath)
		if err != nil {
			return nil, err
		}
		if exists {
			v.SetConfigFile(debugConfigPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, err
			}
		}
	}

	// 监控配置文件变化
	if v.ConfigFileUsed() != "" {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("Config file changed: %s", e.Name)
		})
	}

	all := &AllConfig{}
	if err := v.Unmarshal(all); err != nil {
		return nil, err
	}
	All = all
	return all, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server_config.http_port", d.Server.HttpPort)
	v.SetDefault("server_config.result_dir", d.Server.ResultDir)
	v.SetDefault("server_config.task_retention", d.Server.TaskRetention)
	v.SetDefault("logger_config.level", d.Logger.Level)
	v.SetDefault("logger_config.max_age", d.Logger.MaxAge)
	v.SetDefault("logger_config.rotation_time", d.Logger.RotationTime)
	v.SetDefault("logger_config.rotation_size", d.Logger.RotationSize)
	v.SetDefault("mining_config.min_support", d.Mining.MinSupport)
	v.SetDefault("mining_config.min_confidence", d.Mining.MinConfidence)
	v.SetDefault("mining_config.min_lift", d.Mining.MinLift)
	v.SetDefault("mining_config.workers", d.Mining.Workers)
	v.SetDefault("mining_config.format", d.Mining.Format)
}

// Default 没有配置文件时的配置
func Default() *AllConfig {
	return &AllConfig{
		Server: ServerConfig{
			HttpPort:      fp_config.GinPort,
			ResultDir:     fp_config.ResultDir,
			TaskRetention: fp_config.TaskRetention,
		},
		Logger: LoggerConfig{
			Level:        "info",
			MaxAge:       7,
			RotationTime: 24,
			RotationSize: 1024,
		},
		Mining: MiningConfig{
			MinSupport:    fp_config.MinSupport,
			MinConfidence: fp_config.MinConfidence,
			MinLift:       fp_config.MinLift,
			Workers:       fp_config.Workers,
			Format:        fp_config.FormatCsv,
		},
	}
}

// AllConfig 全部配置文件
type AllConfig struct {
	Server ServerConfig `mapstructure:"server_config"`
	Logger LoggerConfig `mapstructure:"logger_config"`
	Mining MiningConfig `mapstructure:"mining_config"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	HttpPort      string        `mapstructure:"http_port"`
	SentryDsn     string        `mapstructure:"sentry_dsn"`
	ResultDir     string        `mapstructure:"result_dir"`
	TaskRetention time.Duration `mapstructure:"task_retention"` // 结束的任务在注册表里保留多久
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string        `mapstructure:"level"`
	Path         string        `mapstructure:"path"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
	RotationSize uint32        `mapstructure:"rotation_size"`
}

// MiningConfig 挖掘参数, 命令行参数会覆盖这里的值
type MiningConfig struct {
	MinSupport    float64 `mapstructure:"min_support"`
	MinCount      uint32  `mapstructure:"min_count"`
	MinConfidence float64 `mapstructure:"min_confidence"`
	MinLift       float64 `mapstructure:"min_lift"`
	Workers       int     `mapstructure:"workers"`
	Format        string  `mapstructure:"format"`
	Filter        string  `mapstructure:"filter"`
}

func (c AllConfig) String() string {
	return fmt.Sprintf("server:%+v logger:%+v mining:%+v", c.Server, c.Logger, c.Mining)
}

// 判断所给文件/文件夹是否存在
func isExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
