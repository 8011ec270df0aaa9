package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInitConfig(t *testing.T) {
	Convey("InitConfig", t, func() {
		dir := t.TempDir()

		Convey("reads mining options from file", func() {
			p := filepath.Join(dir, "config.yml")
			content := "mining_config:\n  min_support: 0.2\n  min_confidence: 0.7\n  workers: 3\n  format: yaml\nlogger_config:\n  level: debug\nserver_config:\n  task_retention: 30m\n"
			So(os.WriteFile(p, []byte(content), 0644), ShouldBeNil)

			all, err := InitConfig(p)
			So(err, ShouldBeNil)
			So(all.Mining.MinSupport, ShouldEqual, 0.2)
			So(all.Mining.MinConfidence, ShouldEqual, 0.7)
			So(all.Mining.Workers, ShouldEqual, 3)
			So(all.Mining.Format, ShouldEqual, "yaml")
			So(all.Logger.Level, ShouldEqual, "debug")
			So(all.Server.TaskRetention, ShouldEqual, 30*time.Minute)
			// 文件里没写的项取默认值
			So(all.Server.HttpPort, ShouldEqual, Default().Server.HttpPort)
			So(All, ShouldPointTo, all)
		})

		Convey("falls back to defaults without a config file", func() {
			old := DefaultPath
			DefaultPath = dir
			defer func() { DefaultPath = old }()

			all, err := InitConfig("")
			So(err, ShouldBeNil)
			So(all.Mining, ShouldResemble, Default().Mining)
			So(all.Server.TaskRetention, ShouldEqual, time.Hour)
		})

		Convey("explicit missing file is an error", func() {
			_, err := InitConfig(filepath.Join(dir, "missing.yml"))
			So(err, ShouldNotBeNil)
		})
	})
}
