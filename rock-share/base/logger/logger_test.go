package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	Convey("file cores write info and error logs", t, func() {
		dir := filepath.Join(t.TempDir(), "logs")
		So(InitLogger("debug", "fpminer_test", dir, 1, 1, 1, ""), ShouldBeNil)
		Infof("hello %s", "info")
		Errorf("hello %s", "error")
		Sync()

		entries, err := os.ReadDir(dir)
		So(err, ShouldBeNil)
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		joined := strings.Join(names, " ")
		So(joined, ShouldContainSubstring, "fpminer_test_info_")
		So(joined, ShouldContainSubstring, "fpminer_test_err_")
	})

	Convey("level parsing", t, func() {
		So(parseLevel("DEBUG"), ShouldEqual, zapcore.DebugLevel)
		So(parseLevel("warn"), ShouldEqual, zapcore.WarnLevel)
		So(parseLevel("nonsense"), ShouldEqual, zapcore.InfoLevel)
	})
}
