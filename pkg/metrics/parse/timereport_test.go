package parse

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeTempReport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTimeReport(t *testing.T) {
	Convey("While parsing resource-usage reports", t, func() {
		Convey("A GNU time -v report should yield all four fields", func() {
			path := writeTempReport(t, "job.time", `	Command being timed: "spark-submit job.py"
	User time (seconds): 12.34
	System time (seconds): 1.50
	Elapsed (wall clock) time (h:mm:ss or m:ss): 0:45.67
	Maximum resident set size (kbytes): 524288
`)
			report, err := TimeReport(path)

			So(err, ShouldBeNil)
			So(report.UserCPUSeconds, ShouldNotBeNil)
			So(*report.UserCPUSeconds, ShouldEqual, 12.34)
			So(report.SysCPUSeconds, ShouldNotBeNil)
			So(*report.SysCPUSeconds, ShouldEqual, 1.5)
			So(report.ElapsedSeconds, ShouldNotBeNil)
			So(*report.ElapsedSeconds, ShouldEqual, 45.67)
			So(report.MaxRSSKB, ShouldNotBeNil)
			So(*report.MaxRSSKB, ShouldEqual, 524288)
		})

		Convey("A raw-seconds elapsed line should be accepted", func() {
			path := writeTempReport(t, "job.time", "elapsed_seconds: 321.5\n")
			report, err := TimeReport(path)

			So(err, ShouldBeNil)
			So(report.ElapsedSeconds, ShouldNotBeNil)
			So(*report.ElapsedSeconds, ShouldEqual, 321.5)
			So(report.UserCPUSeconds, ShouldBeNil)
			So(report.MaxRSSKB, ShouldBeNil)
		})

		Convey("A bare `real` line should be accepted", func() {
			path := writeTempReport(t, "job.time", "real\t12.05\n")
			report, err := TimeReport(path)

			So(err, ShouldBeNil)
			So(report.ElapsedSeconds, ShouldNotBeNil)
			So(*report.ElapsedSeconds, ShouldEqual, 12.05)
		})

		Convey("The first match per field should win", func() {
			path := writeTempReport(t, "job.time", "elapsed_seconds: 10\nelapsed_seconds: 99\n")
			report, err := TimeReport(path)

			So(err, ShouldBeNil)
			So(*report.ElapsedSeconds, ShouldEqual, 10.0)
		})

		Convey("A missing file should yield all-absent fields with no error", func() {
			report, err := TimeReport(filepath.Join(t.TempDir(), "does-not-exist.time"))

			So(err, ShouldBeNil)
			So(report.ElapsedSeconds, ShouldBeNil)
			So(report.UserCPUSeconds, ShouldBeNil)
			So(report.SysCPUSeconds, ShouldBeNil)
			So(report.MaxRSSKB, ShouldBeNil)
		})
	})
}
