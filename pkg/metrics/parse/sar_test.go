package parse

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSarCPU(t *testing.T) {
	Convey("While parsing sar CPU reports", t, func() {
		Convey("The Average row idle percentage should be preferred", func() {
			path := writeTempReport(t, "job.sar.cpu.txt", `Linux 5.15.0 (worker-1) 	08/30/26 	_x86_64_	(8 CPU)

12:00:01        CPU     %user     %nice   %system   %iowait    %steal     %idle
12:00:02        all      1.00      0.00      1.00      0.00      0.00     98.00
12:00:03        all      3.00      0.00      5.00      1.00      0.00     91.00
Average:        all    2.00   0.00   3.00   1.00   0.00  94.00
`)
			cpu := SarCPU(path)

			So(cpu, ShouldNotBeNil)
			So(*cpu, ShouldAlmostEqual, 6.0, 1e-9)
		})

		Convey("Without an Average row, 100-idle should be averaged across data rows", func() {
			path := writeTempReport(t, "job.sar.cpu.txt", `Linux 5.15.0 (worker-1)

12:00:01        CPU     %user     %nice   %system   %iowait    %steal     %idle
12:00:02        all      1.00      0.00      1.00      0.00      0.00     90.00
12:00:03        all      3.00      0.00      5.00      1.00      0.00     70.00
`)
			cpu := SarCPU(path)

			So(cpu, ShouldNotBeNil)
			So(*cpu, ShouldAlmostEqual, 20.0, 1e-9)
		})

		Convey("A missing file should yield absent", func() {
			So(SarCPU(filepath.Join(t.TempDir(), "missing.txt")), ShouldBeNil)
		})
	})
}

func TestSarMem(t *testing.T) {
	Convey("While parsing sar memory reports", t, func() {
		Convey("The Average row used-KB column should be preferred and converted to MB", func() {
			path := writeTempReport(t, "job.sar.mem.txt", `Linux 5.15.0 (worker-1)

12:00:01    kbmemfree   kbavail kbmemused  %memused kbbuffers  kbcached
12:00:02      1000000    900000   2048000     50.00     10000    400000
Average:      1000000    900000   4096000     50.00     10000    400000
`)
			mem := SarMem(path)

			So(mem, ShouldNotBeNil)
			So(*mem, ShouldAlmostEqual, 4000.0, 1e-9)
		})

		Convey("Without an Average row, data rows should be averaged", func() {
			path := writeTempReport(t, "job.sar.mem.txt", `Linux 5.15.0 (worker-1)

12:00:02      1000000    900000   1024000     50.00     10000    400000
12:00:03      1000000    900000   3072000     50.00     10000    400000
`)
			mem := SarMem(path)

			So(mem, ShouldNotBeNil)
			So(*mem, ShouldAlmostEqual, 2000.0, 1e-9)
		})
	})
}

func TestSarDisk(t *testing.T) {
	Convey("While parsing sar disk reports", t, func() {
		Convey("The Average row last two columns should be read/write KB/s", func() {
			path := writeTempReport(t, "job.sar.dsk.txt", `Linux 5.15.0 (worker-1)

12:00:01          tps      rtps      wtps   bread/s   bwrtn/s
12:00:02        10.00      5.00      5.00    100.00    200.00
Average:        10.00      5.00      5.00    150.00    250.00
`)
			read, write := SarDisk(path)

			So(read, ShouldNotBeNil)
			So(*read, ShouldAlmostEqual, 150.0, 1e-9)
			So(write, ShouldNotBeNil)
			So(*write, ShouldAlmostEqual, 250.0, 1e-9)
		})

		Convey("Without an Average row, the last two columns should be averaged per row", func() {
			path := writeTempReport(t, "job.sar.dsk.txt", `Linux 5.15.0 (worker-1)

12:00:02        10.00      5.00      5.00    100.00    200.00
12:00:03        10.00      5.00      5.00    300.00    400.00
`)
			read, write := SarDisk(path)

			So(read, ShouldNotBeNil)
			So(*read, ShouldAlmostEqual, 200.0, 1e-9)
			So(write, ShouldNotBeNil)
			So(*write, ShouldAlmostEqual, 300.0, 1e-9)
		})
	})
}

func TestSarNet(t *testing.T) {
	Convey("While parsing sar network reports", t, func() {
		Convey("Average rows should be summed across non-loopback interfaces", func() {
			path := writeTempReport(t, "job.sar.net.txt", `Linux 5.15.0 (worker-1)

12:00:01        IFACE   rxpck/s   txpck/s    rxkB/s    txkB/s
Average:        IFACE   rxpck/s   txpck/s    rxkB/s    txkB/s
Average:           lo      5.00      5.00    999.00    999.00
Average:         eth0     10.00      8.00    100.00     50.00
Average:         eth1      2.00      1.00     20.00     10.00
`)
			recv, send := SarNet(path)

			So(recv, ShouldNotBeNil)
			So(*recv, ShouldAlmostEqual, 120.0, 1e-9)
			So(send, ShouldNotBeNil)
			So(*send, ShouldAlmostEqual, 60.0, 1e-9)
		})

		Convey("Without usable Average rows, data rows should be grouped by timestamp", func() {
			path := writeTempReport(t, "job.sar.net.txt", `Linux 5.15.0 (worker-1)

12:00:01        IFACE   rxpck/s   txpck/s    rxkB/s    txkB/s
12:00:02         eth0     10.00      8.00    100.00     50.00
12:00:02         eth1      2.00      1.00     20.00     10.00
12:00:02           lo      5.00      5.00    999.00    999.00
12:00:03         eth0     10.00      8.00     60.00     30.00
12:00:03         eth1      2.00      1.00     20.00     10.00
`)
			recv, send := SarNet(path)

			// Per-timestamp sums are (120, 60) and (80, 40).
			So(recv, ShouldNotBeNil)
			So(*recv, ShouldAlmostEqual, 100.0, 1e-9)
			So(send, ShouldNotBeNil)
			So(*send, ShouldAlmostEqual, 50.0, 1e-9)
		})

		Convey("A missing file should yield absent", func() {
			recv, send := SarNet(filepath.Join(t.TempDir(), "missing.txt"))
			So(recv, ShouldBeNil)
			So(send, ShouldBeNil)
		})
	})
}
