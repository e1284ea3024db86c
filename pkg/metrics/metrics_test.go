package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with default names", func() {
				So(manager, ShouldNotBeNil)
				manager.qrGenerated.Inc()
				v, err := Value(registry, "badger_breakout_qr_generated_total", nil)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 1)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names and constant labels follow the options", func() {
				manager.visitorsLoaded.Set(7)
				v, err := Value(registry, "test_unit_visitors_loaded", map[string]string{"env": "test"})
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 7)
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should panic on duplicate collectors", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		reg := GetRegistry()

		Convey("When recording pipeline inputs", func() {
			UpdateInputs(10, 4, 2)
			UpdateExactMatches(3)

			v, err := Value(reg, "badger_breakout_visitors_loaded", nil)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 10)
			v, _ = Value(reg, "badger_breakout_exact_matches", nil)
			So(v, ShouldEqual, 3)
		})

		Convey("When recording assignments", func() {
			before, _ := Value(reg, "badger_breakout_assignments_total",
				map[string]string{"slot": "morning", "session": "S1"})
			RecordAssignments("morning", "S1", 2)
			UpdateRemainingCapacity("morning", "S1", 5)
			RecordExhausted("afternoon", 2)

			after, err := Value(reg, "badger_breakout_assignments_total",
				map[string]string{"slot": "morning", "session": "S1"})
			So(err, ShouldBeNil)
			So(after-before, ShouldEqual, 2)

			left, _ := Value(reg, "badger_breakout_remaining_capacity",
				map[string]string{"slot": "morning", "session": "S1"})
			So(left, ShouldEqual, 5)

			exhausted, err := Value(reg, "badger_breakout_exhausted_total", map[string]string{"slot": "afternoon"})
			So(err, ShouldBeNil)
			So(exhausted, ShouldBeGreaterThanOrEqualTo, 2)
		})

		Convey("When recording histograms", func() {
			So(func() {
				RecordFuzzyScore(88.89)
				RecordPipelineStage("assign", 1.5)
				RecordHTTPRequestDuration("/api/overview", "GET", "200", 0.3)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)

			n, err := Value(reg, "badger_breakout_fuzzy_score", nil)
			So(err, ShouldBeNil)
			So(n, ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("When recording counters without labels", func() {
			So(func() {
				RecordQRGenerated()
				RecordQRError()
				RecordPipelineRun("ok")
				RecordHTTPRequest("/api/overview", "GET", "200")
				RecordErrorByComponent("pipeline", "load")
				RecordErrorByEndpoint("/api/visitor", "GET", "not_found")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("When the render pool reports its state", func() {
			UpdateQRQueueSize(4)
			UpdateQRWorkerCount(3)
			So(func() { RecordQRRenderLatency(2.5) }, ShouldNotPanic)

			size, err := Value(reg, "badger_breakout_qr_queue_size", nil)
			So(err, ShouldBeNil)
			So(size, ShouldEqual, 4)

			workers, err := Value(reg, "badger_breakout_qr_worker_count", nil)
			So(err, ShouldBeNil)
			So(workers, ShouldEqual, 3)
		})

		Convey("When reading a metric that does not exist", func() {
			_, err := Value(reg, "badger_breakout_nope", nil)
			So(errors.Is(err, ErrMetricNotFound), ShouldBeTrue)
		})
	})
}
