package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with an isolated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then all metric families should be registered", func() {
				So(manager, ShouldNotBeNil)
				So(manager.upstreamRequests, ShouldNotBeNil)
				So(manager.upstreamRetries, ShouldNotBeNil)
				So(manager.upstreamFailures, ShouldNotBeNil)
				So(manager.recordsFetched, ShouldNotBeNil)
				So(manager.malformedRecords, ShouldNotBeNil)
				So(manager.queriesServed, ShouldNotBeNil)
				So(manager.cacheHits, ShouldNotBeNil)
				So(manager.refreshCycles, ShouldNotBeNil)
				So(manager.httpRequests, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom namespace and subsystem", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("custom"),
				WithSubsystem("pipeline"),
			)

			Convey("Then the names should carry the override", func() {
				So(manager.namespace, ShouldEqual, "custom")
				So(manager.subsystem, ShouldEqual, "pipeline")

				// Vector counters only gather once a label set exists.
				manager.upstreamRequests.WithLabelValues("2xx").Inc()

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "custom_pipeline_upstream_requests_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through the package helpers", func() {
			So(func() {
				RecordUpstreamRequest("5xx")
				RecordUpstreamRetry()
				RecordUpstreamFailure("exhausted")
				RecordUpstreamLatency(12.5)
				RecordRecordsFetched(1000)
				RecordMalformedRecords(3)
				RecordQueryServed()
				RecordQueryDuration(250)
				RecordCacheHit()
				RecordCacheMiss()
				UpdateCacheSize(5)
				RecordRefreshCycle()
				RecordRefreshError()
				RecordHTTPRequest("summary", "GET", "200")
				RecordHTTPRequestDuration("summary", "GET", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			RecordQueryServed()

			families, err := GetRegistry().Gather()

			Convey("Then the service counters should be exposed", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["faers_dashboard_queries_served_total"], ShouldBeTrue)
			})
		})
	})
}
