package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a dedicated registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "unit")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 2, 3})
			})

			Convey("And collectors register under the namespace", func() {
				m.loginAttempts.WithLabelValues("success").Inc()
				So(sumOf(registry, "test_unit_login_attempts_total"), ShouldEqual, 1)
			})
		})

		Convey("When empty option values are passed", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "zoneprofile")
				So(m.subsystem, ShouldEqual, "web")
				So(m.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording session flow metrics", func() {
			before := sumOf(GetRegistry(), "zoneprofile_web_login_attempts_total")
			RecordLoginAttempt("rejected")
			RecordStateTransition("logged_out", "authenticating")
			UpdateActiveSessions(3)
			RecordAutoLogout()

			Convey("Then the collectors reflect them", func() {
				So(sumOf(GetRegistry(), "zoneprofile_web_login_attempts_total"), ShouldEqual, before+1)
				So(sumOf(GetRegistry(), "zoneprofile_web_active_sessions"), ShouldEqual, 3)
			})
		})

		Convey("When recording upstream and render metrics", func() {
			beforeWarn := sumOf(GetRegistry(), "zoneprofile_web_graphql_warnings_total")
			RecordProfileFetch("success", 42)
			RecordGraphQLWarnings(2)
			RecordGraphQLWarnings(0)
			RecordStaleResponse()
			RecordChartRender("skills")

			Convey("Then warnings are added by count", func() {
				So(sumOf(GetRegistry(), "zoneprofile_web_graphql_warnings_total"), ShouldEqual, beforeWarn+2)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("profile", "GET", "200")
				RecordHTTPRequestDuration("profile", "GET", "200", 12)
				RecordErrorByEndpoint("login", "POST", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry gathers the service metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

// sumOf adds up every counter and gauge sample of the named family.
func sumOf(g prometheus.Gatherer, name string) float64 {
	families, err := g.Gather()
	if err != nil {
		return -1
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
	return total
}

func TestConfigure(t *testing.T) {
	Convey("Given a configured global manager", t, func() {
		Configure(WithNamespace("profile"), WithSubsystem("edge"), WithHistogramBuckets([]float64{10, 100}))
		Reset(func() { Configure() })

		Convey("When a login is recorded", func() {
			RecordLoginAttempt("success")

			Convey("Then it is exported under the configured names", func() {
				So(sumOf(GetRegistry(), "profile_edge_login_attempts_total"), ShouldEqual, 1)
				So(sumOf(GetRegistry(), "zoneprofile_web_login_attempts_total"), ShouldEqual, 0)
				So(globalManager.histogramBuckets, ShouldResemble, []float64{10, 100})
			})
		})
	})
}
