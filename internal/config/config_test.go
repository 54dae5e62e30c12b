package config_test

import (
	"testing"
	"time"

	"github.com/okian/zoneprofile/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.AuthURL, convey.ShouldEqual, "https://learn.zone01oujda.ma/api/auth/signin")
			convey.So(cfg.GraphQLURL, convey.ShouldEqual, "https://learn.zone01oujda.ma/api/graphql-engine/v1/graphql")
			convey.So(cfg.TokenStore, convey.ShouldEqual, config.TokenStoreMemory)
			convey.So(cfg.SessionCookie, convey.ShouldEqual, "zp_session")
			convey.So(cfg.EnhancedCharts, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("And durations are derived from the millisecond fields", func() {
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.ErrorLogoutDelay(), convey.ShouldEqual, 5*time.Second)
		})
	})
}
