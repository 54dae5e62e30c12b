package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/zoneprofile/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 10_000)
				convey.So(cfg.ErrorLogoutDelayMS, convey.ShouldEqual, 5_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ZONEPROFILE_ADDR", ":8080")
			_ = os.Setenv("ZONEPROFILE_GRAPHQL_URL", "http://localhost:8081/graphql")
			_ = os.Setenv("ZONEPROFILE_ERROR_LOGOUT_DELAY_MS", "0")
			_ = os.Setenv("ZONEPROFILE_ENHANCED_CHARTS", "false")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.GraphQLURL, convey.ShouldEqual, "http://localhost:8081/graphql")
				convey.So(cfg.ErrorLogoutDelayMS, convey.ShouldEqual, 0)
				convey.So(cfg.EnhancedCharts, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_format: json
token_store: file
token_file: /tmp/zp-tokens.yaml
request_timeout_ms: 2500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ZONEPROFILE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.TokenStore, convey.ShouldEqual, config.TokenStoreFile)
				convey.So(cfg.TokenFile, convey.ShouldEqual, "/tmp/zp-tokens.yaml")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.SessionCookie, convey.ShouldEqual, "zp_session") // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nrequest_timeout_ms: 2500\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ZONEPROFILE_CONFIG", tmpFile)
			_ = os.Setenv("ZONEPROFILE_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")          // Overridden by env
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 2500) // From file
			})
		})

		convey.Convey("When loading metrics settings from a YAML file", func() {
			tmpFile := createTempConfigFile("metrics_namespace: profile\nmetrics_subsystem: edge\nmetrics_buckets_ms: [10, 100, 1000]\n")
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then the metrics naming and buckets are set", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "profile")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "edge")
				convey.So(cfg.MetricsBucketsMS, convey.ShouldResemble, []float64{10, 100, 1000})
			})
		})

		convey.Convey("When metrics buckets are not increasing", func() {
			tmpFile := createTempConfigFile("metrics_buckets_ms: [100, 10]\n")
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then validation fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("ZONEPROFILE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.LoadFile(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ZONEPROFILE_REQUEST_TIMEOUT_MS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config values that fail validation", t, func() {
		ctx := context.Background()
		defer clearConfigEnvVars()

		cases := []struct {
			want string
			env  map[string]string
		}{
			{"addr must not be empty", map[string]string{"ZONEPROFILE_ADDR": ""}},
			{"auth_url must be an absolute", map[string]string{"ZONEPROFILE_AUTH_URL": "/api/auth/signin"}},
			{"unknown token_store", map[string]string{"ZONEPROFILE_TOKEN_STORE": "redis"}},
			{"token_file is required", map[string]string{"ZONEPROFILE_TOKEN_STORE": "file", "ZONEPROFILE_TOKEN_FILE": ""}},
			{"request_timeout_ms must not", map[string]string{"ZONEPROFILE_REQUEST_TIMEOUT_MS": "-1"}},
			{"error_logout_delay_ms must", map[string]string{"ZONEPROFILE_ERROR_LOGOUT_DELAY_MS": "-5"}},
			{"session_cookie must not", map[string]string{"ZONEPROFILE_SESSION_COOKIE": ""}},
		}

		for _, tc := range cases {
			convey.Convey("When "+tc.want, func() {
				clearConfigEnvVars()
				for k, v := range tc.env {
					_ = os.Setenv(k, v)
				}

				cfg, err := config.Load(ctx)

				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, tc.want)
			})
		}
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"ZONEPROFILE_CONFIG",
		"ZONEPROFILE_ADDR",
		"ZONEPROFILE_AUTH_URL",
		"ZONEPROFILE_GRAPHQL_URL",
		"ZONEPROFILE_REQUEST_TIMEOUT_MS",
		"ZONEPROFILE_ERROR_LOGOUT_DELAY_MS",
		"ZONEPROFILE_TOKEN_STORE",
		"ZONEPROFILE_TOKEN_FILE",
		"ZONEPROFILE_SESSION_COOKIE",
		"ZONEPROFILE_ENHANCED_CHARTS",
		"ZONEPROFILE_LOG_FORMAT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "zoneprofile-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
