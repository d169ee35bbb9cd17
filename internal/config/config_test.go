package config_test

import (
	"context"
	"testing"

	"github.com/microlearn/sessionrank/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Backend, convey.ShouldEqual, "lambdamart")
			convey.So(cfg.TopK, convey.ShouldEqual, 3)
			convey.So(cfg.CatalogPath, convey.ShouldBeEmpty)
			convey.So(cfg.GenAIAPIKey, convey.ShouldBeEmpty)
		})
	})
}
