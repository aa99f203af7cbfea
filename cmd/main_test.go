package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/http/api"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/http/swagger"
	service "github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/app"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/config"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/metrics"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("FAERS_ADDR", ":8080")
			t.Setenv("FAERS_FETCH_LIMIT", "500")
			t.Setenv("FAERS_TOP_REACTIONS", "5")

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FetchLimit, convey.ShouldEqual, 500)
				convey.So(cfg.TopReactions, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithFetchLimit(500),
					service.WithTopReactions(5),
					service.WithWildcard(true),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			t.Setenv("FAERS_ADDR", ":8080")
			t.Setenv("FAERS_CACHE_TTL_SECONDS", "60")

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				svc := service.New(
					service.WithFetchLimit(cfg.FetchLimit),
					service.WithTopReactions(cfg.TopReactions),
					service.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
				)
				convey.So(svc, convey.ShouldNotBeNil)
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				defer svc.Stop()

				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)

				server.Register(ctx, mux)
				swagger.Register(ctx, mux)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			t.Setenv("FAERS_FETCH_LIMIT", "0")

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then zero values should fall back to defaults", func() {
				svc := service.New(
					service.WithFetchLimit(0),
					service.WithTopReactions(0),
					service.WithCacheTTL(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})
	})
}
