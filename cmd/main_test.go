package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/microlearn/sessionrank/internal/adapters/http/api"
	"github.com/microlearn/sessionrank/internal/adapters/http/swagger"
	service "github.com/microlearn/sessionrank/internal/app"
	"github.com/microlearn/sessionrank/internal/config"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("SESSIONRANK_ADDR", ":8080")
			_ = os.Setenv("SESSIONRANK_BACKEND", "pairwise")
			defer func() {
				_ = os.Unsetenv("SESSIONRANK_ADDR")
				_ = os.Unsetenv("SESSIONRANK_BACKEND")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Backend, convey.ShouldEqual, "pairwise")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
				convey.So(svc.Backend(), convey.ShouldEqual, "lambdamart")
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithBackend("fusion"),
					service.WithFusionEpochs(50),
					service.WithTopK(5),
				)
				convey.So(svc, convey.ShouldNotBeNil)
				convey.So(svc.Backend(), convey.ShouldEqual, "fusion")
			})
		})

		convey.Convey("When wiring the HTTP mux", func() {
			ctx := context.Background()
			svc := service.New()
			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc).Register(ctx, mux)

			srv := &http.Server{
				Addr:              ":0",
				Handler:           mux,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			convey.Convey("Then the server should carry the configured timeouts", func() {
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
				convey.So(srv.WriteTimeout, convey.ShouldEqual, 30*time.Second)
				convey.So(srv.IdleTimeout, convey.ShouldEqual, 60*time.Second)
			})

			convey.Convey("And the registered routes should respond", func() {
				req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

				req = httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
				w = httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}
