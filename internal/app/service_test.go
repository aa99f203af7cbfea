package service_test

import (
	"context"
	"errors"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/cache"
	service "github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/app"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

// fakeFetcher serves a fixed batch and counts calls.
type fakeFetcher struct {
	mu     sync.Mutex
	batch  []model.RawReport
	err    error
	calls  int
	params []url.Values
}

func (f *fakeFetcher) Fetch(_ context.Context, params url.Values) ([]model.RawReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var sampleBatch = []model.RawReport{
	model.RawReport(`{"receivedate":"20230110","occurcountry":"US","patient":{"reaction":[{"reactionmeddrapt":"NAUSEA"},{"reactionmeddrapt":"DRUG INEFFECTIVE"}]}}`),
	model.RawReport(`{"receivedate":"20230220","occurcountry":"US","patient":{"reaction":[{"reactionmeddrapt":"NAUSEA"}]}}`),
	model.RawReport(`{"receivedate":"20220315","occurcountry":"GB","patient":{"reaction":[{"reactionmeddrapt":"VOMITING"}]}}`),
	model.RawReport(`not json`),
}

func newStarted(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestServiceSummary(t *testing.T) {
	Convey("Given a started service with a fake upstream", t, func() {
		ctx := context.Background()
		fetcher := &fakeFetcher{batch: sampleBatch}
		svc := newStarted(t, service.WithFetcher(fetcher))

		Convey("When querying a drug", func() {
			summary, err := svc.Summary(ctx, "Semaglutide")

			Convey("Then the summary should carry all three tables", func() {
				So(err, ShouldBeNil)
				So(summary.Drug, ShouldEqual, "semaglutide")
				So(summary.SampleSize, ShouldEqual, 3)
				So(summary.SampleBasis, ShouldEqual, "most recent 4 FAERS reports")
				So(summary.FetchedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And the year trend should be ascending", func() {
				So(summary.Years, ShouldResemble, []model.YearCount{
					{Year: 2022, Count: 1},
					{Year: 2023, Count: 2},
				})
			})

			Convey("And administrative reaction terms should be filtered", func() {
				So(summary.Reactions, ShouldResemble, []model.ReactionCount{
					{Term: "NAUSEA", Count: 2},
					{Term: "VOMITING", Count: 1},
				})
			})

			Convey("And country rows should be descending by count", func() {
				So(summary.Countries, ShouldHaveLength, 2)
				So(summary.Countries[0].Code, ShouldEqual, "US")
				So(summary.Countries[0].Count, ShouldEqual, 2)
			})
		})

		Convey("When the same drug is queried twice", func() {
			_, err1 := svc.Summary(ctx, "semaglutide")
			_, err2 := svc.Summary(ctx, "  SEMAGLUTIDE  ")

			Convey("Then the second call should be a cache hit", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(fetcher.callCount(), ShouldEqual, 1)
			})
		})

		Convey("When the drug name is blank", func() {
			_, err := svc.Summary(ctx, "   ")

			So(errors.Is(err, service.ErrEmptyDrug), ShouldBeTrue)
			So(fetcher.callCount(), ShouldEqual, 0)
		})

		Convey("When the upstream fails", func() {
			failing := &fakeFetcher{err: errors.New("boom")}
			failed := newStarted(t, service.WithFetcher(failing))

			_, err := failed.Summary(ctx, "adalimumab")

			Convey("Then the error should name the drug and wrap the cause", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, `fetch "adalimumab"`)
			})

			Convey("And the failure should not be cached", func() {
				failing.mu.Lock()
				failing.err = nil
				failing.batch = sampleBatch
				failing.mu.Unlock()

				summary, err := failed.Summary(ctx, "adalimumab")
				So(err, ShouldBeNil)
				So(summary.SampleSize, ShouldEqual, 3)
			})
		})

		Convey("When wildcard matching is configured", func() {
			wild := &fakeFetcher{batch: sampleBatch}
			wildSvc := newStarted(t,
				service.WithFetcher(wild),
				service.WithWildcard(true),
				service.WithFetchLimit(200),
			)

			_, err := wildSvc.Summary(ctx, "apixaban")

			Convey("Then the upstream query should reflect the options", func() {
				So(err, ShouldBeNil)
				So(wild.params[0].Get("search"), ShouldEqual, "patient.drug.medicinalproduct:APIXABAN*")
				So(wild.params[0].Get("limit"), ShouldEqual, "200")
			})
		})

		Convey("When identical queries race", func() {
			racing := &fakeFetcher{batch: sampleBatch}
			raceSvc := newStarted(t, service.WithFetcher(racing))

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = raceSvc.Summary(ctx, "empagliflozin")
				}()
			}
			wg.Wait()

			Convey("Then the pipeline should run once", func() {
				So(racing.callCount(), ShouldEqual, 1)
			})
		})
	})
}

func TestServiceRefresh(t *testing.T) {
	Convey("Given a started service with a short-TTL cache", t, func() {
		ctx := context.Background()
		fetcher := &fakeFetcher{batch: sampleBatch}
		store := cache.NewMemoryStore(cache.WithTTL(time.Hour))
		svc := newStarted(t,
			service.WithFetcher(fetcher),
			service.WithCache(store),
		)

		Convey("When a cached drug is refreshed", func() {
			_, err := svc.Summary(ctx, "semaglutide")
			So(err, ShouldBeNil)
			So(fetcher.callCount(), ShouldEqual, 1)

			err = svc.Refresh(ctx, "semaglutide")

			Convey("Then the pipeline should run despite the fresh cache", func() {
				So(err, ShouldBeNil)
				So(fetcher.callCount(), ShouldEqual, 2)
			})

			Convey("And the next query should be served from the warmed cache", func() {
				So(err, ShouldBeNil)
				_, err := svc.Summary(ctx, "semaglutide")
				So(err, ShouldBeNil)
				So(fetcher.callCount(), ShouldEqual, 2)
			})
		})

		Convey("When refreshing a blank drug", func() {
			err := svc.Refresh(ctx, "")

			So(errors.Is(err, service.ErrEmptyDrug), ShouldBeTrue)
		})
	})
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithFetcher(&fakeFetcher{batch: sampleBatch}))

		Convey("When started twice", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()
		})

		Convey("When reading stats", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			_, err := svc.Summary(context.Background(), "semaglutide")
			So(err, ShouldBeNil)

			stats := svc.GetStats()

			Convey("Then the snapshot should report cache occupancy", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["fetchLimit"], ShouldEqual, 1000)
				So(stats["cacheEntries"], ShouldEqual, 1)
			})
		})
	})
}
