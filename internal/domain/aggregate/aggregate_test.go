package aggregate_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/aggregate"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
)

func TestYears(t *testing.T) {
	Convey("Given a batch of normalized reports", t, func() {
		Convey("When counting reports per year", func() {
			reports := []model.Report{
				{Year: 2023},
				{Year: 2022},
				{Year: 2022},
			}

			out := aggregate.Years(reports)

			Convey("Then the trend should be ascending by year", func() {
				So(out, ShouldResemble, []model.YearCount{
					{Year: 2022, Count: 2},
					{Year: 2023, Count: 1},
				})
			})
		})

		Convey("When some reports have an unknown year", func() {
			reports := []model.Report{
				{Year: 2021},
				{Year: 0},
				{Year: 0},
				{Year: 2021},
			}

			out := aggregate.Years(reports)

			Convey("Then unknown years should be excluded from the trend", func() {
				So(out, ShouldResemble, []model.YearCount{{Year: 2021, Count: 2}})
			})
		})

		Convey("When the batch is empty", func() {
			So(aggregate.Years(nil), ShouldBeEmpty)
		})
	})
}

func TestTopReactions(t *testing.T) {
	Convey("Given reports with reaction terms", t, func() {
		Convey("When ranking the terms", func() {
			reports := []model.Report{
				{Reactions: []string{"NAUSEA", "VOMITING"}},
				{Reactions: []string{"NAUSEA", "HEADACHE"}},
				{Reactions: []string{"VOMITING"}},
				{Reactions: []string{"NAUSEA"}},
			}

			out := aggregate.TopReactions(reports)

			Convey("Then counts should be descending", func() {
				So(out, ShouldResemble, []model.ReactionCount{
					{Term: "NAUSEA", Count: 3},
					{Term: "VOMITING", Count: 2},
					{Term: "HEADACHE", Count: 1},
				})
			})
		})

		Convey("When two terms tie on count", func() {
			reports := []model.Report{
				{Reactions: []string{"NAUSEA", "VOMITING"}},
				{Reactions: []string{"VOMITING", "NAUSEA"}},
			}

			out := aggregate.TopReactions(reports)

			Convey("Then the first-encountered term should rank first", func() {
				So(out, ShouldResemble, []model.ReactionCount{
					{Term: "NAUSEA", Count: 2},
					{Term: "VOMITING", Count: 2},
				})
			})
		})

		Convey("When the batch contains administrative filing terms", func() {
			reports := []model.Report{
				{Reactions: []string{"DRUG INEFFECTIVE", "NAUSEA"}},
				{Reactions: []string{"OFF LABEL USE", "PRODUCT QUALITY ISSUE", "NAUSEA"}},
				{Reactions: []string{"DRUG INEFFECTIVE"}},
			}

			out := aggregate.TopReactions(reports)

			Convey("Then the blocklisted terms should never appear", func() {
				So(out, ShouldResemble, []model.ReactionCount{{Term: "NAUSEA", Count: 2}})
			})
		})

		Convey("When a custom blocklist is supplied", func() {
			reports := []model.Report{
				{Reactions: []string{"NAUSEA", "FATIGUE"}},
			}

			out := aggregate.TopReactions(reports, aggregate.WithBlocklist(
				map[string]struct{}{"FATIGUE": {}},
			))

			Convey("Then only the custom terms should be stripped", func() {
				So(out, ShouldResemble, []model.ReactionCount{{Term: "NAUSEA", Count: 1}})
			})
		})

		Convey("When more terms exist than the requested top N", func() {
			reports := []model.Report{
				{Reactions: []string{"A1", "B2", "C3", "D4"}},
				{Reactions: []string{"A1", "B2", "C3"}},
				{Reactions: []string{"A1", "B2"}},
				{Reactions: []string{"A1"}},
			}

			out := aggregate.TopReactions(reports, aggregate.WithTopN(2))

			Convey("Then the table should be truncated after ranking", func() {
				So(out, ShouldResemble, []model.ReactionCount{
					{Term: "A1", Count: 4},
					{Term: "B2", Count: 3},
				})
			})
		})

		Convey("When reports carry no reactions", func() {
			So(aggregate.TopReactions([]model.Report{{Year: 2023}}), ShouldBeEmpty)
		})
	})
}

func TestCountries(t *testing.T) {
	Convey("Given reports with reporting countries", t, func() {
		Convey("When counting per country", func() {
			reports := []model.Report{
				{Country: "US"},
				{Country: "GB"},
				{Country: "US"},
				{Country: "US"},
				{Country: "GB"},
				{Country: "XX"},
			}

			out := aggregate.Countries(reports)

			Convey("Then rows should be descending by count", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].Code, ShouldEqual, "US")
				So(out[0].Count, ShouldEqual, 3)
				So(out[1].Code, ShouldEqual, "GB")
				So(out[1].Count, ShouldEqual, 2)
			})

			Convey("Then mapped codes should carry coordinates and display names", func() {
				So(out[0].Name, ShouldEqual, "United States")
				So(out[0].Lat, ShouldNotBeNil)
				So(out[0].Lon, ShouldNotBeNil)
			})

			Convey("Then unmapped codes should keep their row without coordinates", func() {
				So(out[2].Code, ShouldEqual, "XX")
				So(out[2].Name, ShouldEqual, "XX")
				So(out[2].Count, ShouldEqual, 1)
				So(out[2].Lat, ShouldBeNil)
			})
		})

		Convey("When two countries tie on count", func() {
			reports := []model.Report{
				{Country: "DE"},
				{Country: "FR"},
			}

			out := aggregate.Countries(reports)

			Convey("Then the first-encountered country should rank first", func() {
				So(out[0].Code, ShouldEqual, "DE")
				So(out[1].Code, ShouldEqual, "FR")
			})
		})

		Convey("When reports have no country", func() {
			out := aggregate.Countries([]model.Report{{Country: ""}, {Country: "JP"}})

			Convey("Then blank countries should be skipped", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].Code, ShouldEqual, "JP")
			})
		})

		Convey("When filtering to the map-ready subset", func() {
			reports := []model.Report{
				{Country: "US"},
				{Country: "XX"},
				{Country: "CA"},
			}

			all := aggregate.Countries(reports)
			mapped := aggregate.MappedOnly(all)

			Convey("Then only coordinate-backed rows should remain", func() {
				So(all, ShouldHaveLength, 3)
				So(mapped, ShouldHaveLength, 2)
				for _, c := range mapped {
					So(c.Lat, ShouldNotBeNil)
					So(c.Lon, ShouldNotBeNil)
				}
			})
		})
	})
}
