// AcademiTrend - Academic Enrollment and Career Forecast Analytics
// Copyright 2026 AcademiTrend contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/academitrend/academitrend

package database

import (
	"context"
	"testing"
)

const pathwayForecastsCSV = `year,degree_program,pathway,enrollment_pred,model
2026,Computer Science,Data Science,85.2,holt
2026,Computer Science,Software Engineering,140.7,holt
2026,Business,Finance,95.1,linear_trend
2027,Computer Science,Data Science,91.8,holt
2027,Business,Finance,99.4,linear_trend
`

const enrollmentTrendCSV = `year,degree_program,pathway,enrollments
2022,Computer Science,Data Science,60
2023,Computer Science,Data Science,68
2024,Computer Science,Data Science,75
2022,Business,Finance,80
2023,Business,Finance,84
2024,Business,Finance,90
`

func TestGetPathwayForecasts(t *testing.T) {
	db := newTestDB(t)
	path := writeTestCSV(t, "pathway_forecasts.csv", pathwayForecastsCSV)
	ctx := context.Background()

	t.Run("no filter returns all rows", func(t *testing.T) {
		forecasts, err := db.GetPathwayForecasts(ctx, path, PathwayForecastsFilter{})
		if err != nil {
			t.Fatalf("GetPathwayForecasts: %v", err)
		}
		if len(forecasts) != 5 {
			t.Errorf("len = %d, expected 5", len(forecasts))
		}
	})

	t.Run("pathway substring filter", func(t *testing.T) {
		forecasts, err := db.GetPathwayForecasts(ctx, path, PathwayForecastsFilter{Pathway: "data"})
		if err != nil {
			t.Fatalf("GetPathwayForecasts: %v", err)
		}
		if len(forecasts) != 2 {
			t.Fatalf("len = %d, expected 2", len(forecasts))
		}
		for _, f := range forecasts {
			if f.Pathway != "Data Science" {
				t.Errorf("pathway filter leaked %q", f.Pathway)
			}
		}
	})

	t.Run("combined year and model filter", func(t *testing.T) {
		forecasts, err := db.GetPathwayForecasts(ctx, path, PathwayForecastsFilter{
			Year:  intPtr(2027),
			Model: "linear",
		})
		if err != nil {
			t.Fatalf("GetPathwayForecasts: %v", err)
		}
		if len(forecasts) != 1 {
			t.Fatalf("len = %d, expected 1", len(forecasts))
		}
		if forecasts[0].DegreeProgram != "Business" {
			t.Errorf("unexpected row: %+v", forecasts[0])
		}
	})

	t.Run("missing dataset", func(t *testing.T) {
		_, err := db.GetPathwayForecasts(ctx, "no/such/file.csv", PathwayForecastsFilter{})
		if !IsDatasetNotFound(err) {
			t.Errorf("expected ErrDatasetNotFound, got %v", err)
		}
	})
}

func TestGetPathwayTrendStats(t *testing.T) {
	db := newTestDB(t)
	path := writeTestCSV(t, "enrollment_trend.csv", enrollmentTrendCSV)

	stats, err := db.GetPathwayTrendStats(context.Background(), path)
	if err != nil {
		t.Fatalf("GetPathwayTrendStats: %v", err)
	}

	if stats.TotalRecords != 6 {
		t.Errorf("TotalRecords = %d, expected 6", stats.TotalRecords)
	}
	if stats.UniqueDegreePrograms != 2 {
		t.Errorf("UniqueDegreePrograms = %d, expected 2", stats.UniqueDegreePrograms)
	}
	if stats.UniquePathways != 2 {
		t.Errorf("UniquePathways = %d, expected 2", stats.UniquePathways)
	}
	if stats.TotalEnrollments != 457 {
		t.Errorf("TotalEnrollments = %d, expected 457", stats.TotalEnrollments)
	}
	if len(stats.YearsCovered) != 3 {
		t.Errorf("YearsCovered = %v, expected 3 years", stats.YearsCovered)
	}
}

func TestGetPathwaySeries(t *testing.T) {
	db := newTestDB(t)
	path := writeTestCSV(t, "enrollment_trend.csv", enrollmentTrendCSV)

	series, err := db.GetPathwaySeries(context.Background(), path)
	if err != nil {
		t.Fatalf("GetPathwaySeries: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("series count = %d, expected 2", len(series))
	}

	for _, s := range series {
		if len(s.Years) != 3 || len(s.Enrollments) != 3 {
			t.Errorf("series %s/%s has %d years, expected 3", s.DegreeProgram, s.Pathway, len(s.Years))
		}
		// Rows are ordered by year within each series
		for i := 1; i < len(s.Years); i++ {
			if s.Years[i] <= s.Years[i-1] {
				t.Errorf("series %s/%s years not ascending: %v", s.DegreeProgram, s.Pathway, s.Years)
			}
		}
	}
}

func TestGetEnrollmentsSummary(t *testing.T) {
	db := newTestDB(t)
	enrollments := `university,course_name,year,enrollments,avg_start_sal,graduate_employment_rate
University of Colombo,Computer Science,2022,100,65000,0.92
University of Colombo,Computer Science,2023,110,67000,
University of Moratuwa,Engineering,2022,95,,0.88
`
	path := writeTestCSV(t, "enrollments.csv", enrollments)

	summary, err := db.GetEnrollmentsSummary(context.Background(), path)
	if err != nil {
		t.Fatalf("GetEnrollmentsSummary: %v", err)
	}

	if summary.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, expected 3", summary.TotalRecords)
	}
	if summary.TotalEnrollments != 305 {
		t.Errorf("TotalEnrollments = %d, expected 305", summary.TotalEnrollments)
	}
	if summary.AvgEnrollmentsPerYear != 152.5 {
		t.Errorf("AvgEnrollmentsPerYear = %f, expected 152.5", summary.AvgEnrollmentsPerYear)
	}

	records, err := db.GetEnrollmentRecords(context.Background(), path, 100)
	if err != nil {
		t.Fatalf("GetEnrollmentRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, expected 3", len(records))
	}
	// Records come back ordered by year then university: 2022 Colombo,
	// 2022 Moratuwa, 2023 Colombo. Nullable columns survive the round trip.
	if records[0].AvgStartSal == nil || *records[0].AvgStartSal != 65000 {
		t.Errorf("AvgStartSal = %v", records[0].AvgStartSal)
	}
	if records[1].University != "University of Moratuwa" {
		t.Fatalf("records[1] = %+v, expected the 2022 Moratuwa row", records[1])
	}
	if records[1].AvgStartSal != nil {
		t.Errorf("Moratuwa AvgStartSal = %v, expected nil for the empty CSV cell", records[1].AvgStartSal)
	}
	if records[2].GraduateEmploymentRate != nil {
		t.Errorf("2023 Colombo GraduateEmploymentRate = %v, expected nil for the empty CSV cell", records[2].GraduateEmploymentRate)
	}
}

func TestGetApplicationsSummaryMergesDatasets(t *testing.T) {
	db := newTestDB(t)
	recent := `university,course_name,district,year,applications,cutoff_mark
University of Colombo,Computer Science,Colombo,2020,500,1.9
University of Moratuwa,Engineering,Colombo,2021,450,1.8
`
	old := `university,course_name,district,year,applications,cutoff_mark
University of Colombo,Computer Science,Colombo,2010,300,1.7
`
	recentPath := writeTestCSV(t, "applications_recent.csv", recent)
	oldPath := writeTestCSV(t, "applications_old.csv", old)

	summary, err := db.GetApplicationsSummary(context.Background(), []string{recentPath, oldPath})
	if err != nil {
		t.Fatalf("GetApplicationsSummary: %v", err)
	}

	if summary.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, expected 3", summary.TotalRecords)
	}
	if summary.TotalApplications != 1250 {
		t.Errorf("TotalApplications = %d, expected 1250", summary.TotalApplications)
	}
	if len(summary.YearsCovered) != 3 || summary.YearsCovered[0] != 2010 {
		t.Errorf("YearsCovered = %v", summary.YearsCovered)
	}
}

func TestGetApplicationsSummaryToleratesMissingFile(t *testing.T) {
	db := newTestDB(t)
	recent := `university,course_name,district,year,applications,cutoff_mark
University of Colombo,Computer Science,Colombo,2020,500,1.9
`
	recentPath := writeTestCSV(t, "applications_recent.csv", recent)

	summary, err := db.GetApplicationsSummary(context.Background(), []string{recentPath, "missing.csv"})
	if err != nil {
		t.Fatalf("one present file should suffice, got %v", err)
	}
	if summary.TotalRecords != 1 {
		t.Errorf("TotalRecords = %d, expected 1", summary.TotalRecords)
	}

	_, err = db.GetApplicationsSummary(context.Background(), []string{"a.csv", "b.csv"})
	if !IsDatasetNotFound(err) {
		t.Errorf("all files missing should yield ErrDatasetNotFound, got %v", err)
	}
}

func TestGetTopApplicationAggregates(t *testing.T) {
	db := newTestDB(t)
	recent := `university,course_name,district,year,applications,cutoff_mark
University of Colombo,Computer Science,Colombo,2020,500,1.9
University of Moratuwa,Engineering,Colombo,2020,400,1.8
University of Kelaniya,Management,Gampaha,2020,200,1.5
`
	old := `university,course_name,district,year,applications,cutoff_mark
University of Kelaniya,Management,Gampaha,2010,250,1.4
`
	recentPath := writeTestCSV(t, "applications_recent.csv", recent)
	oldPath := writeTestCSV(t, "applications_old.csv", old)

	// Kelaniya is outside the top 2 of each file on its own, but its
	// combined total (450) beats Moratuwa (400). The ranking is over the
	// concatenated datasets, so Kelaniya must make the cut.
	universities, courses, err := db.GetTopApplicationAggregates(context.Background(), []string{recentPath, oldPath}, 2)
	if err != nil {
		t.Fatalf("GetTopApplicationAggregates: %v", err)
	}
	if len(universities) != 2 {
		t.Fatalf("universities = %v, expected 2 entries", universities)
	}
	if universities["University of Colombo"] != 500 {
		t.Errorf("Colombo = %d, expected 500", universities["University of Colombo"])
	}
	if universities["University of Kelaniya"] != 450 {
		t.Errorf("Kelaniya = %d, expected combined 450, got %v", universities["University of Kelaniya"], universities)
	}
	if courses["Management"] != 450 {
		t.Errorf("Management = %d, expected combined 450", courses["Management"])
	}
}

func TestGetTopApplicationAggregatesMissingFiles(t *testing.T) {
	db := newTestDB(t)
	recent := `university,course_name,district,year,applications,cutoff_mark
University of Colombo,Computer Science,Colombo,2020,500,1.9
`
	recentPath := writeTestCSV(t, "applications_recent.csv", recent)

	universities, _, err := db.GetTopApplicationAggregates(context.Background(), []string{recentPath, "missing.csv"}, 10)
	if err != nil {
		t.Fatalf("one present file should suffice, got %v", err)
	}
	if universities["University of Colombo"] != 500 {
		t.Errorf("universities = %v", universities)
	}

	_, _, err = db.GetTopApplicationAggregates(context.Background(), []string{"a.csv", "b.csv"}, 10)
	if !IsDatasetNotFound(err) {
		t.Errorf("all files missing should yield ErrDatasetNotFound, got %v", err)
	}
}
