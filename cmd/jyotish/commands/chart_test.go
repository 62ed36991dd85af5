package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDasaDay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1996-10-15T17:55:00+05:30", "1996-10-15"},
		{"2031-03-02T00:00:00Z", "2031-03-02"},
		{"not a timestamp", "not a timestamp"},
	}
	for _, tc := range cases {
		if got := dasaDay(tc.in); got != tc.want {
			t.Errorf("dasaDay(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Runs the one-shot chart command end to end with coordinate input, so
// no network is touched, and checks the SVG output file.
func TestRunChartWritesSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.svg")

	chartName = "Test Native"
	chartDate = "1996-10-15"
	chartTime = "17:55"
	chartPlace = "13.0827,80.2707"
	chartTZ = "Asia/Kolkata"
	chartStyle = "south"
	chartSVG = out
	t.Cleanup(func() {
		chartName, chartDate, chartTime, chartPlace = "", "", "", ""
		chartTZ, chartStyle, chartSVG = "", "", ""
	})

	if err := runChart(ChartCmd, nil); err != nil {
		t.Fatalf("runChart failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("SVG not written: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output file is not SVG")
	}
}

func TestRunChartRejectsBadDate(t *testing.T) {
	chartDate = "15-10-1996"
	chartTime = "17:55"
	chartPlace = "13.0827,80.2707"
	t.Cleanup(func() {
		chartDate, chartTime, chartPlace = "", "", ""
	})

	if err := runChart(ChartCmd, nil); err == nil {
		t.Error("expected an error for a malformed date")
	}
}
