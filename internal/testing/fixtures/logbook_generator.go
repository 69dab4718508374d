package fixtures

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

// Header is the header row of the published logbook sheet
var Header = []string{
	"Timestamp", "Date", "Dive Site", "Dive Time (min)", "Max Depth (m)", "Avg Depth (m)",
	"Water Temp (°C)", "Visibility (m)", "Current", "Waves", "Guide",
}

var sites = []string{"Blue Corner", "German Channel", "Ulong Wall", "Chandelier Cave", "Big Drop Off"}

// SampleDives returns a small logbook spread over three dates, oldest first
func SampleDives() []model.DiveLog {
	return []model.DiveLog{
		{Timestamp: "3/1/2024 9:12:00", Date: "2024-03-01", SiteName: "Ulong Wall", DiveTime: "55", MaxDepth: "30", AvgDepth: "20", WaterTemp: "26", Visibility: "25", Current: "Mild", Waves: "Calm", Guide: "Ben"},
		{Timestamp: "3/2/2024 8:40:00", Date: "2024-03-02", SiteName: "Blue Corner", DiveTime: "48", MaxDepth: "28", AvgDepth: "18", WaterTemp: "27", Visibility: "30", Current: "Strong", Waves: "Small", Guide: "Ana"},
		{Timestamp: "3/2/2024 13:05:00", Date: "2024-03-02", SiteName: "German Channel", DiveTime: "60", MaxDepth: "22", AvgDepth: "14", WaterTemp: "28", Visibility: "20", Current: "None", Waves: "Calm"},
		{Timestamp: "3/4/2024 9:30:00", Date: "2024-03-04", SiteName: "Chandelier Cave", DiveTime: "45", MaxDepth: "12m", AvgDepth: "8m", WaterTemp: "29", Visibility: "15", Current: "None", Waves: "Calm", Guide: "Ana"},
	}
}

// LogbookGenerator writes CSV exports of the logbook sheet for tests
type LogbookGenerator struct {
	baseDir string
}

// NewLogbookGenerator creates a generator writing below baseDir
func NewLogbookGenerator(baseDir string) *LogbookGenerator {
	return &LogbookGenerator{baseDir: baseDir}
}

// BaseDir returns the output directory
func (g *LogbookGenerator) BaseDir() string {
	return g.baseDir
}

// WriteLogbook writes dives under a header row and returns the file path
func (g *LogbookGenerator) WriteLogbook(name string, dives []model.DiveLog) (string, error) {
	return g.WriteRaw(name, CSV(dives))
}

// WriteHeaderOnly writes an export that has no dives
func (g *LogbookGenerator) WriteHeaderOnly(name string) (string, error) {
	return g.WriteRaw(name, CSV(nil))
}

// WriteRaw writes content verbatim, for malformed exports
func (g *LogbookGenerator) WriteRaw(name, content string) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(g.baseDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateLargeLogbook writes days consecutive dive days starting at start,
// with perDay dives on each, and returns the path and the dives written.
func (g *LogbookGenerator) GenerateLargeLogbook(name string, start time.Time, days, perDay int) (string, []model.DiveLog, error) {
	dives := make([]model.DiveLog, 0, days*perDay)
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		for i := 0; i < perDay; i++ {
			at := day.Add(time.Duration(8+i*3) * time.Hour)
			dives = append(dives, model.DiveLog{
				Timestamp:  at.Format("1/2/2006 15:04:05"),
				Date:       day.Format("2006-01-02"),
				SiteName:   sites[(d+i)%len(sites)],
				DiveTime:   fmt.Sprintf("%d", 40+(d+i)%25),
				MaxDepth:   fmt.Sprintf("%d", 12+(d*7+i*5)%28),
				AvgDepth:   fmt.Sprintf("%d", 8+(d*3+i*2)%12),
				WaterTemp:  fmt.Sprintf("%d", 25+(d+i)%5),
				Visibility: fmt.Sprintf("%d", 10+(d*i)%25),
				Current:    []string{"None", "Mild", "Strong"}[(d+i)%3],
				Waves:      []string{"Calm", "Small"}[i%2],
				Guide:      []string{"Ana", "Ben", ""}[d%3],
			})
		}
	}

	path, err := g.WriteLogbook(name, dives)
	return path, dives, err
}

// CSV renders dives as the sheet export would
func CSV(dives []model.DiveLog) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(Header)
	for _, d := range dives {
		_ = w.Write([]string{
			d.Timestamp, d.Date, d.SiteName, d.DiveTime, d.MaxDepth, d.AvgDepth,
			d.WaterTemp, d.Visibility, d.Current, d.Waves, d.Guide,
		})
	}
	w.Flush()
	return b.String()
}
