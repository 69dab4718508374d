package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-dive-monitor/internal/presentation/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logbookCSV = `Timestamp,Date,Site Name,Dive Time (min),Max Depth,Avg Depth,Water Temp,Visibility,Current,Waves,Guide
3/1/2024 9:00:00,2024-03-01,Ulong Wall,55,30,20,26,25,Mild,Calm,Ben
3/2/2024 9:00:00,2024-03-02,Blue Corner,48,28,18,27,30,Strong,Small,Ana
3/2/2024 13:00:00,2024-03-02,German Channel,60,22,14,28,20,None,Calm,
`

type testEnv struct {
	dir     string
	csvPath string
	cfgPath string
}

func newTestEnv(t *testing.T, csv, toml string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:     dir,
		csvPath: filepath.Join(dir, "logbook.csv"),
		cfgPath: filepath.Join(dir, "config.toml"),
	}
	require.NoError(t, os.WriteFile(env.csvPath, []byte(csv), 0o644))
	require.NoError(t, os.WriteFile(env.cfgPath, []byte(toml), 0o644))
	return env
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config", e.cfgPath,
		"--log-file", filepath.Join(e.dir, "logs", "app.log"),
		"--summary-provider", "none",
	}
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReport_JSONSelectsNewestDate(t *testing.T) {
	env := newTestEnv(t, logbookCSV, "")
	out, err := env.run(t, "--file", env.csvPath, "--format", "json")
	require.NoError(t, err)

	var report formatter.Report
	require.NoError(t, sonic.Unmarshal([]byte(out), &report))
	assert.Equal(t, "2024-03-02", report.Date)
	assert.Equal(t, []string{"2024-03-02", "2024-03-01"}, report.Dates)
	assert.Equal(t, 3, report.TotalDives)
	assert.Equal(t, 2, report.Stats.TotalDives)
	assert.Equal(t, 28.0, report.Stats.MaxDepth)
	assert.Len(t, report.Dives, 2)
	assert.Empty(t, report.Summary, "summaries are disabled")
	assert.Equal(t, "file:"+env.csvPath, report.Source)
}

func TestReport_ExplicitDate(t *testing.T) {
	env := newTestEnv(t, logbookCSV, "")
	out, err := env.run(t, "--file", env.csvPath, "--format", "json", "--date", "2024-03-01")
	require.NoError(t, err)

	var report formatter.Report
	require.NoError(t, sonic.Unmarshal([]byte(out), &report))
	assert.Equal(t, "2024-03-01", report.Date)
	require.Len(t, report.Dives, 1)
	assert.Equal(t, "Ulong Wall", report.Dives[0].SiteName)
}

func TestReport_UnknownDate(t *testing.T) {
	env := newTestEnv(t, logbookCSV, "")
	_, err := env.run(t, "--file", env.csvPath, "--date", "1999-12-31")
	require.Error(t, err)
	assert.Equal(t, "no dives logged on 1999-12-31", err.Error())
}

func TestReport_Failures(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		file func(env testEnv) string
		want string
	}{
		{
			name: "header only",
			csv:  strings.SplitN(logbookCSV, "\n", 2)[0] + "\n",
			file: func(env testEnv) string { return env.csvPath },
			want: "No dive logs found in the sheet.",
		},
		{
			name: "missing file",
			csv:  logbookCSV,
			file: func(env testEnv) string { return filepath.Join(env.dir, "nope.csv") },
			want: "Sheet not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.csv, "")
			_, err := env.run(t, "--file", tt.file(env))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestReport_TableAndSummaryFormats(t *testing.T) {
	env := newTestEnv(t, logbookCSV, "")

	out, err := env.run(t, "--file", env.csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Blue Corner")
	assert.Contains(t, out, "German Channel")
	assert.NotContains(t, out, "Ulong Wall")

	out, err = env.run(t, "--file", env.csvPath, "-o", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Date Range: 2024-03-01 to 2024-03-02")
	assert.Contains(t, out, "Total Dives: 3")
}

func TestReport_RejectsUnknownFormat(t *testing.T) {
	env := newTestEnv(t, logbookCSV, "")
	_, err := env.run(t, "--file", env.csvPath, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestReport_FileFromConfig(t *testing.T) {
	env := newTestEnv(t, logbookCSV, "")
	toml := "[sheet]\nfile = \"" + env.csvPath + "\"\n"
	require.NoError(t, os.WriteFile(env.cfgPath, []byte(toml), 0o644))

	out, err := env.run(t, "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3, "header plus the two dives of the newest date")
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "top")
	assert.Contains(t, names, "serve")

	interval := cmd.PersistentFlags().Lookup("interval")
	require.NotNil(t, interval)
	assert.Equal(t, (60 * time.Second).String(), interval.DefValue)
}
