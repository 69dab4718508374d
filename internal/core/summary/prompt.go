package summary

import (
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/penwyp/go-dive-monitor/internal/core/model"
)

// DefaultPromptTemplate is a mustache template. It receives "date" and a
// "dives" list whose items carry site, max_depth, water_temp, visibility,
// current and waves.
const DefaultPromptTemplate = `Analyze these scuba dive logs for {{{date}}} and provide a professional, concise summary of the day's conditions, safety notes, and what divers likely experienced.
Use 2-3 short sentences.

Data:
{{#dives}}
Location: {{{site}}}, Depth: {{{max_depth}}}m, Temp: {{{water_temp}}}C, Vis: {{{visibility}}}, Conditions: {{{current}}} current, {{{waves}}} waves.
{{/dives}}`

// BuildPrompt renders tmpl for the dives of one date
func BuildPrompt(tmpl, date string, logs []model.DiveLog) (string, error) {
	if tmpl == "" {
		tmpl = DefaultPromptTemplate
	}

	dives := make([]map[string]interface{}, 0, len(logs))
	for _, l := range logs {
		dives = append(dives, map[string]interface{}{
			"site":       l.SiteName,
			"max_depth":  stripUnit(l.MaxDepth, "m"),
			"water_temp": stripUnit(l.WaterTemp, "c"),
			"visibility": l.Visibility,
			"current":    l.Current,
			"waves":      l.Waves,
			"guide":      l.Guide,
			"dive_time":  l.DiveTime,
		})
	}

	return mustache.Render(tmpl, map[string]interface{}{
		"date":  date,
		"count": len(logs),
		"dives": dives,
	})
}

// stripUnit drops a trailing unit so the template can append its own
func stripUnit(raw, unit string) string {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(strings.ToLower(s), unit) {
		s = strings.TrimSpace(s[:len(s)-len(unit)])
	}
	return strings.TrimSuffix(s, "°")
}
