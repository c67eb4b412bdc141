package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/pipelinedeck/internal/domain"
)

// counterLabels are the stable display labels, one per counter.
var counterLabels = map[domain.CounterName]string{
	domain.CounterBuilds:      "Builds",
	domain.CounterScans:       "Scans",
	domain.CounterDeployments: "Deployments",
}

// renderCounters draws the three counters on one line.
func renderCounters(c domain.Counters) string {
	cells := make([]string, 0, len(domain.CounterNames))
	for _, name := range domain.CounterNames {
		cells = append(cells, fmt.Sprintf("%s %s",
			labelStyle.Render(counterLabels[name]),
			valueStyle.Render(fmt.Sprintf("%d", c.Get(name)))))
	}
	return " " + strings.Join(cells, "   ") + "\n"
}

// truncate shortens s to at most max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
