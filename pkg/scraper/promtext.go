package scraper

import (
	"bufio"
	"strconv"
	"strings"
)

// MetricValue extracts a counter value from a Prometheus exposition
// text body. The first line whose metric name matches wins, any label
// block between braces is ignored. A nil result means the metric is
// absent from the body, which is not an error: the exporter may simply
// not have published it yet. Malformed sibling lines are skipped.
func MetricValue(body string, name string) *float64 {
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, name) {
			continue
		}
		rest := line[len(name):]
		if rest == "" {
			continue
		}
		// the name must end here, a longer metric name sharing the
		// prefix is not a match
		switch rest[0] {
		case '{':
			end := strings.Index(rest, "}")
			if end == -1 {
				continue
			}
			rest = rest[end+1:]
		case ' ', '\t':
		default:
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return nil
		}
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil
		}
		return &value
	}
	return nil
}
