package prompt

import "strings"

// SplitRundown extracts the marker-delimited rundown from a raw model
// response. It returns the trimmed text between the rundown markers and the
// trimmed text after the closing marker. The model is not guaranteed to honor
// the marker contract: when either marker is missing, or the closing marker
// appears before the opening one, the rundown is empty and the whole input is
// returned as the report.
func SplitRundown(raw string) (rundown, report string) {
	return Split(raw, RundownStart, RundownEnd)
}

// Split is SplitRundown for arbitrary start/end markers.
func Split(raw, start, end string) (between, after string) {
	startIdx := strings.Index(raw, start)
	if startIdx < 0 {
		return "", raw
	}
	rest := raw[startIdx+len(start):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return "", raw
	}
	between = strings.TrimSpace(rest[:endIdx])
	after = strings.TrimSpace(rest[endIdx+len(end):])
	return between, after
}
