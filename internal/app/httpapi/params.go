package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// intParam reads a required integer query parameter.
func intParam(query url.Values, name string) (int, error) {
	values, ok := query[name]
	if !ok || len(values) == 0 {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	raw := strings.TrimSpace(values[0])
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %q is not an integer", name, raw)
	}
	return n, nil
}

// intArrayParam reads a required integer array. Values may be repeated
// (a=1&a=2), comma separated (a=1,2), or both. Empty elements are skipped,
// so a present but empty parameter yields an empty array.
func intArrayParam(query url.Values, name string, maxLen int) ([]int, error) {
	values, ok := query[name]
	if !ok {
		return nil, fmt.Errorf("missing required parameter %q", name)
	}

	out := make([]int, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %q is not an integer", name, part)
			}
			out = append(out, n)
			if len(out) > maxLen {
				return nil, fmt.Errorf("parameter %q exceeds %d elements", name, maxLen)
			}
		}
	}
	return out, nil
}
