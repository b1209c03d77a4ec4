package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Bounds on query parameters.
const (
	minSeason        = 1920
	maxDataLimit     = 10000
	defaultDataLimit = 100
)

type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string { return e.message }

// queryInt reads an integer parameter in [lo, hi], returning def when absent.
func queryInt(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{"INVALID_" + strings.ToUpper(name), fmt.Sprintf("%s must be an integer", name)}
	}
	if n < lo || n > hi {
		return 0, &paramError{"INVALID_" + strings.ToUpper(name), fmt.Sprintf("%s must be between %d and %d", name, lo, hi)}
	}
	return n, nil
}

// queryYear reads the "year" parameter. Zero means the current season.
func queryYear(r *http.Request) (int, error) {
	return queryInt(r, "year", 0, minSeason, time.Now().Year()+1)
}

// queryYears parses a comma separated year list.
func queryYears(r *http.Request) ([]int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("years"))
	if raw == "" {
		return nil, nil
	}
	var years []int
	for _, part := range strings.Split(raw, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &paramError{"INVALID_YEARS", "Invalid years format. Use comma-separated integers."}
		}
		years = append(years, y)
	}
	return years, nil
}

// queryList splits a comma separated parameter, dropping blanks.
func queryList(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
