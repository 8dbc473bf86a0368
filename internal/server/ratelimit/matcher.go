package ratelimit

import (
	"strings"
	"time"
)

// Rule throttles one method on a path. A Path ending in "/" matches every path below it,
// so "/semesters/" covers "/semesters/{id}".
type Rule struct {
	Method string
	Path   string
	Limit  int           // requests per Window; 0 means unthrottled
	Window time.Duration
	Burst  int // bucket capacity, Limit when 0
}

func (r Rule) prefix() bool {
	return strings.HasSuffix(r.Path, "/")
}

// key groups every path a prefix rule matches into one bucket.
func (r Rule) key(path string) string {
	if r.Path == "" {
		return path
	}
	return r.Path
}

// Match finds the rule for a request. Exact paths win over prefixes. GET /health is never
// throttled.
func Match(path, method string, rules []Rule) (Rule, bool) {
	if method == "GET" && path == "/health" {
		return Rule{Method: method, Path: path}, true
	}

	for _, r := range rules {
		if r.Method == method && !r.prefix() && r.Path == path {
			return r, true
		}
	}
	for _, r := range rules {
		if r.Method == method && r.prefix() && strings.HasPrefix(path, r.Path) {
			return r, true
		}
	}
	return Rule{}, false
}
