package route

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Rule is a single URL rule as registered on an API, before any prefixing.
// Parameter segments use the net/http pattern syntax, e.g. /tasks/{id} or
// /files/{path...}.
type Rule struct {
	Raw    string
	Params []string
}

func Parse(raw string) (Rule, error) {
	if !strings.HasPrefix(raw, "/") {
		return Rule{}, fmt.Errorf("url rule %q must start with a slash", raw)
	}

	rule := Rule{Raw: raw}
	for _, segment := range strings.Split(raw, "/") {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(segment, "{"), "}")
		name = strings.TrimSuffix(name, "...")
		if name == "" {
			return Rule{}, fmt.Errorf("url rule %q has a parameter with no name", raw)
		}
		if slices.Contains(rule.Params, name) {
			return Rule{}, fmt.Errorf("url rule %q repeats parameter %q", raw, name)
		}
		rule.Params = append(rule.Params, name)
	}

	return rule, nil
}

// Join concatenates the non-empty prefix parts into a single rule. Parts are
// expected to carry their own leading slashes, e.g. Join("/v1", "/tasks").
func Join(parts ...string) string {
	return strings.Join(lo.Filter(parts, func(p string, _ int) bool {
		return p != ""
	}), "")
}

// Build substitutes params into the rule's parameter segments. Params not
// named by the rule are appended as a query string.
func (r Rule) Build(params map[string]string) (string, error) {
	out := r.Raw
	extra := url.Values{}

	for name, value := range params {
		if !slices.Contains(r.Params, name) {
			extra.Set(name, value)
			continue
		}
		wildcard := "{" + name + "...}"
		if strings.Contains(out, wildcard) {
			out = strings.Replace(out, wildcard, value, 1)
			continue
		}
		out = strings.Replace(out, "{"+name+"}", url.PathEscape(value), 1)
	}

	for _, name := range r.Params {
		if strings.Contains(out, "{"+name+"}") || strings.Contains(out, "{"+name+"...}") {
			return "", fmt.Errorf("missing value for url parameter %q", name)
		}
	}

	if len(extra) > 0 {
		out += "?" + extra.Encode()
	}
	return out, nil
}
