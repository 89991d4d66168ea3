package resteasy

import (
	"fmt"
	"net/http"

	"github.com/jidn/resteasy/pkg/route"
)

type blueprintRule struct {
	pattern string
	handler http.Handler
}

// Blueprint is a named group of url rules registered onto an application
// later, and at most once. Wrapping an API around a blueprint defers the
// final url composition until the blueprint itself is registered, when the
// blueprint prefix is prepended to every recorded rule.
type Blueprint struct {
	name       string
	prefix     string
	registered bool
	rules      []blueprintRule
}

func NewBlueprint(name string) *Blueprint {
	return &Blueprint{name: name}
}

func (b *Blueprint) WithPrefix(prefix string) *Blueprint {
	b.prefix = prefix
	return b
}

func (b *Blueprint) Name() string {
	return b.name
}

func (b *Blueprint) Prefix() string {
	return b.prefix
}

func (b *Blueprint) Registered() bool {
	return b.registered
}

// Handle records a rule for later registration. Implements Router, so an
// API can bind resources to a blueprint directly.
func (b *Blueprint) Handle(pattern string, handler http.Handler) {
	if b.registered {
		panic(fmt.Errorf("blueprint %q is already registered with an app", b.name))
	}
	b.rules = append(b.rules, blueprintRule{pattern: pattern, handler: handler})
}

// Register binds the recorded rules onto the app under the blueprint prefix.
func (b *Blueprint) Register(app Router) error {
	if b.registered {
		return fmt.Errorf("blueprint %q can only be registered once", b.name)
	}
	b.registered = true

	for _, rule := range b.rules {
		app.Handle(route.Join(b.prefix, rule.pattern), rule.handler)
	}
	return nil
}
