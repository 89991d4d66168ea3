package resteasy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/jidn/resteasy/pkg/route"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Router is the slice of the host application the API registers views on.
// *http.ServeMux satisfies it, as does *Blueprint.
type Router interface {
	Handle(pattern string, handler http.Handler)
}

// Decorator wraps a fully shaped view, observing the rendered response.
// Decorators passed to the API apply to every resource it registers.
type Decorator func(http.Handler) http.Handler

// Registration is the full-options form of adding a resource. Endpoint
// defaults to the lowercased resource type name; Decorators wrap this
// registration only, inside any API-level decorators.
type Registration struct {
	Resource   Resource
	URLs       []string
	Endpoint   string
	Decorators []Decorator
}

// API binds resources to the host application's router. Built without an
// app it accumulates registrations until InitApp flushes them.
type API struct {
	app        Router
	blueprint  *Blueprint
	prefix     string
	decorators []Decorator
	responder  Responder
	errHandler ErrorHandler
	feed       chan error
	log        zerolog.Logger

	pending   []Registration
	endpoints map[string]reflect.Type
	rules     map[string][]route.Rule
	canonical map[reflect.Type]string
	patterns  map[string]bool
}

// NewAPI wraps the given router, which may be nil for deferred
// initialisation. Panics when handed a blueprint that is already registered,
// as that registration can never be completed.
func NewAPI(app Router) *API {
	a := &API{
		responder:  NewJSONResponder(),
		errHandler: DefaultErrorHandler,
		log:        zerolog.New(io.Discard),
		endpoints:  map[string]reflect.Type{},
		rules:      map[string][]route.Rule{},
		canonical:  map[reflect.Type]string{},
		patterns:   map[string]bool{},
	}
	if app != nil {
		if err := a.InitApp(app); err != nil {
			panic(err)
		}
	}
	return a
}

// WithPrefix prepends a rule prefix, e.g. /v1, to every registered url.
func (a *API) WithPrefix(prefix string) *API {
	a.prefix = prefix
	return a
}

func (a *API) WithDecorators(decorators ...Decorator) *API {
	a.decorators = append(a.decorators, decorators...)
	return a
}

func (a *API) WithResponder(responder Responder) *API {
	a.responder = responder
	return a
}

func (a *API) WithErrorHandler(handler ErrorHandler) *API {
	a.errHandler = handler
	return a
}

// WithErrorFeed redirects transport-level errors (failed writes, failed
// error handlers) to the given channel instead of the logger.
func (a *API) WithErrorFeed(feed chan error) *API {
	a.feed = feed
	return a
}

func (a *API) WithLogger(logger zerolog.Logger) *API {
	a.log = logger.With().Str("component", "resteasy").Logger()
	return a
}

// InitApp flushes registrations recorded before an app was available.
func (a *API) InitApp(app Router) error {
	if a.app != nil {
		return errors.New("api is already initialised with an app")
	}
	if bp, ok := app.(*Blueprint); ok {
		if bp.Registered() {
			return errors.New("blueprint is already registered with an app")
		}
		a.blueprint = bp
	}
	a.app = app

	for _, reg := range a.pending {
		if err := a.registerView(reg); err != nil {
			return err
		}
	}
	a.pending = nil
	return nil
}

// AddResource registers a resource under one or more url rules.
func (a *API) AddResource(rsrc Resource, urls ...string) error {
	return a.BindResource(Registration{Resource: rsrc, URLs: urls})
}

func (a *API) BindResource(reg Registration) error {
	if a.app == nil {
		a.pending = append(a.pending, reg)
		return nil
	}
	return a.registerView(reg)
}

// Endpoints returns the sorted endpoint names registered so far.
func (a *API) Endpoints() []string {
	endpoints := lo.Keys(a.endpoints)
	slices.Sort(endpoints)
	return endpoints
}

// URLFor builds the url of the first rule the resource was registered with.
// Params are key/value pairs; pairs not named by the rule become a query
// string.
func (a *API) URLFor(rsrc Resource, params ...string) (string, error) {
	if len(params)%2 != 0 {
		return "", errors.New("params must be key/value pairs")
	}

	t := resourceType(rsrc)
	endpoint, ok := a.canonical[t]
	if !ok {
		return "", fmt.Errorf("resource %s is not registered on this api", t.Name())
	}

	values := map[string]string{}
	for i := 0; i < len(params); i += 2 {
		values[params[i]] = params[i+1]
	}

	path, err := a.rules[endpoint][0].Build(values)
	if err != nil {
		return "", err
	}

	if a.blueprint != nil {
		return route.Join(a.blueprint.Prefix(), a.prefix, path), nil
	}
	return route.Join(a.prefix, path), nil
}

func (a *API) registerView(reg Registration) error {
	if len(reg.URLs) == 0 {
		return errors.New("at least one url rule is required")
	}

	t := resourceType(reg.Resource)
	endpoint := reg.Endpoint
	if endpoint == "" {
		if t.Name() == "" {
			return errors.New("cannot derive an endpoint name, set Registration.Endpoint")
		}
		endpoint = strings.ToLower(t.Name())
	}
	if a.blueprint != nil {
		endpoint = a.blueprint.Name() + "." + endpoint
	}

	if existing, ok := a.endpoints[endpoint]; ok && existing != t {
		return fmt.Errorf("endpoint %q is already set to %s", endpoint, existing.Name())
	}

	table := methodsOf(reg.Resource)
	if len(table) == 0 {
		return fmt.Errorf("resource %s implements no HTTP verb methods", t.Name())
	}

	var view http.Handler = a.makeView(endpoint, table)
	for _, decorate := range append(append([]Decorator{}, reg.Decorators...), a.decorators...) {
		view = decorate(view)
	}

	a.endpoints[endpoint] = t
	if _, ok := a.canonical[t]; !ok {
		a.canonical[t] = endpoint
	}

	for _, raw := range reg.URLs {
		rule, err := route.Parse(raw)
		if err != nil {
			return err
		}
		a.rules[endpoint] = append(a.rules[endpoint], rule)

		pattern := route.Join(a.prefix, raw)
		if a.patterns[pattern] {
			a.log.Warn().
				Str("endpoint", endpoint).
				Str("pattern", pattern).
				Msg("url rule already taken, keeping the first view")
			continue
		}
		a.patterns[pattern] = true
		a.app.Handle(pattern, view)

		a.log.Trace().
			Str("endpoint", endpoint).
			Str("pattern", pattern).
			Strs("allow", allowedMethods(table)).
			Msg("resource registered")
	}

	return nil
}

func (a *API) handleError(w http.ResponseWriter, r *http.Request, suggestedCode int, err error) {
	a.log.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("suggested", suggestedCode).
		Msg("request failed")

	if handleErr := a.errHandler(w, r, suggestedCode, err); handleErr != nil {
		a.feedError(handleErr)
	}
}

func (a *API) feedError(err error) {
	if a.feed != nil {
		a.feed <- err
		return
	}
	a.log.Error().Err(err).Msg("unhandled transport error")
}

func resourceType(rsrc Resource) reflect.Type {
	t := reflect.TypeOf(rsrc)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
