package resteasy

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jidn/resteasy/pkg/req"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Resource is any value exposing HTTP verb methods through the optional
// interfaces below. A resource with no verb methods cannot be registered.
type Resource interface{}

// MethodFunc is the signature of a single verb method. The returned value is
// shaped by the API's Responder; returning a value that implements
// http.Handler bypasses the responder entirely.
type MethodFunc func(*req.Ctx) (interface{}, error)

// MethodWrapper wraps a verb method before response shaping, so it observes
// the raw return value rather than the rendered response.
type MethodWrapper func(MethodFunc) MethodFunc

type Getter interface {
	Get(*req.Ctx) (interface{}, error)
}

type Poster interface {
	Post(*req.Ctx) (interface{}, error)
}

type Putter interface {
	Put(*req.Ctx) (interface{}, error)
}

type Patcher interface {
	Patch(*req.Ctx) (interface{}, error)
}

type Deleter interface {
	Delete(*req.Ctx) (interface{}, error)
}

type Header interface {
	Head(*req.Ctx) (interface{}, error)
}

type Optioner interface {
	Options(*req.Ctx) (interface{}, error)
}

// Wrapped lets a resource carry its own method wrappers, applied in order
// with the first wrapper innermost.
type Wrapped interface {
	Wrappers() []MethodWrapper
}

func methodsOf(rsrc Resource) map[string]MethodFunc {
	table := map[string]MethodFunc{}

	if h, ok := rsrc.(Getter); ok {
		table[http.MethodGet] = h.Get
	}
	if h, ok := rsrc.(Poster); ok {
		table[http.MethodPost] = h.Post
	}
	if h, ok := rsrc.(Putter); ok {
		table[http.MethodPut] = h.Put
	}
	if h, ok := rsrc.(Patcher); ok {
		table[http.MethodPatch] = h.Patch
	}
	if h, ok := rsrc.(Deleter); ok {
		table[http.MethodDelete] = h.Delete
	}
	if h, ok := rsrc.(Header); ok {
		table[http.MethodHead] = h.Head
	}
	if h, ok := rsrc.(Optioner); ok {
		table[http.MethodOptions] = h.Options
	}

	if wrapped, ok := rsrc.(Wrapped); ok {
		for verb := range table {
			fn := table[verb]
			for _, wrap := range wrapped.Wrappers() {
				fn = wrap(fn)
			}
			table[verb] = fn
		}
	}

	return table
}

func allowedMethods(table map[string]MethodFunc) []string {
	allow := lo.Keys(table)
	if _, ok := table[http.MethodGet]; ok && !slices.Contains(allow, http.MethodHead) {
		allow = append(allow, http.MethodHead)
	}
	if !slices.Contains(allow, http.MethodOptions) {
		allow = append(allow, http.MethodOptions)
	}
	slices.Sort(allow)
	return allow
}

// makeView builds the http.Handler dispatching requests for one resource.
// The verb lookup falls back from HEAD to GET, answers OPTIONS with the
// allowed verb set, and rejects everything else with 405.
func (a *API) makeView(endpoint string, table map[string]MethodFunc) http.Handler {
	allow := allowedMethods(table)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := req.NewCtx(r).SetEndpoint(endpoint)

		fn, ok := table[r.Method]
		if !ok && r.Method == http.MethodHead {
			fn, ok = table[http.MethodGet]
		}
		if !ok {
			w.Header().Set("Allow", strings.Join(allow, ", "))
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			a.handleError(w, r, http.StatusMethodNotAllowed,
				fmt.Errorf("method %s not allowed on endpoint %s", r.Method, endpoint))
			return
		}

		data, err := fn(c)
		if err != nil {
			suggested := lo.Ternary(
				r.Method == http.MethodGet || r.Method == http.MethodHead,
				http.StatusInternalServerError, http.StatusBadRequest)
			a.handleError(w, r, suggested, err)
			return
		}

		if passthrough, ok := data.(http.Handler); ok {
			passthrough.ServeHTTP(w, r)
			return
		}

		payload, err := a.responder.Render(c, data)
		if err != nil {
			a.handleError(w, r, http.StatusInternalServerError, err)
			return
		}

		for key, values := range payload.Header {
			for _, v := range values {
				w.Header().Add(key, v)
			}
		}
		if len(payload.Body) > 0 {
			w.Header().Set("Content-Length", strconv.Itoa(len(payload.Body)))
		}
		w.WriteHeader(payload.Status)
		if r.Method != http.MethodHead && len(payload.Body) > 0 {
			if _, err := w.Write(payload.Body); err != nil {
				a.feedError(err)
			}
		}
	})
}
