package req

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
)

type Locals struct {
	values map[string]interface{}
}

func (l *Locals) UserValue(key string) interface{} {
	v, ok := l.values[key]
	if !ok {
		return nil
	}
	return v
}

func (l *Locals) SetUserValue(key string, value interface{}) {
	l.values[key] = value
}

// Ctx carries the state of a single dispatched request: the inbound
// *http.Request, the endpoint it resolved to, request-scoped locals, and the
// response status and headers staged by the resource method.
type Ctx struct {
	request    *http.Request
	endpoint   string
	locals     *Locals
	status     int
	respHeader http.Header
}

func NewCtx(r *http.Request) *Ctx {
	return &Ctx{
		request:    r,
		locals:     &Locals{values: map[string]interface{}{}},
		respHeader: http.Header{},
	}
}

func (c *Ctx) Request() *http.Request {
	return c.request
}

func (c *Ctx) Method() string {
	return c.request.Method
}

func (c *Ctx) UserContext() context.Context {
	return c.request.Context()
}

func (c *Ctx) Endpoint() string {
	return c.endpoint
}

func (c *Ctx) SetEndpoint(endpoint string) *Ctx {
	c.endpoint = endpoint
	return c
}

// Param returns the value of a url rule parameter, e.g. "id" for /tasks/{id}.
func (c *Ctx) Param(name string) string {
	return c.request.PathValue(name)
}

func (c *Ctx) Locals(key string, values ...interface{}) interface{} {
	if len(values) == 0 {
		return c.locals.UserValue(key)
	}
	c.locals.SetUserValue(key, values[0])
	return values[0]
}

// Status returns the staged response status. Zero means not staged and the
// responder will fall back to 200.
func (c *Ctx) Status() int {
	return c.status
}

func (c *Ctx) SetStatus(status int) *Ctx {
	c.status = status
	return c
}

// RespHeader is the set of headers staged for the response. The responder
// merges them over its own defaults, so staging Content-Type overrides it.
func (c *Ctx) RespHeader() http.Header {
	return c.respHeader
}

func (c *Ctx) QueryValue(key string) string {
	return c.request.URL.Query().Get(key)
}

func (c *Ctx) QueryList(key string) []string {
	q := c.request.URL.Query()
	if q.Has(key) {
		return strings.Split(q.Get(key), ",")
	}
	return []string{}
}

func (c *Ctx) QueryInt64(key string) int64 {
	q := c.request.URL.Query()
	if q.Has(key) {
		val, err := strconv.Atoi(q.Get(key))
		if err != nil {
			return 0
		}
		return int64(val)
	}
	return 0
}

func (c *Ctx) Body() ([]byte, error) {
	return io.ReadAll(c.request.Body)
}

// Decode reads the request body as JSON into v. Anything richer than plain
// JSON decoding is left to the packages the caller composes in.
func (c *Ctx) Decode(v interface{}) error {
	raw, err := c.Body()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
