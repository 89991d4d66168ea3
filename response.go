package resteasy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jidn/resteasy/pkg/req"
)

// ErrNoResponse indicates a verb method returned nil without staging a
// response status.
var ErrNoResponse = errors.New("resource method returned no response")

// Payload is a rendered response ready to be written.
type Payload struct {
	Body   []byte
	Status int
	Header http.Header
}

// Responder turns the value returned by a verb method into a Payload.
// Implementations other than JSON can be plugged in with API.WithResponder.
type Responder interface {
	Render(c *req.Ctx, data interface{}) (*Payload, error)
}

type EncodeFunc func(v interface{}) ([]byte, error)

// JSONResponder is the default Responder. It encodes the returned value with
// encoding/json and applies the status and headers staged on the Ctx, with
// the status defaulting to 200.
type JSONResponder struct {
	encode      EncodeFunc
	contentType string
}

func NewJSONResponder() *JSONResponder {
	return &JSONResponder{
		encode:      json.Marshal,
		contentType: "application/json",
	}
}

func (jr *JSONResponder) WithEncoder(encode EncodeFunc) *JSONResponder {
	jr.encode = encode
	return jr
}

func (jr *JSONResponder) WithIndent(indent string) *JSONResponder {
	jr.encode = func(v interface{}) ([]byte, error) {
		return json.MarshalIndent(v, "", indent)
	}
	return jr
}

func (jr *JSONResponder) Render(c *req.Ctx, data interface{}) (*Payload, error) {
	status := c.Status()
	if status == 0 {
		if data == nil {
			return nil, ErrNoResponse
		}
		status = http.StatusOK
	}

	var body []byte
	if data != nil {
		var err error
		body, err = jr.encode(data)
		if err != nil {
			return nil, err
		}
	}

	header := http.Header{}
	header.Set("Content-Type", jr.contentType)
	for key, values := range c.RespHeader() {
		header[key] = values
	}

	return &Payload{Body: body, Status: status, Header: header}, nil
}

// Pack writes data as a JSON response with the given status. Useful inside
// custom error handlers and middleware that need to emit an API-shaped body.
func Pack(w http.ResponseWriter, data interface{}, status int) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(status)
	_, err = w.Write(buf)
	return err
}

// ErrorHandler renders a failed request. The suggested code reflects where
// the failure happened (reads suggest 500, writes 400, dispatch 405); the
// handler is free to override it. A non-nil return value is forwarded to the
// API's error feed.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, suggestedCode int, err error) error

func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, suggestedCode int, err error) error {
	return Pack(w, map[string]interface{}{"message": err.Error()}, suggestedCode)
}
