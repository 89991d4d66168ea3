// Package render provides alternate Responder implementations beyond the
// default JSON one.
package render

import (
	"net/http"

	"github.com/MereleDulci/jsonapi"
	"github.com/jidn/resteasy"
	"github.com/jidn/resteasy/pkg/req"
)

// JSONAPIResponder shapes verb method return values into JSON:API documents.
// Returned values need jsonapi struct tags; slices produce collection
// documents.
type JSONAPIResponder struct{}

func NewJSONAPIResponder() *JSONAPIResponder {
	return &JSONAPIResponder{}
}

func (jr *JSONAPIResponder) Render(c *req.Ctx, data interface{}) (*resteasy.Payload, error) {
	status := c.Status()
	if status == 0 {
		if data == nil {
			return nil, resteasy.ErrNoResponse
		}
		status = http.StatusOK
	}

	var body []byte
	if data != nil {
		var err error
		body, err = jsonapi.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	header := http.Header{}
	header.Set("Content-Type", jsonapi.MediaType)
	for key, values := range c.RespHeader() {
		header[key] = values
	}

	return &resteasy.Payload{Body: body, Status: status, Header: header}, nil
}
