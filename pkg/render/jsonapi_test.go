package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MereleDulci/jsonapi"
	"github.com/jidn/resteasy"
	"github.com/jidn/resteasy/pkg/req"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type task struct {
	ID   string `jsonapi:"primary,tasks"`
	Name string `jsonapi:"attr,name"`
}

func TestJSONAPIResponder_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders a jsonapi document", func(t *testing.T) {
		c := req.NewCtx(httptest.NewRequest(http.MethodGet, "/tasks/1", nil))

		payload, err := NewJSONAPIResponder().Render(c, &task{ID: "1", Name: "first"})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, payload.Status)
		assert.Equal(t, jsonapi.MediaType, payload.Header.Get("Content-Type"))
		assert.Contains(t, string(payload.Body), `"type":"tasks"`)
		assert.Contains(t, string(payload.Body), `"id":"1"`)
	})

	t.Run("applies the staged status", func(t *testing.T) {
		c := req.NewCtx(httptest.NewRequest(http.MethodPost, "/tasks", nil))
		c.SetStatus(http.StatusCreated)

		payload, err := NewJSONAPIResponder().Render(c, &task{ID: "2", Name: "second"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, payload.Status)
	})

	t.Run("nil data without a status is an error", func(t *testing.T) {
		c := req.NewCtx(httptest.NewRequest(http.MethodGet, "/tasks", nil))

		_, err := NewJSONAPIResponder().Render(c, nil)
		assert.ErrorIs(t, err, resteasy.ErrNoResponse)
	})
}
