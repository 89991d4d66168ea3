package resteasy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlueprint_Register(t *testing.T) {
	t.Parallel()

	t.Run("prepends the blueprint prefix to recorded rules", func(t *testing.T) {
		bp := NewBlueprint("bp").WithPrefix("/bp")
		api := NewAPI(bp).WithPrefix("/v1")
		require.NoError(t, api.AddResource(&helloWorld{}, "/api"))

		mux := http.NewServeMux()
		require.NoError(t, bp.Register(mux))

		rec := serve(mux, http.MethodGet, "/bp/v1/api")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"hello": "World!"}`, rec.Body.String())
	})

	t.Run("can only be registered once", func(t *testing.T) {
		bp := NewBlueprint("bp")
		require.NoError(t, bp.Register(http.NewServeMux()))

		assert.ErrorContains(t, bp.Register(http.NewServeMux()), "can only be registered once")
	})

	t.Run("qualifies endpoint names with the blueprint name", func(t *testing.T) {
		bp := NewBlueprint("bp")
		api := NewAPI(bp)
		require.NoError(t, api.AddResource(&helloWorld{}, "/api"))

		assert.Equal(t, []string{"bp.helloworld"}, api.Endpoints())
	})

	t.Run("url building includes the blueprint prefix", func(t *testing.T) {
		bp := NewBlueprint("bp").WithPrefix("/bp")
		api := NewAPI(bp).WithPrefix("/v1")
		require.NoError(t, api.AddResource(&greeting{}, "/greeting/{idx}"))

		url, err := api.URLFor(&greeting{}, "idx", "5")
		require.NoError(t, err)
		assert.Equal(t, "/bp/v1/greeting/5", url)
	})

	t.Run("refuses an api around a registered blueprint", func(t *testing.T) {
		bp := NewBlueprint("bp")
		require.NoError(t, bp.Register(http.NewServeMux()))

		assert.Panics(t, func() { NewAPI(bp) })
	})

	t.Run("refuses new rules after registration", func(t *testing.T) {
		bp := NewBlueprint("bp")
		require.NoError(t, bp.Register(http.NewServeMux()))

		assert.Panics(t, func() {
			bp.Handle("/late", http.NotFoundHandler())
		})
	})

	t.Run("works with a deferred api as well", func(t *testing.T) {
		api := NewAPI(nil)
		require.NoError(t, api.AddResource(&helloWorld{}, "/api"))

		bp := NewBlueprint("bp").WithPrefix("/bp")
		require.NoError(t, api.InitApp(bp))

		mux := http.NewServeMux()
		require.NoError(t, bp.Register(mux))

		assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/bp/api").Code)
	})
}
