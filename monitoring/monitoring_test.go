package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentHandler_ObservesRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(InstrumentHandler)
	router.HandleFunc("/group/{slug}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.CollectAndCount(RequestDuration)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/group/cats/", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/group/dogs/", nil))

	// both requests share one label set
	assert.Equal(t, before+1, testutil.CollectAndCount(RequestDuration))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(Follows.WithLabelValues("follow"))
	Follows.WithLabelValues("follow").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Follows.WithLabelValues("follow")))
}
