package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	InitLogger("loud", "json", &buf)
	defer logrus.SetOutput(os.Stderr)

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.Contains(t, buf.String(), "Logger initialized")
}

func TestAccessLog_RecordsRouteTemplate(t *testing.T) {
	var buf bytes.Buffer
	InitLogger("info", "json", &buf)

	router := mux.NewRouter()
	router.Use(AccessLog)
	router.HandleFunc("/posts/{id:[0-9]+}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	buf.Reset()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts/7/", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/posts/{id:[0-9]+}/", entry["route"])
	assert.Equal(t, "/posts/7/", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
}
