package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSetsValidators(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, []byte(`{"year":2024}`), `W/"abc"`, time.Hour, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `W/"abc"`, w.Header().Get("ETag"))
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "public, max-age=3600, stale-while-revalidate=1800", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"year":2024}`, w.Body.String())
}

func TestWriteErrorDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Upstream fetch failed", "404 from nflverse")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, noStore, w.Header().Get("Cache-Control"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorBody{Code: "UPSTREAM_ERROR", Message: "Upstream fetch failed", Detail: "404 from nflverse"}, body.Error)
}

func TestWriteJSONObjectUnencodable(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONObject(w, http.StatusOK, map[string]any{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL")
}
