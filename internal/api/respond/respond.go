// Package respond writes the API's HTTP bodies: cached season payloads with
// validators, uncached status objects, and the error envelope.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Cache-Control values for bodies that must not be reused.
const (
	noCache = "no-cache"
	noStore = "no-cache, no-store, must-revalidate"
)

// ErrorResponse is the envelope every failed request returns:
// {"error":{"code":"INVALID_YEAR","message":"...","detail":"..."}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable machine code, a readable message and an
// optional detail such as the failing upstream URL.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// CacheControl is the header value for a payload that stays fresh for ttl.
// Clients may serve it stale for another half ttl while revalidating.
func CacheControl(ttl time.Duration) string {
	fresh := int(ttl / time.Second)
	return "public, max-age=" + strconv.Itoa(fresh) + ", stale-while-revalidate=" + strconv.Itoa(fresh/2)
}

// WriteJSON sends an already encoded payload. hit says whether the bytes
// came from the response cache and is reported in X-Cache.
func WriteJSON(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, hit bool) {
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Vary", "Accept-Encoding")
	h.Set("X-Cache", cacheResult(hit))
	write(w, http.StatusOK, CacheControl(ttl), data)
}

func cacheResult(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// WriteNotModified answers a conditional request whose validator matched.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError sends the error envelope without detail.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorDetail(w, status, code, message, "")
}

// WriteErrorDetail sends the error envelope. Errors are never cached.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	body, _ := json.Marshal(ErrorResponse{Error: ErrorBody{Code: code, Message: message, Detail: detail}})
	write(w, status, noStore, body)
}

// WriteJSONObject encodes v for endpoints that bypass the response cache:
// health probes and cache control.
func WriteJSONObject(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "Failed to encode response")
		return
	}
	write(w, status, noCache, body)
}

func write(w http.ResponseWriter, status int, cacheControl string, body []byte) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", cacheControl)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
