package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponse(rec, ContentType.Text, "hello there", http.StatusOK)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "hello there", rec.Body.String())
}

func TestWriteResponseBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseBytes(rec, ContentType.JSON, []byte(`{"ok":true}`), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestWriteResponseBytes_NoContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseBytes(rec, "", []byte("raw"), http.StatusOK)

	assert.Empty(t, rec.Header().Get("Content-Type"))
	assert.Equal(t, "raw", rec.Body.String())
}
