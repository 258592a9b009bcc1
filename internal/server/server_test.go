package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerer struct {
	calls    int
	question string
	answer   string
	err      error
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) (string, error) {
	f.calls++
	f.question = question
	return f.answer, f.err
}

func postForm(t *testing.T, e *echo.Echo, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/get", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestChat_ReturnsCompletionVerbatim(t *testing.T) {
	svc := &fakeAnswerer{answer: "Drink fluids and rest."}
	e := New(svc).Routes(echo.New())

	rec := postForm(t, e, url.Values{"msg": {"how do I treat a cold?"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Drink fluids and rest.", rec.Body.String())
	assert.Equal(t, "how do I treat a cold?", svc.question)
}

func TestChat_MissingMsgIsClientError(t *testing.T) {
	svc := &fakeAnswerer{answer: "never"}
	e := New(svc).Routes(echo.New())

	rec := postForm(t, e, url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls, "pipeline must not run without a message")

	rec = postForm(t, e, url.Values{"msg": {"   "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestChat_OversizedMsgIsClientError(t *testing.T) {
	svc := &fakeAnswerer{}
	e := New(svc).Routes(echo.New())

	rec := postForm(t, e, url.Values{"msg": {strings.Repeat("a", 1001)}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestChat_PipelineFailureIsGeneric(t *testing.T) {
	svc := &fakeAnswerer{err: errors.New("qdrant unreachable")}
	e := New(svc).Routes(echo.New())

	rec := postForm(t, e, url.Values{"msg": {"anything"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "qdrant", "internal cause must not leak to the caller")
}

func TestChat_GetMethodAlsoAccepted(t *testing.T) {
	svc := &fakeAnswerer{answer: "ok"}
	e := New(svc).Routes(echo.New())

	req := httptest.NewRequest(http.MethodGet, "/get?msg=hello", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestIndex_ServesChatPage(t *testing.T) {
	e := New(&fakeAnswerer{}).Routes(echo.New())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Medical Chatbot")
}

func TestHealth(t *testing.T) {
	e := New(&fakeAnswerer{}).Routes(echo.New())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
