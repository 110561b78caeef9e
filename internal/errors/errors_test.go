package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := ExternalServiceError("embedding", stderrors.New("dial tcp: refused"))
	wrapped := Wrap(base, "evaluate response")

	assert.Equal(t, CodeExternalService, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "evaluate response")
	assert.Contains(t, wrapped.Error(), "dial tcp: refused")
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapThroughFmtErrorf(t *testing.T) {
	inner := NotFound("question")
	outer := fmt.Errorf("lookup: %w", inner)

	assert.Equal(t, CodeNotFound, GetCode(outer))
	assert.Equal(t, CodeNotFound, GetCode(Wrap(outer, "handler")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeInternalError, GetCode(Wrap(stderrors.New("plain"), "ctx")))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidInput("bad"), http.StatusBadRequest},
		{WithCode(CodeValidationError, stderrors.New("x")), http.StatusBadRequest},
		{NotFound("question"), http.StatusNotFound},
		{ExternalServiceError("sheets", nil), http.StatusBadGateway},
		{Unavailable("question bank"), http.StatusServiceUnavailable},
		{stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}
