package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthFailureKindsStayDistinct(t *testing.T) {
	unauthenticated := ToDomainError(NewUnauthenticated("missing bearer token"))
	forbidden := ToDomainError(NewForbidden("insufficient role"))

	assert.Equal(t, http.StatusUnauthorized, unauthenticated.HTTPStatus)
	assert.Equal(t, http.StatusForbidden, forbidden.HTTPStatus)
	assert.NotEqual(t, unauthenticated.Code, forbidden.Code)
}

func TestDependencyUnavailableWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	domainErr := ToDomainError(NewDependencyUnavailable("identity directory unavailable", cause))

	assert.Equal(t, http.StatusServiceUnavailable, domainErr.HTTPStatus)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", domainErr.Code)
	assert.ErrorIs(t, domainErr, cause)
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	domainErr := ToDomainError(errors.New("unexpected"))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewConflict("email already registered", nil)
	converted := ToDomainError(original)
	assert.Equal(t, "CONFLICT", converted.Code)
	assert.Equal(t, http.StatusConflict, converted.HTTPStatus)
}
