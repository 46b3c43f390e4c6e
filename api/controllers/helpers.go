package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/api/validators"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
)

// pathID extracts and parses the named chi URL parameter as a UUID.
func pathID(r *http.Request, param string) (uuid.UUID, error) {
	return validators.PathUUID(chi.URLParam(r, param), param)
}

// queryString returns a trimmed optional query value, nil when absent.
func queryString(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// queryBool parses an optional boolean query value.
func queryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// queryUUIDPtr parses an optional UUID query value into a pointer.
func queryUUIDPtr(r *http.Request, key string) (*uuid.UUID, error) {
	id, err := validators.ParseQueryUUID(r, key)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, nil
	}
	return &id, nil
}
