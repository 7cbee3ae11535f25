package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
)

// requireUsername returns the authenticated username, or writes a 401 and
// returns false. The auth middleware makes the failure path unreachable on
// protected routes.
func requireUsername(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := shared.Username(r.Context())
	if !ok {
		handleAPIError(w, r, service.ErrUnauthenticated)
		return "", false
	}
	return username, true
}

// pathTaskID parses the {id} URL parameter. An id that is not a UUID cannot
// name any task, so it is reported as not found.
func pathTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleAPIError(w, r, service.ErrTaskNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads the optional page and size query parameters. Missing
// values fall back to the defaults; range clamping happens in the service.
func pageParams(w http.ResponseWriter, r *http.Request) (page, size int, ok bool) {
	var errs domain.ValidationErrors
	page = queryInt(r, "page", 0, &errs)
	size = queryInt(r, "size", domain.DefaultPageSize, &errs)
	if len(errs) > 0 {
		handleAPIError(w, r, errs)
		return 0, 0, false
	}
	return page, size, true
}

func queryInt(r *http.Request, name string, fallback int, errs *domain.ValidationErrors) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, domain.NewValidationError(name, "must be an integer", nil))
		return fallback
	}
	return n
}
