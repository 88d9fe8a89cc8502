// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject dependencies we use a factory function that accepts the
// storage (plus roster options) and returns a function with exactly that
// signature:
//
//	router.HandleFunc("POST /api/students", student.New(storage, opts...))
//
// Every request builds its own roster.View and loads it, the HTTP
// equivalent of the list screen regaining focus: each request sees the
// roster as currently stored, and the query/sort state of one request can
// never leak into another.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Adds a student to the end of the roster.
//
// Request body (JSON):
//
//	{ "id": "S3", "firstName": "Cal", "lastName": "Baker", "major": "P300", "gpa": 3.25 }
//
// Success response (201 Created):
//
//	{ "id": "S3" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	409 Conflict     — a student with this id already exists
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage, opts ...roster.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		s, err := roster.New(storage, opts...).Add(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, map[string]string{"id": s.ID})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns the display list: the roster filtered by ?q= and ordered by ?sort=.
//
// Query parameters:
//
//	q    — matches id (case-sensitive) or major (case-insensitive)
//	sort — none | last_name_asc | last_name_desc | gpa_asc | gpa_desc
//
// Returns an empty array [] (not null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage, opts ...roster.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		slog.Info("getting students", slog.String("q", query))

		mode, err := roster.ParseSortMode(r.URL.Query().Get("sort"))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		view := roster.New(storage, opts...)
		if err := view.Load(r.Context()); err != nil {
			slog.Error("error loading students", slog.String("error", err.Error()))
			writeError(w, err)
			return
		}
		view.SetQuery(query)
		view.SetSortMode(mode)

		response.WriteJSON(w, http.StatusOK, view.Display())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Error responses:
//
//	404 Not Found    — no student with this id
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage, opts ...roster.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		view := roster.New(storage, opts...)
		if err := view.Load(r.Context()); err != nil {
			slog.Error("error loading students",
				slog.String("id", id),
				slog.String("error", err.Error()))
			writeError(w, err)
			return
		}

		student, err := view.Get(id)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces every field except the id, which comes from the path.
//
// Success response (200 OK) — the updated student.
//
// Error responses:
//
//	400 Bad Request  — empty body or validation failure
//	404 Not Found    — no student with this id
//	500 Internal     — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage, opts ...roster.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		in, ok := decodeInput(w, r)
		if !ok {
			return
		}

		updated, err := roster.New(storage, opts...).Update(r.Context(), id, in)
		if err != nil {
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
// The client is expected to have confirmed the deletion with the user.
// Only records with this id are removed; no search filter applies here.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage, opts ...roster.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		view := roster.New(storage, opts...)
		if err := view.Load(r.Context()); err != nil {
			writeError(w, err)
			return
		}

		if err := view.Remove(r.Context(), id); err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// decodeInput reads the JSON body into a StudentInput.
// It writes the 400 response itself and reports false on failure.
func decodeInput(w http.ResponseWriter, r *http.Request) (types.StudentInput, bool) {
	var in types.StudentInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return in, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return in, false
	}

	return in, true
}

// writeError maps roster errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
	case errors.Is(err, roster.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	case errors.Is(err, roster.ErrDuplicateID):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
	default:
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}
