package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/R3E-Network/algorithm_service/internal/app/domain/user"
	"github.com/R3E-Network/algorithm_service/internal/app/services/users"
)

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	all, err := h.app.Users.List(r.Context())
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	u, err := h.app.Users.Get(r.Context(), id)
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *handler) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.app.Users.GetByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if _, ok := query["name"]; !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing required parameter %q", "name"))
		return
	}
	found, err := h.app.Users.SearchByName(r.Context(), query.Get("name"))
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload user.User
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	created, err := h.app.Users.Create(r.Context(), payload)
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var payload user.User
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := h.app.Users.Update(r.Context(), id, payload)
	if err != nil {
		writeUserError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.app.Users.Delete(r.Context(), id); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, users.ErrEmailConflict):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
