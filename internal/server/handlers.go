package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yusi/shuqian/internal/logger"
	"github.com/yusi/shuqian/internal/model"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.repo.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bookmarks)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var b model.Bookmark
	if err := decodeBody(w, r, &b); err != nil {
		s.writeError(w, err)
		return
	}
	if b.Title == "" || b.URL == "" {
		s.writeError(w, badRequest("title and url are required"))
		return
	}
	if b.ID == "" {
		b.ID = model.NewID()
	}

	if err := s.repo.Create(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("bookmark created", logger.String("id", b.ID))
	s.writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch model.Patch
	if err := decodeBody(w, r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	if (patch.Title != nil && *patch.Title == "") || (patch.URL != nil && *patch.URL == "") {
		s.writeError(w, badRequest("title and url cannot be empty"))
		return
	}

	b, err := s.repo.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}
