package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleListPosts lists recently published posts straight from the store.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	posts, err := s.orchestrator.StoreClient().ListPosts(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list posts: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"posts": posts})
}

// handleDeletePost removes a published post document.
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if err := s.orchestrator.StoreClient().DeletePost(r.Context(), postID); err != nil {
		jsonError(w, "failed to delete post: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": postID})
}
