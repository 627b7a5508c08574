package formsink

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxFormMemory = 1 << 20

// RegisterRoutes mounts the submission routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/f", func(r chi.Router) {
		r.Post("/{form}", handleSubmit(store))
		r.Put("/{form}", handleSubmit(store))
		r.Patch("/{form}", handleSubmit(store))
		r.Get("/{form}", handleList(store))
	})
}

type submitResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

func handleSubmit(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := chi.URLParam(r, "form")

		if err := parseForm(r); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
			return
		}

		fields := make(map[string]string)
		for name, values := range r.PostForm {
			v := strings.TrimSpace(strings.Join(values, "\n"))
			if v != "" {
				fields[name] = v
			}
		}
		if len(fields) == 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "submission is empty"})
			return
		}

		sub := store.Add(form, fields)
		writeJSON(w, http.StatusOK, submitResponse{OK: true, ID: sub.ID})
	}
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.List(chi.URLParam(r, "form")))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
