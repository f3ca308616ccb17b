package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"grantsproject/utils"
)

// FixtureHandler serves the read-only JSON fixtures some detail views load
// (grantDetails.json, links.json). A missing or unreadable fixture degrades
// to an empty object rather than an error.
type FixtureHandler struct {
	dir string
}

func NewFixtureHandler(dir string) *FixtureHandler {
	return &FixtureHandler{dir: dir}
}

var allowedFixtures = map[string]bool{
	"grantDetails.json": true,
	"links.json":        true,
}

func (h *FixtureHandler) GetFixture(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !allowedFixtures[name] {
		utils.HandleMessageResponse(w, "Unknown fixture", http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(h.dir, name))
	if err != nil {
		data = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
