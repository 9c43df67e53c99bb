package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wricardo/golem/game/engine"
)

// Server serves tile images and map set files to browser and remote hosts
type Server struct {
	router  chi.Router
	assets  fs.FS
	maps    fs.FS
	catalog *engine.TileCatalog
}

// MapSetResponse is the JSON form of a map set. Layers are in file order,
// top row first.
type MapSetResponse struct {
	Name    string            `json:"name"`
	Rows    int               `json:"rows"`
	Cols    int               `json:"cols"`
	Base    [][]engine.TileID `json:"base"`
	Texture [][]engine.TileID `json:"texture"`
}

// NewServer creates an asset server. pattern names tile images as in
// engine.WorldConfig.TileAssetPattern.
func NewServer(assets, maps fs.FS, pattern string) (*Server, error) {
	catalog, err := engine.NewTileCatalog(pattern)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  chi.NewRouter(),
		assets:  assets,
		maps:    maps,
		catalog: catalog,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)

	s.router.Get("/tiles/{id}", s.handleTile)
	s.router.Get("/maps/{name}", s.handleMapSet)
	s.router.Get("/maps/{name}/{layer}", s.handleLayer)

	fileServer := http.FileServer(http.FS(s.assets))
	s.router.Handle("/files/*", http.StripPrefix("/files", fileServer))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func mapErrorStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrMissingResource):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidMapName):
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "tile id must be a number")
		return
	}

	asset, err := s.catalog.Resolve(engine.TileID(id))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if _, err := fs.Stat(s.assets, asset); err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("asset %s not found", asset))
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFileFS(w, r, s.assets, asset)
}

func (s *Server) handleMapSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ms, err := engine.ReadMapSet(s.maps, s.catalog, name)
	if err != nil {
		respondError(w, mapErrorStatus(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, MapSetResponse{
		Name:    ms.Name,
		Rows:    ms.Rows(),
		Cols:    ms.Cols(),
		Base:    ms.Base.FileRows(),
		Texture: ms.Texture.FileRows(),
	})
}

// handleLayer serves one layer as normalized map text
func (s *Server) handleLayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ms, err := engine.ReadMapSet(s.maps, s.catalog, name)
	if err != nil {
		respondError(w, mapErrorStatus(err), err.Error())
		return
	}

	var grid *engine.Grid
	switch chi.URLParam(r, "layer") {
	case "base":
		grid = ms.Base
	case "texture":
		grid = ms.Texture
	default:
		respondError(w, http.StatusBadRequest, "layer must be base or texture")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, grid.String())
}
