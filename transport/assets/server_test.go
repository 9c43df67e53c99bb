package assets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	assets := fstest.MapFS{
		"1.png":      {Data: []byte("\x89PNG tile one")},
		"player.png": {Data: []byte("\x89PNG player")},
	}
	maps := fstest.MapFS{
		"world.base.txt":     {Data: []byte("1,1\n0,1\n")},
		"world.texture.txt":  {Data: []byte("0,0\n0,5\n")},
		"broken.base.txt":    {Data: []byte("1,1\n1\n")},
		"broken.texture.txt": {Data: []byte("0,0\n0,0\n")},
	}
	s, err := NewServer(assets, maps, "")
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func TestNewServer_BadPattern(t *testing.T) {
	if _, err := NewServer(fstest.MapFS{}, fstest.MapFS{}, "tile.png"); err == nil {
		t.Error("Expected error for pattern without %d")
	}
}

func TestHandleTile(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"known tile", "/tiles/1", http.StatusOK},
		{"missing image", "/tiles/2", http.StatusNotFound},
		{"outside catalog", "/tiles/1000", http.StatusNotFound},
		{"not a number", "/tiles/grass", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(s, tt.path)
			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
		})
	}

	rr := get(s, "/tiles/1")
	if rr.Body.String() != "\x89PNG tile one" {
		t.Errorf("Unexpected body %q", rr.Body.String())
	}
}

func TestHandleMapSet(t *testing.T) {
	s := newTestServer(t)

	rr := get(s, "/maps/world")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp MapSetResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp.Rows != 2 || resp.Cols != 2 {
		t.Errorf("Expected 2x2, got %dx%d", resp.Rows, resp.Cols)
	}
	if resp.Base[1][0] != 0 || resp.Texture[1][1] != 5 {
		t.Errorf("Layers not in file order: %v %v", resp.Base, resp.Texture)
	}

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/maps/cave", http.StatusNotFound},
		{"/maps/broken", http.StatusUnprocessableEntity},
		{"/maps/..", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if rr := get(s, tt.path); rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestHandleLayer(t *testing.T) {
	s := newTestServer(t)

	rr := get(s, "/maps/world/texture")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "0,0\n0,5\n" {
		t.Errorf("Unexpected layer text %q", rr.Body.String())
	}

	if rr := get(s, "/maps/world/sky"); rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown layer, got %d", rr.Code)
	}
}

func TestFiles(t *testing.T) {
	s := newTestServer(t)

	rr := get(s, "/files/player.png")
	if rr.Code != http.StatusOK || rr.Body.String() != "\x89PNG player" {
		t.Errorf("Unexpected response %d %q", rr.Code, rr.Body.String())
	}
	if rr := get(s, "/files/nope.png"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

func TestSampleMaps(t *testing.T) {
	s, err := NewServer(fstest.MapFS{}, os.DirFS("../../maps"), "")
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	for _, name := range []string{"world", "other"} {
		rr := get(s, "/maps/"+name)
		if rr.Code != http.StatusOK {
			t.Errorf("Expected sample map %s to load, got %d: %s", name, rr.Code, rr.Body.String())
		}
	}
}
