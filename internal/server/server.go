// Package server provides the local preview server: JSON documents and PNG
// maps generated on demand.
package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/townforge/townforge/pkg/config"
	"github.com/townforge/townforge/pkg/export"
	"github.com/townforge/townforge/pkg/render"
	"github.com/townforge/townforge/pkg/town"
	"github.com/townforge/townforge/pkg/validate"
)

// Server is the local development server for town previews.
type Server struct {
	preset *config.Preset
	port   int
}

// New creates a server with the given generation preset.
func New(preset *config.Preset, port int) *Server {
	if preset == nil {
		preset = config.Default()
	}
	return &Server{preset: preset, port: port}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/town", s.handleTown)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /map.png", s.handleMap)
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("TownForge server starting on http://localhost%s", addr)
	log.Printf("Default size: %d (%s)", s.preset.Size, config.SizeName(s.preset.Size))

	return http.ListenAndServe(addr, mux)
}

func (s *Server) generate(req *http.Request) (*town.Model, error) {
	size := s.preset.Size
	seed := s.preset.Seed

	if v := req.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad size %q", v)
		}
		size = n
	}
	if v := req.URL.Query().Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed %q", v)
		}
		seed = n
	}
	return town.Generate(size, seed)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>TownForge</title></head>
<body style="margin:0;background:#2b2118;color:#f3e3c3;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>TownForge</h1>
<p>Fetch <code>/api/town?size=15&amp;seed=42</code> or <code>/map.png?size=15&amp;seed=42</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleTown(w http.ResponseWriter, req *http.Request) {
	m, err := s.generate(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, export.FromModel(m)); err != nil {
		log.Printf("encoding town: %v", err)
	}
}

func (s *Server) handleValidation(w http.ResponseWriter, req *http.Request) {
	m, err := s.generate(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report := validate.Check(m)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"valid":%t,"errors":%d,"warnings":%d}`,
		report.Valid, len(report.Errors), len(report.Warnings))
}

func (s *Server) handleMap(w http.ResponseWriter, req *http.Request) {
	m, err := s.generate(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// gg renders to files; use a scratch path and stream it back.
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("townforge-%d.png", m.Seed()))
	defer os.Remove(tmp)

	r := render.New(nil, s.preset.Output.Scale)
	if err := r.SavePNG(m, tmp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, req, tmp)
}
