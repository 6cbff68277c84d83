// Package api serves the orientation math over HTTP as JSON, so a
// browser page can fetch ready-to-upload transforms.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcube/internal/logger"
	"github.com/Faultbox/orbitcube/internal/viewer"
	"github.com/Faultbox/orbitcube/pkg/geometry"
	"github.com/Faultbox/orbitcube/pkg/math"
)

// ComposeResponse is returned by /api/compose and /api/sliders.
type ComposeResponse struct {
	Matrix      math.Mat4  `json:"matrix"`
	Determinant float64    `json:"determinant"`
	Projection  *math.Mat4 `json:"projection,omitempty"`
}

// ExtractRequest is the body of /api/extract.
type ExtractRequest struct {
	Matrix []float64 `json:"matrix"`
}

// ExtractResponse is returned by /api/extract.
type ExtractResponse struct {
	Angles      math.EulerAngles `json:"angles"`
	GimbalLock  bool             `json:"gimbal_lock"`
	Determinant float64          `json:"determinant"`
}

// PresetResponse is one entry of /api/presets.
type PresetResponse struct {
	Name   viewer.Preset    `json:"name"`
	Angles math.EulerAngles `json:"angles"`
}

// Server holds the API routes.
type Server struct {
	router           *mux.Router
	log              *zap.Logger
	sphereResolution int
}

// NewServer builds the router. sphereResolution sets the point count of
// the "sphere" mesh.
func NewServer(sphereResolution int) *Server {
	s := &Server{
		router:           mux.NewRouter(),
		log:              logger.Named("api"),
		sphereResolution: sphereResolution,
	}

	r := s.router.PathPrefix("/api").Subrouter()
	r.HandleFunc("/compose", s.handleCompose).Methods(http.MethodGet)
	r.HandleFunc("/sliders", s.handleSliders).Methods(http.MethodGet)
	r.HandleFunc("/extract", s.handleExtract).Methods(http.MethodPost)
	r.HandleFunc("/fit", s.handleFit).Methods(http.MethodGet)
	r.HandleFunc("/presets", s.handlePresets).Methods(http.MethodGet)
	r.HandleFunc("/geometry", s.handleGeometryList).Methods(http.MethodGet)
	r.HandleFunc("/geometry/{name}", s.handleGeometry).Methods(http.MethodGet)

	return s
}

// Handler returns the router wrapped with request logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	accessLog := zap.NewStdLog(s.log.Named("access")).Writer()
	h := handlers.LoggingHandler(accessLog, s.router)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

// ListenAndServe serves the API on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("starting server", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	angles := math.EulerAngles{
		X: q.float("ax", 0),
		Y: q.float("ay", 0),
		Z: q.float("az", 0),
	}
	scale := q.float("scale", 1)
	if q.err != nil {
		s.writeError(w, http.StatusBadRequest, q.err)
		return
	}

	m := math.UniformScale(scale).Mul(angles.Matrix())
	s.writeCompose(w, r, m)
}

func (s *Server) handleSliders(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	sl := viewer.Sliders{
		Scale:      q.float("s", 1),
		X:          q.float("x", 0),
		Y:          q.float("y", 0),
		Z:          q.float("z", 0),
		Horizontal: q.float("h", 0),
		Vertical:   q.float("v", 0),
	}
	if q.err != nil {
		s.writeError(w, http.StatusBadRequest, q.err)
		return
	}

	s.writeCompose(w, r, sl.Matrix())
}

// writeCompose adds a fitted projection when width and height are given.
func (s *Server) writeCompose(w http.ResponseWriter, r *http.Request, m math.Mat4) {
	resp := ComposeResponse{Matrix: m, Determinant: m.Determinant3()}

	if r.URL.Query().Has("width") || r.URL.Query().Has("height") {
		q := query{r: r}
		width, height := q.float("width", 0), q.float("height", 0)
		if q.err == nil && (width <= 0 || height <= 0) {
			q.err = errors.Errorf("viewport must be positive, got %vx%v", width, height)
		}
		if q.err != nil {
			s.writeError(w, http.StatusBadRequest, q.err)
			return
		}
		p := math.ProjectionFit(m, width, height)
		resp.Projection = &p
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "decoding body"))
		return
	}
	if len(req.Matrix) != 16 {
		s.writeError(w, http.StatusBadRequest, errors.Errorf("matrix must have 16 elements, got %d", len(req.Matrix)))
		return
	}

	var m math.Mat4
	copy(m[:], req.Matrix)
	d := math.Decompose(m)

	s.writeJSON(w, http.StatusOK, ExtractResponse{
		Angles:      d.Angles,
		GimbalLock:  d.GimbalLock,
		Determinant: m.Determinant3(),
	})
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	width := q.float("width", 0)
	height := q.float("height", 0)
	if q.err == nil && (width <= 0 || height <= 0) {
		q.err = errors.Errorf("viewport must be positive, got %vx%v", width, height)
	}
	if q.err != nil {
		s.writeError(w, http.StatusBadRequest, q.err)
		return
	}

	s.writeJSON(w, http.StatusOK, math.ProjectionFit(math.Identity(), width, height))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	var out []PresetResponse
	for _, p := range viewer.Presets() {
		a, _ := viewer.PresetAngles(p)
		out = append(out, PresetResponse{Name: p, Angles: a})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGeometryList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, geometry.Names())
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	m, err := geometry.ByName(name)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if name == "sphere" && s.sphereResolution > 0 {
		m.Positions = geometry.Sphere(s.sphereResolution)
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Debug("request failed", zap.Int("status", status), zap.Error(err))
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// query parses float parameters, keeping the first error.
type query struct {
	r   *http.Request
	err error
}

func (q *query) float(name string, def float64) float64 {
	raw := q.r.URL.Query().Get(name)
	if raw == "" || q.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.err = errors.Wrapf(err, "parameter %s", name)
		return def
	}
	return v
}
