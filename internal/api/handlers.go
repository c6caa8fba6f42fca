package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/monsTa-b0y/exp-dashboard/internal/corrections"
	"github.com/monsTa-b0y/exp-dashboard/internal/filter"
	"github.com/monsTa-b0y/exp-dashboard/internal/loader"
	"github.com/monsTa-b0y/exp-dashboard/internal/session"
)

type correctionsRequest struct {
	LedgerID    uuid.UUID                `json:"ledger_id"`
	Corrections []corrections.Correction `json:"corrections"`
}

// handleUpload accepts a CSV either as the "file" field of a multipart form
// or as the raw request body.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	log := zerolog.Ctx(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)

	var (
		body   io.Reader = r.Body
		source           = strings.TrimSpace(r.URL.Query().Get("name"))
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()
		body = file
		if source == "" {
			source = header.Filename
		}
	}
	if source == "" {
		source = "upload.csv"
	}

	summary, err := s.session.Upload(source, body)
	if err != nil {
		var (
			schemaErr *loader.SchemaError
			formatErr *loader.FormatError
			sizeErr   *http.MaxBytesError
		)
		switch {
		case errors.As(err, &schemaErr), errors.As(err, &formatErr):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &sizeErr):
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		default:
			log.Error().Err(err).Msg("upload failed")
			writeError(w, http.StatusBadRequest, "could not read file")
		}
		return
	}

	writeJSON(w, http.StatusCreated, summary)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	summary, err := s.session.Summary()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	c := s.session.Categorizer()
	type entry struct {
		Name     string   `json:"name"`
		Keywords []string `json:"keywords"`
	}
	out := struct {
		Categories []entry `json:"categories"`
		Fallback   string  `json:"fallback"`
	}{Fallback: c.Fallback()}
	for _, name := range c.Categories() {
		out.Categories = append(out.Categories, entry{Name: name, Keywords: c.Keywords(name)})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDashboard recomputes the whole dashboard for the requested filter.
// Absent parameters fall back to the ledger's own bounds.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	topN := 0
	if v := strings.TrimSpace(q.Get("top")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid top %q", v))
			return
		}
		topN = n
	}

	o := overridesFromQuery(q)
	dash, err := s.session.View(func(defaults filter.Spec) (filter.Spec, error) {
		return o.Refine(defaults, s.dateLayout)
	}, topN)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dash)
	case errors.Is(err, session.ErrNoLedger):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) handleCorrections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req correctionsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.session.Correct(req.LedgerID, req.Corrections)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, session.ErrNoLedger), errors.Is(err, session.ErrStaleLedger):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, corrections.ErrUnknownRow), errors.Is(err, corrections.ErrInvalidCategory):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log := zerolog.Ctx(r.Context())
		log.Error().Err(err).Msg("correction failed")
		writeError(w, http.StatusInternalServerError, "correction failed")
	}
}

// overridesFromQuery reads start, end, category, min and max. A category
// parameter that is present but empty selects nothing.
func overridesFromQuery(q url.Values) filter.Overrides {
	cats, ok := q["category"]
	return filter.Overrides{
		Start:         q.Get("start"),
		End:           q.Get("end"),
		Categories:    cats,
		HasCategories: ok,
		Min:           q.Get("min"),
		Max:           q.Get("max"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
