package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bft-labs/logbridge/internal/app"
	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/exports"
	"github.com/bft-labs/logbridge/pkg/log"
)

const maxEntryBytes = 1 << 20

type entryRequest struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, exports.GetResponse())
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	o, err := app.CollectYear(r.Context(), s.cfg.Repo, year, s.cfg.SkipFirstLine)
	if err != nil {
		s.logger.Error("collect overview", log.Int("year", year), log.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to collect overview")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleReadEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	entry, found, err := s.cfg.Repo.Read(r.Context(), date)
	if err != nil {
		s.logger.Error("read entry", log.String("date", date.String()), log.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to read entry")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no entry for "+date.String())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleWriteEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEntryBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.cfg.Repo.Write(r.Context(), domain.LogEntry{Date: date, Content: req.Content}); err != nil {
		s.logger.Error("write entry", log.String("date", date.String()), log.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to write entry")
		return
	}
	s.logger.Info("entry written", log.String("date", date.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	if err := s.cfg.Repo.Remove(r.Context(), date); err != nil {
		s.logger.Error("remove entry", log.String("date", date.String()), log.Err(err))
		writeError(w, http.StatusInternalServerError, "failed to remove entry")
		return
	}
	s.logger.Info("entry removed", log.String("date", date.String()))
	w.WriteHeader(http.StatusNoContent)
}

func dateParam(w http.ResponseWriter, r *http.Request) (domain.Date, bool) {
	y, errY := strconv.Atoi(chi.URLParam(r, "year"))
	m, errM := strconv.Atoi(chi.URLParam(r, "month"))
	d, errD := strconv.Atoi(chi.URLParam(r, "day"))
	if errY != nil || errM != nil || errD != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return domain.Date{}, false
	}
	date, err := domain.NewDate(y, m, d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return domain.Date{}, false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
