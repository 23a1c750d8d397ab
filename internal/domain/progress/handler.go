package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"nicu-progress/internal/middleware"
	"nicu-progress/internal/platform/logger"
	"nicu-progress/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

var ErrPatientNotFound = errors.New("patient not found")

// Source entrega los datos de un paciente y sus entradas crudas.
// Lo implementa patients.Service.
type Source interface {
	Load(ctx context.Context, patientID string) (Patient, []Record, error)
}

func RegisterRoutes(r chi.Router, src Source, log logger.Logger, m *metrics.Metrics) {
	r.Get("/patients/{patientID}/progress", progressHandler(src, log, m))
}

// noDataResponse es la respuesta cuando no hay entradas utilizables.
type noDataResponse struct {
	NoData      bool         `json:"no_data"`
	Level       Level        `json:"level"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// progressHandler godoc
// @Summary Serie de progreso del paciente
// @Description Ordena, agrega (daily, weekly o monthly) y proyecta las entradas del paciente. Devuelve los puntos del gráfico, las métricas con datos, la tabla cruda, DOL/PMA de la última entrada y la serie de tipo de leche. Sin entradas utilizables responde `{"no_data": true}`.
// @Tags progress
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param aggregation query string false "daily | weekly | monthly (default daily)"
// @Success 200 {object} Series
// @Failure 400 {string} string "aggregation must be daily, weekly or monthly"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/progress [get]
func progressHandler(src Source, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		level, err := ParseLevel(r.URL.Query().Get("aggregation"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		started := time.Now()
		patientID := chi.URLParam(r, "patientID")
		p, records, err := src.Load(r.Context(), patientID)
		if err != nil {
			if errors.Is(err, ErrPatientNotFound) {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			log.Error("load progress data failed", map[string]any{"patient_id": patientID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		s, err := Build(p, records, level)
		m.ObserveBuild(string(level), started, skipped(s.Diagnostics), errors.Is(err, ErrNoData))

		if len(s.Diagnostics) > 0 {
			log.Warn("entries excluded from progress series", map[string]any{
				"patient_id":  patientID,
				"level":       string(level),
				"diagnostics": s.Diagnostics,
			})
		}

		if errors.Is(err, ErrNoData) {
			writeJSON(w, http.StatusOK, noDataResponse{NoData: true, Level: level, Diagnostics: s.Diagnostics})
			return
		}
		if err != nil {
			log.Error("build progress series failed", map[string]any{"patient_id": patientID, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, s)
	}
}

// skipped cuenta entradas excluidas. Cada fecha inválida es una entrada;
// los diagnósticos de DOB se deduplican por ID de entrada.
func skipped(d []Diagnostic) int {
	n := 0
	seen := map[string]struct{}{}
	for _, x := range d {
		if x.Reason == ReasonUnparseableDOB && x.EntryID != "" {
			if _, ok := seen[x.EntryID]; ok {
				continue
			}
			seen[x.EntryID] = struct{}{}
		}
		n++
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
