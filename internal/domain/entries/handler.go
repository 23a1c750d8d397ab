package entries

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"nicu-progress/internal/domain/patients"
	"nicu-progress/internal/domain/progress"
	"nicu-progress/internal/middleware"
	"nicu-progress/internal/platform/metrics"
	"nicu-progress/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

func RegisterRoutes(r chi.Router, svc *Service, m *metrics.Metrics) {
	r.Route("/patients/{patientID}/entries", func(er chi.Router) {
		er.Post("/", createEntryHandler(svc, m))
		er.Get("/", listEntriesHandler(svc))

		er.Get("/{entryID}", getEntryHandler(svc))
		er.Delete("/{entryID}", deleteEntryHandler(svc))
	})
}

// createEntryMeta son los campos del body que no son mediciones.
// Las mediciones se leen con las mismas claves que devuelve la API
// (weight, kmc, vit_d, type_of_milk, ...).
type createEntryMeta struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type entryResponse struct {
	progress.Record
	PatientID string
	CreatedBy string
	CreatedAt string
}

// MarshalJSON aplana el registro y agrega los metadatos de la entrada.
func (e entryResponse) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(e.Record)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["patient_id"] = e.PatientID
	m["created_by"] = e.CreatedBy
	m["created_at"] = e.CreatedAt
	return json.Marshal(m)
}

// createEntryHandler godoc
// @Summary Registrar entrada diaria
// @Description Registra mediciones del día. DOL y PMA se calculan con el DOB y la GA del paciente; si no son válidos responde 400. `date` (YYYY-MM-DD) por defecto es hoy.
// @Tags entries
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param payload body progress.Record true "Mediciones del día"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "invalid json / validación / patient DOB or GA is missing or invalid"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/entries [post]
func createEntryHandler(svc *Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		var meta createEntryMeta
		if err := json.Unmarshal(body, &meta); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(meta); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var rec progress.Record
		if err := json.Unmarshal(body, &rec); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), chi.URLParam(r, "patientID"), claims.UserID, CreateInput{
			Date:        meta.Date,
			Numeric:     rec.Numeric,
			Categorical: rec.Categorical,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		m.EntryCreated()

		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// listEntriesHandler godoc
// @Summary Listar entradas de un paciente
// @Description Vista de tabla: entradas sin agregar, ordenadas por fecha.
// @Tags entries
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/entries [get]
func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getEntryHandler godoc
// @Summary Ver una entrada
// @Tags entries
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param entryID path string true "ID de la entrada"
// @Success 200 {object} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "entry not found"
// @Router /patients/{patientID}/entries/{entryID} [get]
func getEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "entryID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

// deleteEntryHandler godoc
// @Summary Eliminar una entrada
// @Tags entries
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param entryID path string true "ID de la entrada"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "entry not found"
// @Router /patients/{patientID}/entries/{entryID} [delete]
func deleteEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "patientID"), chi.URLParam(r, "entryID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDerivationUnavailable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, patients.ErrNotFound):
		http.Error(w, "patient not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		Record:    e.Record(),
		PatientID: e.PatientID,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
