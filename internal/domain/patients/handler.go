package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"nicu-progress/internal/domain/progress"
	"nicu-progress/internal/middleware"
	"nicu-progress/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))

		pr.Get("/{patientID}", getPatientHandler(svc))
		pr.Patch("/{patientID}", updatePatientHandler(svc))
		pr.Delete("/{patientID}", deletePatientHandler(svc))
	})
}

type createPatientRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	GA        string `json:"ga" validate:"required,decimal=0:45"` // semanas
	Weight    string `json:"weight" validate:"decimal"`
	AgaSgaLga string `json:"aga_sga_lga" validate:"omitempty,oneof=AGA SGA LGA"`
	Sex       string `json:"sex" validate:"omitempty,oneof=male female unknown"`
	DOB       string `json:"dob" validate:"required,datetime=2006-01-02"`
	TOB       string `json:"tob" validate:"omitempty,datetime=15:04"`
}

type updatePatientRequest struct {
	PatientID *string `json:"patient_id" validate:"omitempty,min=1"`
	Name      *string `json:"name" validate:"omitempty,min=1"`
	GA        *string `json:"ga" validate:"omitempty,decimal=0:45"`
	Weight    *string `json:"weight" validate:"omitempty,decimal"`
	AgaSgaLga *string `json:"aga_sga_lga" validate:"omitempty,oneof=AGA SGA LGA"`
	Sex       *string `json:"sex" validate:"omitempty,oneof=male female unknown"`
	DOB       *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	TOB       *string `json:"tob" validate:"omitempty,datetime=15:04"`
}

type patientResponse struct {
	ID        string         `json:"id"`
	PatientID string         `json:"patient_id"`
	Name      string         `json:"name"`
	GA        string         `json:"ga"`
	Weight    string         `json:"weight"`
	AgaSgaLga Classification `json:"aga_sga_lga"`
	Sex       Sex            `json:"sex"`
	DOB       string         `json:"dob"`
	TOB       string         `json:"tob,omitempty"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// patientDetailResponse incluye las entradas diarias ordenadas por fecha.
type patientDetailResponse struct {
	patientResponse
	Entries []progress.Record `json:"entries"`
}

// createPatientHandler godoc
// @Summary Registrar paciente
// @Description Registra un neonato. `dob` (YYYY-MM-DD) y `ga` (semanas) se usan para calcular DOL y PMA de cada entrada.
// @Tags patients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPatientRequest true "Datos del paciente"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "patient_id already registered"
// @Router /patients [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			PatientID: req.PatientID,
			Name:      req.Name,
			GA:        req.GA,
			Weight:    req.Weight,
			AgaSgaLga: req.AgaSgaLga,
			Sex:       req.Sex,
			DOB:       req.DOB,
			TOB:       req.TOB,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// listPatientsHandler godoc
// @Summary Listar pacientes
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPatientHandler godoc
// @Summary Ver paciente con sus entradas
// @Tags patients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 200 {object} patientDetailResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, records, err := svc.GetWithEntries(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if records == nil {
			records = []progress.Record{}
		}

		writeJSON(w, http.StatusOK, patientDetailResponse{
			patientResponse: toPatientResponse(p),
			Entries:         records,
		})
	}
}

// updatePatientHandler godoc
// @Summary Actualizar paciente
// @Description PATCH parcial: solo se modifican los campos enviados.
// @Tags patients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Param payload body updatePatientRequest true "Campos a modificar"
// @Success 200 {object} patientResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [patch]
func updatePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePatientRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "patientID"), UpdateInput{
			PatientID: req.PatientID,
			Name:      req.Name,
			GA:        req.GA,
			Weight:    req.Weight,
			AgaSgaLga: req.AgaSgaLga,
			Sex:       req.Sex,
			DOB:       req.DOB,
			TOB:       req.TOB,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(updated))
	}
}

// deletePatientHandler godoc
// @Summary Eliminar paciente
// @Description Elimina el paciente y todas sus entradas diarias.
// @Tags patients
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param patientID path string true "ID del paciente"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [delete]
func deletePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "patientID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "patient not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		PatientID: p.PatientID,
		Name:      p.Name,
		GA:        p.GA,
		Weight:    p.Weight,
		AgaSgaLga: p.AgaSgaLga,
		Sex:       p.Sex,
		DOB:       p.DOB,
		TOB:       p.TOB,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
