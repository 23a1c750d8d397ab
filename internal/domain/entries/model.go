package entries

import (
	"time"

	"nicu-progress/internal/domain/progress"
)

// Entry es el registro diario de un paciente.
// Los valores numéricos se guardan tal como llegaron (strings decimales);
// DOL y PMA los calcula el servicio a partir del DOB/GA del paciente.
type Entry struct {
	ID        string
	PatientID string
	Date      string // YYYY-MM-DD

	Numeric     map[progress.Field]progress.Value
	Categorical map[progress.Category]string

	CreatedBy string
	CreatedAt time.Time
}

// Record convierte la entrada al registro que consume el motor de progreso.
func (e Entry) Record() progress.Record {
	r := progress.Record{
		ID:          e.ID,
		Date:        e.Date,
		Numeric:     make(map[progress.Field]progress.Value, len(e.Numeric)),
		Categorical: make(map[progress.Category]string, len(e.Categorical)),
	}
	for f, v := range e.Numeric {
		if !v.IsEmpty() {
			r.Numeric[f] = v
		}
	}
	for c, v := range e.Categorical {
		if v != "" {
			r.Categorical[c] = v
		}
	}
	return r
}
