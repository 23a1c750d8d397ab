package patients

import "time"

// Classification de peso al nacer respecto a la edad gestacional.
// @Enum AGA, SGA, LGA
type Classification string

const (
	ClassAGA Classification = "AGA"
	ClassSGA Classification = "SGA"
	ClassLGA Classification = "LGA"
)

// Sex define el sexo del paciente.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Patient es el perfil de ingreso de un neonato.
// DOB y GA alimentan el cálculo de DOL/PMA de cada entrada.
type Patient struct {
	ID        string
	PatientID string // identificador hospitalario (MRN), único

	Name      string
	GA        string // edad gestacional al nacer, semanas (decimal)
	Weight    string // peso al nacer
	AgaSgaLga Classification
	Sex       Sex
	DOB       string // YYYY-MM-DD
	TOB       string // hora de nacimiento HH:MM, opcional

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
