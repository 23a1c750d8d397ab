package progress

import "errors"

// ErrNoData indica que no hay entradas utilizables para visualizar.
var ErrNoData = errors.New("no data available")

// Patient son los datos del paciente que usa el motor.
type Patient struct {
	DOB string // fecha de nacimiento
	GA  string // edad gestacional al nacer, semanas
}

// Summary es la foto de cabecera: DOL y PMA de la última entrada.
type Summary struct {
	Date      string `json:"date"`
	DOL       *int   `json:"dol"`
	PMA       string `json:"pma"`
	Available bool   `json:"available"`
}

// Series es el resultado completo del pipeline para una vista.
type Series struct {
	Level       Level        `json:"level"`
	Points      []ChartPoint `json:"points"`
	Metrics     []Metric     `json:"metrics"`
	Table       []Record     `json:"table"` // entradas crudas ordenadas, nunca agregadas
	Summary     Summary      `json:"summary"`
	Milk        MilkSteps    `json:"milk_steps"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Build ejecuta el pipeline completo: ordenar, agregar, proyectar y filtrar métricas.
// Devuelve ErrNoData solo si no queda ninguna entrada con fecha válida.
func Build(p Patient, records []Record, level Level) (Series, error) {
	if level == "" {
		level = LevelDaily
	}
	if len(records) == 0 {
		return Series{Level: level}, ErrNoData
	}

	table, diags := Sort(records)
	if len(table) == 0 {
		return Series{Level: level, Diagnostics: diags}, ErrNoData
	}

	latest := table[len(table)-1]
	s := Series{
		Level:   level,
		Table:   table,
		Summary: Summarize(p, latest.Date),
	}

	aggregated, aggDiags := Aggregate(table, level, p.DOB)
	s.Diagnostics = append(diags, aggDiags...)

	// Sin buckets (DOB inválido en semanal) la tabla y el resumen siguen valiendo.
	s.Points = Project(aggregated)
	s.Metrics = Available(Catalog, s.Points)
	s.Milk = StepMilk(aggregated)
	return s, nil
}

// Summarize calcula DOL/PMA del paciente para la fecha dada.
func Summarize(p Patient, date string) Summary {
	d := Derive(p.DOB, p.GA, date)
	out := Summary{Date: date, PMA: d.PMAString(), Available: d.Available}
	if d.Available {
		dol := d.DOL
		out.DOL = &dol
	}
	return out
}

// MilkSteps es la serie escalonada de tipo de leche.
type MilkSteps struct {
	Types  []string   `json:"types"`
	Points []MilkStep `json:"points"`
}

type MilkStep struct {
	Name       string `json:"name"`
	DateString string `json:"dateString"`
	Level      *int   `json:"level"` // posición (1..n) en Types; nil si no hay tipo
	TypeOfMilk string `json:"type_of_milk"`
}

const unknownMilk = "Unknown"

// StepMilk asigna a cada tipo de leche distinto un nivel 1..n en orden de aparición.
func StepMilk(records []Record) MilkSteps {
	out := MilkSteps{Types: []string{}, Points: make([]MilkStep, 0, len(records))}
	levels := map[string]int{}

	for _, r := range records {
		t := r.Category(CategoryTypeOfMilk)
		if t == "" {
			continue
		}
		if _, ok := levels[t]; !ok {
			out.Types = append(out.Types, t)
			levels[t] = len(out.Types)
		}
	}

	for _, r := range records {
		step := MilkStep{Name: AxisLabel(r.Date), DateString: r.Date, TypeOfMilk: unknownMilk}
		if t := r.Category(CategoryTypeOfMilk); t != "" {
			lvl := levels[t]
			step.Level = &lvl
			step.TypeOfMilk = t
		}
		out.Points = append(out.Points, step)
	}
	return out
}
