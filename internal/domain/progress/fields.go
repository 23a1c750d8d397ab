package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field identifica un campo numérico de la entrada diaria.
// El valor es la clave usada en la serie (ChartPoint) y en el catálogo de métricas.
type Field string

const (
	FieldWeight     Field = "weight"
	FieldKMC        Field = "kmc"
	FieldCal        Field = "cal"
	FieldDOL        Field = "dol"
	FieldProtein    Field = "protein"
	FieldTFR        Field = "tfr"
	FieldFeeds      Field = "feeds"
	FieldPMA        Field = "pma"
	FieldCalcium    Field = "calcium"
	FieldPhosphorus Field = "phosphorus"
	FieldVitD       Field = "vitD"
	FieldIron       Field = "iron"
	FieldZinc       Field = "zinc"
	FieldCaffeine   Field = "caffeine"
	FieldHMF        Field = "hmf"
	FieldNNS        Field = "nns"
	FieldPIOMI      Field = "piomi"
)

// NumericFields en el orden en que se reducen y se proyectan.
var NumericFields = []Field{
	FieldWeight, FieldKMC, FieldCal, FieldDOL, FieldProtein, FieldTFR, FieldFeeds, FieldPMA,
	FieldCalcium, FieldPhosphorus, FieldVitD, FieldIron, FieldZinc, FieldCaffeine,
	FieldHMF, FieldNNS, FieldPIOMI,
}

// EntryKey es la clave del campo en la entrada cruda (JSON y columna SQL).
// Solo vitD difiere: en la entrada se llama vit_d.
func (f Field) EntryKey() string {
	if f == FieldVitD {
		return "vit_d"
	}
	return string(f)
}

// Category identifica un campo categórico de la entrada diaria.
type Category string

const (
	CategoryModeOfFeeding     Category = "mode_of_feeding"
	CategoryGainLoss          Category = "gain_loss"
	CategoryTypeOfMilk        Category = "type_of_milk"
	CategoryEarlyIntervention Category = "early_intervention"
	CategoryRespSupport       Category = "resp_support"
	CategoryDesaturations     Category = "desaturations"
	CategoryAcuteEvents       Category = "acute_events"
)

var Categories = []Category{
	CategoryModeOfFeeding, CategoryGainLoss, CategoryTypeOfMilk, CategoryEarlyIntervention,
	CategoryRespSupport, CategoryDesaturations, CategoryAcuteEvents,
}

// Value es un valor numérico opcional tal como llegó del registro.
// "" = vacío. Acepta en JSON número, string o null.
type Value string

// Float intenta interpretar el valor como decimal.
// Vacío, texto no numérico, NaN e Inf => (0, false). Nunca se asume cero.
func (v Value) Float() (float64, bool) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (v Value) IsEmpty() bool { return strings.TrimSpace(string(v)) == "" }

// FloatValue formatea f de forma que Float() devuelva exactamente f.
func FloatValue(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*v = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
	default:
		*v = Value(b)
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsEmpty() {
		return []byte("null"), nil
	}
	if f, ok := v.Float(); ok {
		return json.Marshal(f)
	}
	return json.Marshal(string(v))
}

// Record es una entrada diaria (cruda o agregada) tal como la consume el motor.
type Record struct {
	ID          string
	Date        string
	Numeric     map[Field]Value
	Categorical map[Category]string

	// Solo en registros agregados.
	Bucket string
	Count  int
}

func (r Record) Value(f Field) Value { return r.Numeric[f] }

func (r Record) Category(c Category) string { return r.Categorical[c] }

// MarshalJSON emite el registro plano, con las mismas claves que la entrada cruda.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(NumericFields)+len(Categories)+4)
	if r.ID != "" {
		m["id"] = r.ID
	}
	m["date"] = r.Date
	for _, f := range NumericFields {
		m[f.EntryKey()] = r.Numeric[f]
	}
	for _, c := range Categories {
		m[string(c)] = r.Categorical[c]
	}
	if r.Bucket != "" {
		m["bucket"] = r.Bucket
		m["count"] = r.Count
	}
	return json.Marshal(m)
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	out := Record{
		Numeric:     make(map[Field]Value, len(NumericFields)),
		Categorical: make(map[Category]string, len(Categories)),
	}
	if v, ok := raw["id"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &out.ID); err != nil {
			return fmt.Errorf("id: %w", err)
		}
	}
	if v, ok := raw["date"]; ok {
		if err := json.Unmarshal(v, &out.Date); err != nil {
			return err
		}
	}
	for _, f := range NumericFields {
		v, ok := raw[f.EntryKey()]
		if !ok {
			continue
		}
		var val Value
		if err := val.UnmarshalJSON(v); err != nil {
			return err
		}
		if !val.IsEmpty() {
			out.Numeric[f] = val
		}
	}
	for _, c := range Categories {
		v, ok := raw[string(c)]
		if !ok || string(v) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		if s != "" {
			out.Categorical[c] = s
		}
	}
	if v, ok := raw["bucket"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &out.Bucket); err != nil {
			return fmt.Errorf("bucket: %w", err)
		}
	}
	if v, ok := raw["count"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &out.Count); err != nil {
			return fmt.Errorf("count: %w", err)
		}
	}

	*r = out
	return nil
}
