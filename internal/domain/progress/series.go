package progress

import (
	"encoding/json"
	"fmt"
)

// ChartPoint es un registro proyectado a la serie del gráfico.
type ChartPoint struct {
	Name       string // "M/D", solo para el eje; se repite entre años
	DateString string
	Values     map[Field]*float64
}

func (p ChartPoint) Value(f Field) *float64 { return p.Values[f] }

func (p ChartPoint) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(NumericFields)+2)
	m["name"] = p.Name
	m["dateString"] = p.DateString
	for _, f := range NumericFields {
		m[string(f)] = p.Values[f]
	}
	return json.Marshal(m)
}

// Project convierte cada registro en un ChartPoint. Misma longitud que la entrada;
// los valores vacíos o no numéricos quedan en nil.
func Project(records []Record) []ChartPoint {
	out := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		p := ChartPoint{
			Name:       AxisLabel(r.Date),
			DateString: r.Date,
			Values:     make(map[Field]*float64, len(NumericFields)),
		}
		for _, f := range NumericFields {
			if v, ok := r.Value(f).Float(); ok {
				p.Values[f] = &v
			}
		}
		out = append(out, p)
	}
	return out
}

// AxisLabel devuelve "mes/día" sin ceros a la izquierda.
func AxisLabel(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
