package progress

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
)

// Level es el nivel de agregación temporal.
type Level string

const (
	LevelDaily   Level = "daily"
	LevelWeekly  Level = "weekly"
	LevelMonthly Level = "monthly"
)

var ErrInvalidLevel = errors.New("aggregation must be daily, weekly or monthly")

// ParseLevel interpreta el selector de agregación. Vacío => daily.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case "", LevelDaily:
		return LevelDaily, nil
	case LevelWeekly:
		return LevelWeekly, nil
	case LevelMonthly:
		return LevelMonthly, nil
	default:
		return "", ErrInvalidLevel
	}
}

// Diagnostic registra una entrada que quedó fuera del cálculo.
type Diagnostic struct {
	EntryID string `json:"entry_id,omitempty"`
	Date    string `json:"date"`
	Reason  string `json:"reason"`
}

const (
	ReasonUnparseableDate = "entry date is not a valid calendar date"
	ReasonUnparseableDOB  = "patient dob is not a valid calendar date"
)

type dated struct {
	rec Record
	at  time.Time
	key string
}

// Sort ordena por fecha ascendente. Empates: ID y luego contenido, para que el
// resultado no dependa del orden de entrada. Las entradas sin fecha válida se
// excluyen y se informan como Diagnostic.
func Sort(records []Record) ([]Record, []Diagnostic) {
	items := make([]dated, 0, len(records))
	var diags []Diagnostic

	for _, r := range records {
		t, ok := ParseDate(r.Date)
		if !ok {
			diags = append(diags, Diagnostic{EntryID: r.ID, Date: r.Date, Reason: ReasonUnparseableDate})
			continue
		}
		items = append(items, dated{rec: r, at: t})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		if a.rec.ID != b.rec.ID {
			return a.rec.ID < b.rec.ID
		}
		if a.key == "" {
			a.key = fingerprint(a.rec)
		}
		if b.key == "" {
			b.key = fingerprint(b.rec)
		}
		return a.key < b.key
	})

	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, it.rec)
	}
	sortDiagnostics(diags)
	return out, diags
}

// Aggregate agrupa y reduce las entradas según level.
//   - daily: identidad (solo ordena)
//   - weekly: semana desde el nacimiento, floor(días/7)+1
//   - monthly: mes calendario "YYYY-MM"
//
// Cada bucket se reduce a un registro: fecha = la más temprana del bucket,
// numéricos = media de los valores interpretables, type_of_milk = moda.
func Aggregate(records []Record, level Level, birthDate string) ([]Record, []Diagnostic) {
	sorted, diags := Sort(records)
	if level == LevelDaily || level == "" {
		return sorted, diags
	}

	var dob time.Time
	if level == LevelWeekly {
		t, ok := ParseDate(birthDate)
		if !ok {
			for _, r := range sorted {
				diags = append(diags, Diagnostic{EntryID: r.ID, Date: r.Date, Reason: ReasonUnparseableDOB})
			}
			return []Record{}, diags
		}
		dob = t
	}

	// Orden de inserción de los buckets = primera aparición en el recorrido.
	order := make([]string, 0)
	groups := map[string][]Record{}
	firstSeen := map[string]time.Time{}

	for _, r := range sorted {
		t, _ := ParseDate(r.Date) // Sort ya descartó las inválidas
		key := bucketKey(level, dob, t)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
			firstSeen[key] = t
		}
		groups[key] = append(groups[key], r)
	}

	out := make([]Record, 0, len(order))
	for _, key := range order {
		out = append(out, reduce(key, groups[key]))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return firstSeen[out[i].Bucket].Before(firstSeen[out[j].Bucket])
	})

	return out, diags
}

func bucketKey(level Level, dob, at time.Time) string {
	switch level {
	case LevelWeekly:
		week := int(math.Floor(daysBetween(dob, at)/7)) + 1
		return strconv.Itoa(week)
	case LevelMonthly:
		return fmt.Sprintf("%04d-%02d", at.Year(), int(at.Month()))
	default:
		return at.Format(DateLayout)
	}
}

func reduce(key string, group []Record) Record {
	out := Record{
		Date:    group[0].Date,
		Numeric: make(map[Field]Value, len(NumericFields)),
		Bucket:  key,
		Count:   len(group),
	}

	for _, f := range NumericFields {
		nums := make([]float64, 0, len(group))
		for _, r := range group {
			if v, ok := r.Value(f).Float(); ok {
				nums = append(nums, v)
			}
		}
		if len(nums) == 0 {
			continue
		}
		mean, err := stats.Mean(nums)
		if err != nil {
			continue
		}
		out.Numeric[f] = FloatValue(mean)
	}

	// Solo type_of_milk se reduce; el resto de categóricos no sobrevive a la agregación.
	if milk := mode(group, CategoryTypeOfMilk); milk != "" {
		out.Categorical = map[Category]string{CategoryTypeOfMilk: milk}
	}

	return out
}

// mode devuelve el valor no vacío más frecuente; en empate gana el primero visto.
func mode(group []Record, c Category) string {
	counts := map[string]int{}
	order := make([]string, 0)

	for _, r := range group {
		v := r.Category(c)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	best, bestN := "", 0
	for _, v := range order {
		if counts[v] > bestN {
			best, bestN = v, counts[v]
		}
	}
	return best
}

func fingerprint(r Record) string {
	var sb strings.Builder
	for _, f := range NumericFields {
		sb.WriteString(string(f))
		sb.WriteByte('=')
		sb.WriteString(string(r.Numeric[f]))
		sb.WriteByte(';')
	}
	for _, c := range Categories {
		sb.WriteString(string(c))
		sb.WriteByte('=')
		sb.WriteString(r.Categorical[c])
		sb.WriteByte(';')
	}
	return sb.String()
}

func sortDiagnostics(d []Diagnostic) {
	sort.SliceStable(d, func(i, j int) bool {
		if d[i].Date != d[j].Date {
			return d[i].Date < d[j].Date
		}
		return d[i].EntryID < d[j].EntryID
	})
}
