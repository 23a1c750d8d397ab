package progress

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Unavailable es el marcador que se muestra cuando DOL/PMA no se pueden calcular.
const Unavailable = "-"

var seven = decimal.NewFromInt(7)

// Derivation es el resultado de calcular DOL y PMA para una observación.
// Available=false cuando la fecha de nacimiento, la fecha observada o la EG no son válidas.
type Derivation struct {
	DOL       int
	PMA       decimal.Decimal // semanas, redondeado a 1 decimal
	Available bool
}

// PMAString devuelve la PMA con un decimal, o Unavailable.
func (d Derivation) PMAString() string {
	if !d.Available {
		return Unavailable
	}
	return d.PMA.StringFixed(1)
}

// DOLString devuelve el DOL como texto, o Unavailable.
func (d Derivation) DOLString() string {
	if !d.Available {
		return Unavailable
	}
	return decimal.NewFromInt(int64(d.DOL)).String()
}

// Derive calcula DOL y PMA a partir de texto crudo.
//   - DOL = floor(días entre nacimiento y observación) + 1 (el día de nacimiento es el día 1)
//   - PMA = EG + DOL/7
func Derive(birthDate, gestationalAgeWeeks, observationDate string) Derivation {
	dob, ok := ParseDate(birthDate)
	if !ok {
		return Derivation{}
	}
	obs, ok := ParseDate(observationDate)
	if !ok {
		return Derivation{}
	}
	ga, ok := ParseGestationalAge(gestationalAgeWeeks)
	if !ok {
		return Derivation{}
	}
	return DeriveAt(dob, ga, obs)
}

// DeriveAt es Derive con valores ya interpretados.
func DeriveAt(birthDate time.Time, gaWeeks decimal.Decimal, observationDate time.Time) Derivation {
	dol := int(math.Floor(daysBetween(birthDate, observationDate))) + 1
	pma := gaWeeks.Add(decimal.NewFromInt(int64(dol)).Div(seven)).Round(1)
	return Derivation{DOL: dol, PMA: pma, Available: true}
}

// ParseGestationalAge acepta semanas decimales finitas y >= 0.
func ParseGestationalAge(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	ga, err := decimal.NewFromString(s)
	if err != nil || ga.IsNegative() {
		return decimal.Decimal{}, false
	}
	return ga, true
}
