package progress

// Metric es una métrica ofrecible para graficar.
type Metric struct {
	Key   Field  `json:"value"`
	Label string `json:"label"`
}

// Catalog es la lista fija de métricas conocidas, en el orden en que se ofrecen.
var Catalog = []Metric{
	{Key: FieldWeight, Label: "Weight"},
	{Key: FieldKMC, Label: "KMC (hrs/day)"},
	{Key: FieldCal, Label: "Caloric Intake"},
	{Key: FieldProtein, Label: "Protein Intake"},
	{Key: FieldTFR, Label: "TFR"},
	{Key: FieldDOL, Label: "DOL"},
	{Key: FieldFeeds, Label: "Feeds"},
	{Key: FieldPMA, Label: "PMA"},
	{Key: FieldHMF, Label: "HMF"},
	{Key: FieldNNS, Label: "NNS"},
	{Key: FieldPIOMI, Label: "PIOMI"},
	{Key: FieldCalcium, Label: "Calcium"},
	{Key: FieldPhosphorus, Label: "Phosphorus"},
	{Key: FieldVitD, Label: "Vitamin D"},
	{Key: FieldIron, Label: "Iron"},
	{Key: FieldZinc, Label: "Zinc"},
	{Key: FieldCaffeine, Label: "Caffeine"},
}

// Available filtra el catálogo: una métrica está disponible si algún punto
// de la serie tiene valor para ella. No modifica la serie.
func Available(catalog []Metric, points []ChartPoint) []Metric {
	out := make([]Metric, 0, len(catalog))
	for _, m := range catalog {
		for _, p := range points {
			if p.Value(m.Key) != nil {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
