// Package geo maps Kenya's 47 counties to representative coordinates for
// weather lookups. One point per county is enough for a county-level forecast.
package geo

type point struct {
	Lat float64
	Lon float64
}

// Unknown names fall back to Nairobi.
var nairobiFallback = point{-1.29, 36.82}

var countyCoords = map[string]point{
	"Baringo":         {0.47, 35.97},
	"Bomet":           {-0.78, 35.34},
	"Bungoma":         {0.57, 34.56},
	"Busia":           {0.46, 34.11},
	"Elgeyo-Marakwet": {0.82, 35.47},
	"Embu":            {-0.54, 37.45},
	"Garissa":         {-0.45, 39.64},
	"Homa Bay":        {-0.53, 34.46},
	"Isiolo":          {0.35, 37.58},
	"Kajiado":         {-1.85, 36.78},
	"Kakamega":        {0.28, 34.75},
	"Kericho":         {-0.37, 35.28},
	"Kiambu":          {-1.17, 36.82},
	"Kilifi":          {-3.63, 39.85},
	"Kirinyaga":       {-0.50, 37.38},
	"Kisii":           {-0.68, 34.77},
	"Kisumu":          {-0.10, 34.76},
	"Kitui":           {-1.37, 38.01},
	"Kwale":           {-4.18, 39.45},
	"Laikipia":        {0.20, 36.72},
	"Lamu":            {-2.27, 40.90},
	"Machakos":        {-1.52, 37.26},
	"Makueni":         {-1.80, 37.62},
	"Mandera":         {3.94, 41.86},
	"Marsabit":        {2.33, 37.99},
	"Meru":            {-0.05, 37.65},
	"Migori":          {-1.06, 34.47},
	"Mombasa":         {-4.04, 39.67},
	"Murang'a":        {-0.72, 37.15},
	"Nairobi City":    {-1.29, 36.82},
	"Nakuru":          {-0.30, 36.08},
	"Nandi":           {-0.20, 35.12},
	"Narok":           {-1.08, 35.87},
	"Nyamira":         {-0.57, 34.95},
	"Nyandarua":       {-0.24, 36.52},
	"Nyeri":           {-0.42, 36.95},
	"Samburu":         {1.10, 36.67},
	"Siaya":           {-0.06, 34.29},
	"Taita-Taveta":    {-3.40, 38.36},
	"Tana River":      {-1.50, 39.90},
	"Tharaka-Nithi":   {-0.30, 37.65},
	"Trans Nzoia":     {1.00, 34.95},
	"Turkana":         {3.12, 35.60},
	"Uasin Gishu":     {0.52, 35.27},
	"Vihiga":          {-0.06, 34.72},
	"Wajir":           {1.75, 40.06},
	"West Pokot":      {1.24, 35.11},
}

var countyList = []string{
	"Baringo", "Bomet", "Bungoma", "Busia", "Elgeyo-Marakwet", "Embu", "Garissa",
	"Homa Bay", "Isiolo", "Kajiado", "Kakamega", "Kericho", "Kiambu", "Kilifi",
	"Kirinyaga", "Kisii", "Kisumu", "Kitui", "Kwale", "Laikipia", "Lamu",
	"Machakos", "Makueni", "Mandera", "Marsabit", "Meru", "Migori", "Mombasa",
	"Murang'a", "Nairobi City", "Nakuru", "Nandi", "Narok", "Nyamira",
	"Nyandarua", "Nyeri", "Samburu", "Siaya", "Taita-Taveta", "Tana River",
	"Tharaka-Nithi", "Trans Nzoia", "Turkana", "Uasin Gishu", "Vihiga",
	"Wajir", "West Pokot",
}

// Coordinates returns the latitude and longitude for a county name. Names
// outside the county set resolve to the Nairobi fallback rather than failing.
func Coordinates(county string) (lat, lon float64) {
	p, ok := countyCoords[county]
	if !ok {
		p = nairobiFallback
	}
	return p.Lat, p.Lon
}

// Known reports whether the name is one of the 47 counties.
func Known(county string) bool {
	_, ok := countyCoords[county]
	return ok
}

// Counties returns the county names in display order.
func Counties() []string {
	out := make([]string, len(countyList))
	copy(out, countyList)
	return out
}
