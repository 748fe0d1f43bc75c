package dataset

import "strings"

type column int

const (
	colMonth column = iota
	colVehicle
	colBrand
	colModel
	colGroup
	colTotalKm
	colLoadedKm
	colAverage
	colLoadedAverage
	numColumns
)

var unaccent = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ç", "c",
)

// headerAliases maps normalized header text to a column. The Portuguese
// headers of the fleet spreadsheet (with or without accents) are accepted
// alongside English names.
var headerAliases = map[string]column{
	"mes":                 colMonth,
	"month":               colMonth,
	"veiculo":             colVehicle,
	"vehicle":             colVehicle,
	"marca":               colBrand,
	"brand":               colBrand,
	"modelo":              colModel,
	"model":               colModel,
	"grupo":               colGroup,
	"group":               colGroup,
	"km rodado":           colTotalKm,
	"total distance":      colTotalKm,
	"km rodado carregado": colLoadedKm,
	"loaded distance":     colLoadedKm,
	"media":               colAverage,
	"average":             colAverage,
	"media carregado":     colLoadedAverage,
	"average loaded":      colLoadedAverage,

	// field names of an encoded types.RawRecord
	"total_distance":     colTotalKm,
	"loaded_distance":    colLoadedKm,
	"average_raw":        colAverage,
	"average_loaded_raw": colLoadedAverage,
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(unaccent.Replace(strings.ToLower(h))), " ")
}

// resolveColumns finds each column in the header row. When any column is
// missing the spreadsheet's fixed layout is assumed instead.
func resolveColumns(header []string) [numColumns]int {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		if c, ok := headerAliases[normalizeHeader(h)]; ok && idx[c] == -1 {
			idx[c] = i
		}
	}
	for _, i := range idx {
		if i == -1 {
			return positional()
		}
	}
	return idx
}

func positional() [numColumns]int {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// cell returns the trimmed value at the column's index, or "".
func cell(row []string, idx [numColumns]int, c column) string {
	i := idx[c]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
