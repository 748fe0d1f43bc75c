package types

// RawRecord is one spreadsheet row as delivered by a data source, before the
// locale formatted averages are parsed.
type RawRecord struct {
	Month            string  `json:"month"`
	Vehicle          string  `json:"vehicle"`
	Brand            string  `json:"brand"`
	Model            string  `json:"model"`
	Group            string  `json:"group"`
	TotalDistance    float64 `json:"total_distance"`
	LoadedDistance   float64 `json:"loaded_distance"`
	AverageRaw       string  `json:"average_raw"`
	AverageLoadedRaw string  `json:"average_loaded_raw"`
}

// Record is the normalized monthly performance of one vehicle.
// Records are values: nothing in this module mutates one after it is built.
type Record struct {
	RawRecord
	AverageNum       float64 `json:"average_num"`
	AverageLoadedNum float64 `json:"average_loaded_num"`
}

// VehicleInfo carries the categorical attributes of a vehicle.
type VehicleInfo struct {
	Vehicle string `json:"vehicle"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Group   string `json:"group"`
}

// Info returns the categorical attributes of the record's vehicle.
func (r Record) Info() VehicleInfo {
	return VehicleInfo{Vehicle: r.Vehicle, Brand: r.Brand, Model: r.Model, Group: r.Group}
}
