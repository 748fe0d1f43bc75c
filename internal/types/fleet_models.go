package types

// FleetStats are whole-fleet scalars. Best and Worst point at single records,
// not vehicles, and are nil for an empty collection.
type FleetStats struct {
	AvgLoadedAverage float64 `json:"avg_loaded_average"`
	TotalKm          float64 `json:"total_km"`
	TotalLoadedKm    float64 `json:"total_loaded_km"`
	TotalVehicles    int     `json:"total_vehicles"`
	AvgAverage       float64 `json:"avg_average"`
	Best             *Record `json:"best"`
	Worst            *Record `json:"worst"`
}

type ModelStat struct {
	Model         string  `json:"model"`
	Brand         string  `json:"brand"`
	LoadedAverage float64 `json:"loaded_average"`
	Count         int     `json:"count"`
}

type GroupStat struct {
	Group         string  `json:"group"`
	KmLoaded      float64 `json:"km_loaded"`
	LoadedAverage float64 `json:"loaded_average"`
}

type MonthStat struct {
	Month         string  `json:"month"`
	LoadedAverage float64 `json:"loaded_average"`
	KmLoaded      float64 `json:"km_loaded"`
}

type VehicleRank struct {
	VehicleInfo
	LoadedAverage float64 `json:"loaded_average"`
	Months        int     `json:"months"`
}
