package insight

// Trend is the direction of a price since the last update.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// CropPrice is one row of the market widget.
type CropPrice struct {
	Crop   string  `json:"crop"`
	Price  float64 `json:"price"`
	Unit   string  `json:"unit"`
	Trend  Trend   `json:"trend"`
	Change float64 `json:"change"`
}

// MarketReport is the mocked market price widget.
type MarketReport struct {
	Updated string      `json:"updated"`
	Prices  []CropPrice `json:"prices"`
	Advice  string      `json:"advice"`
}

// Market returns the fixed market snapshot.
func Market() MarketReport {
	return MarketReport{
		Updated: "Updated today",
		Prices: []CropPrice{
			{Crop: "Tomatoes", Price: 1.25, Unit: "kg", Trend: TrendUp, Change: 0.15},
			{Crop: "Maize", Price: 0.45, Unit: "kg", Trend: TrendDown, Change: 0.05},
			{Crop: "Beans", Price: 2.1, Unit: "kg", Trend: TrendUp, Change: 0.2},
			{Crop: "Cabbage", Price: 0.75, Unit: "head", Trend: TrendStable, Change: 0},
		},
		Advice: "Tomato prices trending up due to seasonal demand. Consider harvesting now for maximum profit.",
	}
}
