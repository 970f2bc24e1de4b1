package plant

// HealthStatus summarizes the last scan of a plant.
type HealthStatus string

const (
	Healthy  HealthStatus = "healthy"
	Moderate HealthStatus = "moderate"
	Poor     HealthStatus = "poor"
)

// Severity grades a common issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// GrowingConditions are the ideal conditions shown on the plant details tab.
type GrowingConditions struct {
	Light       string `json:"light" yaml:"light"`
	Water       string `json:"water" yaml:"water"`
	Temperature string `json:"temperature" yaml:"temperature"`
	Humidity    string `json:"humidity" yaml:"humidity"`
}

// Issue is a disease, pest or deficiency commonly affecting a plant.
type Issue struct {
	Name           string   `json:"name" yaml:"name"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Description    string   `json:"description" yaml:"description"`
	Solution       string   `json:"solution" yaml:"solution"`
	Treatment      string   `json:"treatment,omitempty" yaml:"treatment,omitempty"`
	PreventionTips []string `json:"preventionTips,omitempty" yaml:"preventionTips,omitempty"`
}

// Plant is a crop the assistant can talk about.
type Plant struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	HealthStatus HealthStatus      `json:"healthStatus" yaml:"healthStatus"`
	ImageURL     string            `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Growing      GrowingConditions `json:"growingConditions" yaml:"growingConditions"`
	Issues       []Issue           `json:"commonIssues,omitempty" yaml:"commonIssues,omitempty"`
}

// Seed provides the default crop catalog.
func Seed() []Plant {
	return []Plant{
		{
			ID:           "tomato-plant",
			Name:         "Tomato Plant",
			HealthStatus: Moderate,
			ImageURL:     "https://images.unsplash.com/photo-1592841200221-a6898f307baa?w=400&q=80",
			Growing:      defaultConditions(),
			Issues:       defaultIssues(),
		},
		{
			ID:           "corn",
			Name:         "Corn",
			HealthStatus: Moderate,
			Growing: GrowingConditions{
				Light:       "Full sun",
				Water:       "Deep watering once or twice a week",
				Temperature: "60-95°F (16-35°C)",
				Humidity:    "Moderate humidity",
			},
			Issues: defaultIssues(),
		},
		{
			ID:           "wheat",
			Name:         "Wheat",
			HealthStatus: Healthy,
			Growing: GrowingConditions{
				Light:       "Full sun",
				Water:       "Moderate, avoid waterlogging",
				Temperature: "54-77°F (12-25°C)",
				Humidity:    "Low to moderate humidity",
			},
			Issues: defaultIssues(),
		},
		{
			ID:           "soybean",
			Name:         "Soybean",
			HealthStatus: Poor,
			Growing: GrowingConditions{
				Light:       "Full sun",
				Water:       "Regular watering during flowering and pod fill",
				Temperature: "68-86°F (20-30°C)",
				Humidity:    "Moderate humidity",
			},
			Issues: defaultIssues(),
		},
		{
			ID:           "rice",
			Name:         "Rice",
			HealthStatus: Healthy,
			Growing: GrowingConditions{
				Light:       "Full sun",
				Water:       "Flooded or saturated soil",
				Temperature: "70-95°F (21-35°C)",
				Humidity:    "High humidity",
			},
			Issues: defaultIssues(),
		},
	}
}

func defaultConditions() GrowingConditions {
	return GrowingConditions{
		Light:       "Full sun to partial shade",
		Water:       "Regular watering, keep soil moist but not soggy",
		Temperature: "65-80°F (18-27°C)",
		Humidity:    "Medium to high humidity",
	}
}

func defaultIssues() []Issue {
	return []Issue{
		{
			Name:        "Early Blight",
			Severity:    SeverityHigh,
			Description: "Dark brown spots with concentric rings on lower leaves, which eventually turn yellow and drop.",
			Solution:    "Remove infected leaves. Ensure proper spacing between plants for air circulation.",
			Treatment:   "Apply copper-based fungicide every 7-10 days.",
			PreventionTips: []string{
				"Rotate crops annually",
				"Use disease-free seeds",
				"Avoid overhead irrigation",
			},
		},
		{
			Name:        "Aphid Infestation",
			Severity:    SeverityMedium,
			Description: "Small green or black insects clustering on stems and new growth, causing leaf curling.",
			Solution:    "Spray plants with strong water stream to dislodge aphids. Introduce beneficial insects.",
			Treatment:   "Apply insecticidal soap or neem oil solution.",
			PreventionTips: []string{
				"Plant companion crops like marigolds",
				"Maintain field hygiene",
				"Monitor regularly during growing season",
			},
		},
		{
			Name:        "Nutrient Deficiency",
			Severity:    SeverityLow,
			Description: "Yellowing between leaf veins, stunted growth, and poor fruit development.",
			Solution:    "Test soil pH and nutrient levels. Apply appropriate organic or synthetic fertilizers.",
			Treatment:   "Foliar application of micronutrients for quick absorption.",
			PreventionTips: []string{
				"Regular soil testing",
				"Crop rotation",
				"Use of quality compost",
			},
		},
	}
}
