package scan

// HealthStatus grades a scanned plant.
type HealthStatus string

const (
	Healthy  HealthStatus = "healthy"
	Warning  HealthStatus = "warning"
	Critical HealthStatus = "critical"
)

// Scan is an entry of the previous scans gallery.
type Scan struct {
	ID           string       `json:"id"`
	PlantName    string       `json:"plantName"`
	Date         string       `json:"date"`
	HealthStatus HealthStatus `json:"healthStatus"`
	ImageURL     string       `json:"imageUrl"`
}

// Seed provides the mocked gallery, newest first.
func Seed() []Scan {
	return []Scan{
		{ID: "1", PlantName: "Tomato Plant", Date: "2023-06-15", HealthStatus: Healthy, ImageURL: "https://images.unsplash.com/photo-1592841200221-a6898f307baa?w=400&q=80"},
		{ID: "2", PlantName: "Corn", Date: "2023-06-10", HealthStatus: Warning, ImageURL: "https://images.unsplash.com/photo-1554402100-8d1d9f3dff80?w=400&q=80"},
		{ID: "3", PlantName: "Wheat", Date: "2023-06-05", HealthStatus: Healthy, ImageURL: "https://images.unsplash.com/photo-1561978248-bffcdd0457ad?w=400&q=80"},
		{ID: "4", PlantName: "Soybean", Date: "2023-06-01", HealthStatus: Critical, ImageURL: "https://plus.unsplash.com/premium_photo-1671130295735-25af5e78d40c?w=400&q=80"},
		{ID: "5", PlantName: "Rice", Date: "2023-05-28", HealthStatus: Healthy, ImageURL: "https://plus.unsplash.com/premium_photo-1705338026411-00639520a438?w=400&q=80"},
	}
}

// Store exposes the gallery to HTTP handlers.
type Store interface {
	List() []Scan
	FindByID(id string) (Scan, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Scan
}

// NewMemoryStore returns a MemoryStore preloaded with items.
func NewMemoryStore(items []Scan) *MemoryStore {
	return &MemoryStore{items: append([]Scan(nil), items...)}
}

// List returns every scan.
func (s *MemoryStore) List() []Scan {
	return append([]Scan(nil), s.items...)
}

// FindByID looks up a scan by identifier.
func (s *MemoryStore) FindByID(id string) (Scan, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Scan{}, false
}
