package chat

import "time"

// Session captures a transient anonymous conversation about one plant.
type Session struct {
	ID        string    `json:"id"`
	PlantID   string    `json:"plantId,omitempty"`
	PlantName string    `json:"plantName"`
	CreatedAt time.Time `json:"createdAt"`
}
