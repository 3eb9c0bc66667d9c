package domain

import "time"

type Influencer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	Platform    string    `json:"platform"`
	Subscribers int64     `json:"subscribers"`
	Price       float64   `json:"price"`
	Categories  []string  `json:"categories,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
