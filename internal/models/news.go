package models

import "time"

// NewsItem is one headline fetched for a client by the background news
// aggregator.
type NewsItem struct {
	ID        int       `json:"id"`
	ClienteID int       `json:"cliente_id"`
	Titulo    string    `json:"titulo"`
	Resumo    string    `json:"resumo"`
	URL       string    `json:"url"`
	Fonte     string    `json:"fonte"`
	FetchedAt time.Time `json:"fetched_at"`
}
