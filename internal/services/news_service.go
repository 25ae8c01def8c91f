package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
)

// NewsService aggregates headlines about registered clients from an external
// search API on a timer. It shares no state with the pricing or pipeline
// paths; a failed fetch only logs.
type NewsService struct {
	Clients  *repositories.ClientRepository
	News     *repositories.NewsRepository
	apiURL   string
	apiKey   string
	client   *http.Client
	Interval time.Duration
}

func NewNewsService(clients *repositories.ClientRepository, news *repositories.NewsRepository, apiURL, apiKey string, interval time.Duration) *NewsService {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &NewsService{
		Clients:  clients,
		News:     news,
		apiURL:   apiURL,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 20 * time.Second},
		Interval: interval,
	}
}

type searchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Source  string `json:"source"`
	} `json:"organic"`
}

// Run fetches news for every client at each tick until the context ends.
func (s *NewsService) Run(ctx context.Context) {
	if s.apiURL == "" || s.apiKey == "" {
		logrus.Info("busca de notícias desabilitada (API não configurada)")
		return
	}
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *NewsService) sweep(ctx context.Context) {
	clients, err := s.Clients.ListAll()
	if err != nil {
		logrus.WithError(err).Error("falha ao listar clientes para busca de notícias")
		return
	}
	for _, c := range clients {
		if ctx.Err() != nil {
			return
		}
		stored, err := s.FetchForClient(ctx, c)
		if err != nil {
			logrus.WithError(err).WithField("cliente", c.NomeEmpresa).
				Warn("falha ao buscar notícias")
			continue
		}
		if stored > 0 {
			logrus.WithFields(logrus.Fields{"cliente": c.NomeEmpresa, "novas": stored}).
				Info("notícias atualizadas")
		}
	}
}

// FetchForClient queries the search API for one client and stores headlines
// not seen before. It returns how many new items were stored.
func (s *NewsService) FetchForClient(ctx context.Context, c *models.Client) (int, error) {
	payload, _ := json.Marshal(map[string]any{
		"q":  fmt.Sprintf("%q notícias energia", c.NomeEmpresa),
		"gl": "br",
		"hl": "pt-br",
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("consultando API de notícias: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API de notícias respondeu status=%d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("decodificando resposta de notícias: %w", err)
	}

	stored := 0
	for _, item := range parsed.Organic {
		if item.Link == "" {
			continue
		}
		exists, err := s.News.ExistsURL(c.ID, item.Link)
		if err != nil {
			return stored, err
		}
		if exists {
			continue
		}
		if _, err := s.News.Create(&models.NewsItem{
			ClienteID: c.ID,
			Titulo:    item.Title,
			Resumo:    item.Snippet,
			URL:       item.Link,
			Fonte:     item.Source,
		}); err != nil {
			return stored, err
		}
		stored++
	}
	return stored, nil
}

func (s *NewsService) ListByClient(clienteID, limit int) ([]models.NewsItem, error) {
	return s.News.ListByClient(clienteID, limit)
}
