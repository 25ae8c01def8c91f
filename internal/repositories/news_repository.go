package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"dolpcrm/internal/models"
)

type NewsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(n *models.NewsItem) (int, error) {
	if n.FetchedAt.IsZero() {
		n.FetchedAt = time.Now()
	}
	var id int
	err := r.db.QueryRow(
		`INSERT INTO crm_noticias (cliente_id, titulo, resumo, url, fonte, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		n.ClienteID, n.Titulo, n.Resumo, n.URL, n.Fonte, n.FetchedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("gravando notícia: %w", err)
	}
	return id, nil
}

func (r *NewsRepository) ListByClient(clienteID, limit int) ([]models.NewsItem, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := r.db.Query(
		`SELECT id, cliente_id, COALESCE(titulo, ''), COALESCE(resumo, ''),
		        COALESCE(url, ''), COALESCE(fonte, ''), fetched_at
		 FROM crm_noticias WHERE cliente_id=$1
		 ORDER BY fetched_at DESC, id DESC LIMIT $2`,
		clienteID, limit)
	if err != nil {
		return nil, fmt.Errorf("listando notícias: %w", err)
	}
	defer rows.Close()

	var out []models.NewsItem
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(&n.ID, &n.ClienteID, &n.Titulo, &n.Resumo, &n.URL, &n.Fonte, &n.FetchedAt); err != nil {
			return nil, fmt.Errorf("lendo notícia: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ExistsURL reports whether a headline URL was already stored for a client,
// so repeated fetches do not duplicate items.
func (r *NewsRepository) ExistsURL(clienteID int, url string) (bool, error) {
	var one int
	err := r.db.QueryRow(
		`SELECT 1 FROM crm_noticias WHERE cliente_id=$1 AND url=$2 LIMIT 1`,
		clienteID, url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("verificando notícia duplicada: %w", err)
	}
	return true, nil
}
