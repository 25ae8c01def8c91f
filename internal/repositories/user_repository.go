package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"dolpcrm/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, COALESCE(nome, ''), email, password_hash, role_id,
	refresh_token, refresh_expires_at, refresh_revoked, telegram_chat_id`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.PasswordHash, &u.RoleID,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked, &u.TelegramChatID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *models.User) (int, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO users (nome, email, password_hash, role_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Nome, u.Email, u.PasswordHash, u.RoleID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("criando usuário: %w", err)
	}
	return id, nil
}

func (r *UserRepository) GetByID(id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando usuário por id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando usuário por email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ListAll() ([]*models.User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listando usuários: %w", err)
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("lendo usuário: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) SaveRefreshToken(userID int, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(
		`UPDATE users SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE WHERE id=$3`,
		token, expiresAt, userID,
	)
	if err != nil {
		return fmt.Errorf("gravando refresh token: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByRefreshToken(token string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE refresh_token=$1 AND NOT refresh_revoked`, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando usuário por refresh token: %w", err)
	}
	return u, nil
}

func (r *UserRepository) SetTelegramChatID(userID int, chatID int64) error {
	_, err := r.db.Exec(`UPDATE users SET telegram_chat_id=$1 WHERE id=$2`, chatID, userID)
	if err != nil {
		return fmt.Errorf("vinculando chat do telegram: %w", err)
	}
	return nil
}

// ListNotifiable returns users with a linked Telegram chat.
func (r *UserRepository) ListNotifiable() ([]*models.User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users WHERE telegram_chat_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("listando usuários notificáveis: %w", err)
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("lendo usuário notificável: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- Telegram link codes ---

func (r *UserRepository) CreateLinkCode(code string, userID int) error {
	_, err := r.db.Exec(
		`INSERT INTO telegram_link_codes (code, user_id) VALUES ($1, $2)
		 ON CONFLICT (code) DO UPDATE SET user_id=EXCLUDED.user_id, created_at=now()`,
		code, userID,
	)
	if err != nil {
		return fmt.Errorf("criando código de vínculo: %w", err)
	}
	return nil
}

// ConsumeLinkCode resolves a one-time link code to its user and deletes it.
func (r *UserRepository) ConsumeLinkCode(code string) (int, error) {
	var userID int
	err := r.db.QueryRow(
		`DELETE FROM telegram_link_codes WHERE code=$1 RETURNING user_id`, code,
	).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("consumindo código de vínculo: %w", err)
	}
	return userID, nil
}
