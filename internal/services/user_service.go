package services

import (
	"errors"
	"strings"
	"time"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
	"dolpcrm/internal/utils"
)

type UserService interface {
	CreateWithPassword(user *models.User, plainPassword string) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListAll() ([]*models.User, error)
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	GetByRefreshToken(token string) (*models.User, error)
	RequestTelegramLink(userID int) (string, error)
}

type userService struct {
	repo *repositories.UserRepository
	auth AuthService
}

func NewUserService(repo *repositories.UserRepository, auth AuthService) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) CreateWithPassword(user *models.User, plainPassword string) error {
	if strings.TrimSpace(user.Email) == "" {
		return errors.New("email é obrigatório")
	}
	if strings.TrimSpace(plainPassword) == "" {
		return errors.New("senha é obrigatória")
	}
	hash, err := s.auth.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	id, err := s.repo.Create(user)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (s *userService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(strings.TrimSpace(email))
}

func (s *userService) ListAll() ([]*models.User, error) {
	return s.repo.ListAll()
}

func (s *userService) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	return s.repo.SaveRefreshToken(userID, token, expiresAt)
}

func (s *userService) GetByRefreshToken(token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(token)
}

// RequestTelegramLink issues a one-time code the user sends to the bot with
// /start to pair a chat.
func (s *userService) RequestTelegramLink(userID int) (string, error) {
	code, err := utils.NewRefreshToken(6)
	if err != nil {
		return "", err
	}
	if err := s.repo.CreateLinkCode(code, userID); err != nil {
		return "", err
	}
	return code, nil
}
