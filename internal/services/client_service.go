package services

import (
	"errors"
	"strings"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
)

type ClientService struct {
	Repo *repositories.ClientRepository
}

func NewClientService(repo *repositories.ClientRepository) *ClientService {
	return &ClientService{Repo: repo}
}

func (s *ClientService) Create(c *models.Client) error {
	if strings.TrimSpace(c.NomeEmpresa) == "" {
		return errors.New("nome da empresa é obrigatório")
	}
	if c.Status == "" {
		c.Status = models.ClientStatusNaoCadastrado
	}
	id, err := s.Repo.Create(c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (s *ClientService) Update(c *models.Client) error {
	current, err := s.Repo.GetByID(c.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return errors.New("cliente não encontrado")
	}
	return s.Repo.Update(c)
}

func (s *ClientService) GetByID(id int) (*models.Client, error) {
	return s.Repo.GetByID(id)
}

func (s *ClientService) ListAll() ([]*models.Client, error) {
	return s.Repo.ListAll()
}

func (s *ClientService) Delete(id int) error {
	return s.Repo.Delete(id)
}
