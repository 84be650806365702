package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vibast-solutions/ms-go-services/app/entity"
	"github.com/vibast-solutions/ms-go-services/app/repository"
)

type createClientRequest interface {
	GetCompanyName() string
}

type clientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	FindByID(ctx context.Context, id uint64) (*entity.Client, error)
	List(ctx context.Context) ([]*entity.Client, error)
	Delete(ctx context.Context, id uint64) error
}

type ClientService struct {
	clientRepo clientRepository
}

func NewClientService(clientRepo clientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

func (s *ClientService) CreateClient(ctx context.Context, req createClientRequest) (*entity.Client, error) {
	name := strings.TrimSpace(req.GetCompanyName())
	if name == "" {
		return nil, fmt.Errorf("%w: company_name is required", ErrInvalidRequest)
	}
	if utf8.RuneCountInString(name) > entity.MaxCompanyNameLength {
		return nil, fmt.Errorf("%w: company_name must be at most %d characters", ErrInvalidRequest, entity.MaxCompanyNameLength)
	}

	now := time.Now().UTC()
	item := &entity.Client{
		CompanyName: name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.clientRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ClientService) GetClient(ctx context.Context, id uint64) (*entity.Client, error) {
	item, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrClientNotFound
	}
	return item, nil
}

func (s *ClientService) ListClients(ctx context.Context) ([]*entity.Client, error) {
	return s.clientRepo.List(ctx)
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint64) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrClientNotFound):
			return ErrClientNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrClientInUse
		default:
			return err
		}
	}
	return nil
}
