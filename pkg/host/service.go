package host

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListHosts(ctx context.Context) ([]Host, error) {
	hosts, err := s.repo.ListHosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hosts: %w", err)
	}
	return hosts, nil
}

func (s *Service) GetHost(ctx context.Context, id string) (*Host, error) {
	return s.repo.GetHost(ctx, id)
}
