package service

import (
	"errors"
	"strings"

	"github.com/studyhubapp/studyhub-backend/internal/models"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
)

type SubjectService struct {
	subjectRepo repository.SubjectRepositoryInterface
}

func NewSubjectService(subjectRepo repository.SubjectRepositoryInterface) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo}
}

func (s *SubjectService) Create(name, description string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("subject name is required")
	}

	subject := &models.Subject{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) List() ([]models.Subject, error) {
	return s.subjectRepo.FindAll()
}
