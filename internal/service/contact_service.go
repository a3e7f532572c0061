package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
	"github.com/ignatzorin/videocrew-backend/internal/validation"
)

// ContactRepository описывает хранилище заявок.
type ContactRepository interface {
	Create(ctx context.Context, inquiry *models.ContactInquiry) error
	GetByID(ctx context.Context, id string) (*models.ContactInquiry, error)
	List(ctx context.Context) ([]models.ContactInquiry, error)
	Update(ctx context.Context, id string, patch models.ContactPatch) (*models.ContactInquiry, error)
}

// ContactInput данные формы обратной связи.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService обрабатывает заявки с сайта.
type ContactService struct {
	repo   ContactRepository
	events EventPublisher
}

// NewContactService создаёт сервис заявок.
func NewContactService(repo ContactRepository, events EventPublisher) *ContactService {
	return &ContactService{repo: repo, events: publisherOrNoop(events)}
}

// Submit сохраняет новую заявку. Статус всегда new, заметки пустые.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactInquiry, error) {
	var errs validation.Errors
	errs.Check("name", validation.ValidateRequired("Name", in.Name, validation.MaxNameLength))
	errs.Check("email", validation.ValidateEmail(in.Email))
	errs.Check("subject", validation.ValidateRequired("Subject", in.Subject, validation.MaxSubjectLength))
	errs.Check("message", validation.ValidateRequired("Message", in.Message, validation.MaxMessageLength))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	inquiry := &models.ContactInquiry{
		Name:       strings.TrimSpace(in.Name),
		Email:      validation.NormalizeEmail(in.Email),
		Subject:    strings.TrimSpace(in.Subject),
		Message:    strings.TrimSpace(in.Message),
		Status:     models.ContactStatusNew,
		AdminNotes: "",
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, apperror.Internal(fmt.Errorf("contact service: %w", err))
	}

	logger.Log.WithField("inquiry_id", inquiry.ID).Info("contact service: новая заявка")
	s.events.Publish(EventContactCreated, inquiry)

	return inquiry, nil
}

// List возвращает заявки от новых к старым.
func (s *ContactService) List(ctx context.Context) ([]models.ContactInquiry, error) {
	inquiries, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("contact service: %w", err))
	}
	return inquiries, nil
}

// Get возвращает заявку по идентификатору.
func (s *ContactService) Get(ctx context.Context, id string) (*models.ContactInquiry, error) {
	if err := validation.ValidateObjectID(id); err != nil {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "id", Message: err.Error()}})
	}

	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapContactErr(err)
	}
	return inquiry, nil
}

// Update меняет статус и/или заметки администратора.
func (s *ContactService) Update(ctx context.Context, id string, patch models.ContactPatch) (*models.ContactInquiry, error) {
	var errs validation.Errors
	errs.Check("id", validation.ValidateObjectID(id))
	if patch.Status != nil {
		errs.Check("status", validation.ValidateContactStatus(*patch.Status))
	}
	if patch.AdminNotes != nil {
		patch.AdminNotes = trimmed(patch.AdminNotes)
		errs.Check("admin_notes", validation.ValidateLength("Admin notes", *patch.AdminNotes, 0, validation.MaxAdminNotesLength))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	var (
		inquiry *models.ContactInquiry
		err     error
	)
	if patch.IsEmpty() {
		inquiry, err = s.repo.GetByID(ctx, id)
	} else {
		inquiry, err = s.repo.Update(ctx, id, patch)
	}
	if err != nil {
		return nil, mapContactErr(err)
	}
	return inquiry, nil
}

func mapContactErr(err error) error {
	if errors.Is(err, repository.ErrContactInquiryNotFound) {
		return apperror.ErrContactInquiryNotFound
	}
	return apperror.Internal(fmt.Errorf("contact service: %w", err))
}
