package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/logger"
	"agrorent-backend/internal/repository"
)

type contactService struct {
	inquiryRepo repository.InquiryRepository
	profileRepo repository.ProfileRepository
	emailSvc    EmailService
	adminEmail  string
	log         *slog.Logger
}

func NewContactService(
	inquiryRepo repository.InquiryRepository,
	profileRepo repository.ProfileRepository,
	emailSvc EmailService,
	adminEmail string,
) ContactService {
	return &contactService{
		inquiryRepo: inquiryRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
		adminEmail:  adminEmail,
		log:         logger.WithService("contact"),
	}
}

func (s *contactService) SubmitInquiry(ctx context.Context, in InquiryInput) (*domain.Inquiry, error) {
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		return nil, domain.Validationf("a valid email address is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.Validationf("message is required")
	}

	inq := &domain.Inquiry{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Message:   strings.TrimSpace(in.Message),
	}
	if err := s.inquiryRepo.Create(ctx, inq); err != nil {
		return nil, domain.StoreErr("inquiry insert", err)
	}

	if s.adminEmail != "" {
		if err := s.emailSvc.SendInquiryNotification(ctx, s.adminEmail, inq); err != nil {
			s.log.Warn("inquiry forward failed", "inquiry_id", inq.ID, "error", err)
		}
	}
	return inq, nil
}

func (s *contactService) ListInquiries(ctx context.Context, callerID string, page, pageSize int32) ([]domain.Inquiry, int32, error) {
	caller, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, 0, domain.StoreErr("profile lookup", err)
	}
	if caller.Role != domain.RoleAdmin {
		return nil, 0, domain.ErrUnauthorized
	}
	inquiries, total, err := s.inquiryRepo.List(ctx, page, pageSize)
	return inquiries, total, domain.StoreErr("inquiry list", err)
}
