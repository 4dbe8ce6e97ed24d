package partners

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	partnerRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/partner"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/partners/models"
)

// maxNameLength ограничение длины имени партнёра
const maxNameLength = 200

// Service сервис для работы с партнёрами
type Service struct {
	partnerRepo PartnerRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса партнёров
func NewService(
	partnerRepo PartnerRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		partnerRepo: partnerRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create регистрирует партнёра в статусе pending
// До одобрения администратором партнёр не участвует в подборе
func (s *Service) Create(ctx context.Context, req *models.CreatePartnerRequest) (*models.PartnerResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	s.logger.Info("Create: registering partner email=%s", req.Email)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	partner, err := s.partnerRepo.Create(ctx, req.ToDomainPartner())
	if err != nil {
		if errors.Is(err, partnerRepo.ErrDuplicateEmail) {
			s.logger.Warn("Create: partner with email=%s already exists", req.Email)
			return nil, ErrPartnerAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: partner id=%d registered", partner.ID)
	return models.FromDomainPartner(partner), nil
}

// GetByID получает партнёра по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PartnerResponse, error) {
	partner, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPartner(partner), nil
}

// SetAvailability переключает доступность партнёра для новых назначений
func (s *Service) SetAvailability(ctx context.Context, partnerID int64, req *models.UpdateAvailabilityRequest) (*models.PartnerResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	s.logger.Info("SetAvailability: partner=%d availability=%t", partnerID, req.Availability)

	if err := s.partnerRepo.UpdateAvailability(ctx, partnerID, req.Availability); err != nil {
		return nil, s.mapRepoError("SetAvailability", partnerID, err)
	}

	return s.GetByID(ctx, partnerID)
}

// UpdateLocation сохраняет текущие координаты партнёра
func (s *Service) UpdateLocation(ctx context.Context, partnerID int64, req *models.UpdateLocationRequest) (*models.PartnerResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	point := domain.GeoPoint{Longitude: req.Longitude, Latitude: req.Latitude}
	if err := point.Validate(); err != nil {
		s.logger.Warn("UpdateLocation: invalid coordinates for partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("UpdateLocation: partner=%d lon=%.6f lat=%.6f", partnerID, point.Longitude, point.Latitude)

	if err := s.partnerRepo.UpdateLocation(ctx, partnerID, point); err != nil {
		return nil, s.mapRepoError("UpdateLocation", partnerID, err)
	}

	return s.GetByID(ctx, partnerID)
}

// Approve активирует партнёра
// Первое одобрение (pending -> active) сопровождается уведомлением
func (s *Service) Approve(ctx context.Context, partnerID int64) (*models.PartnerResponse, error) {
	s.logger.Info("Approve: partner=%d", partnerID)

	partner, err := s.load(ctx, "Approve", partnerID)
	if err != nil {
		return nil, err
	}

	if partner.Status == domain.PartnerActive {
		s.logger.Warn("Approve: partner=%d is already active", partnerID)
		return nil, fmt.Errorf("%w: partner is already active", ErrInvalidTransition)
	}

	if err := s.partnerRepo.UpdateStatus(ctx, partnerID, domain.PartnerActive); err != nil {
		return nil, s.mapRepoError("Approve", partnerID, err)
	}

	if partner.Status == domain.PartnerPending {
		payload := map[string]string{"partnerName": partner.Name}
		if err := s.notifier.Notify(ctx, partnerID, domain.NotificationPartnerApproved, 0, payload); err != nil {
			s.logger.Warn("Approve: failed to notify partner=%d: %v", partnerID, err)
		}
	}

	s.logger.Info("Approve: partner=%d is now active", partnerID)
	return s.GetByID(ctx, partnerID)
}

// Deactivate выводит партнёра из подбора
// Уже назначенные бронирования остаются за партнёром
func (s *Service) Deactivate(ctx context.Context, partnerID int64) (*models.PartnerResponse, error) {
	s.logger.Info("Deactivate: partner=%d", partnerID)

	partner, err := s.load(ctx, "Deactivate", partnerID)
	if err != nil {
		return nil, err
	}

	if partner.Status == domain.PartnerInactive {
		s.logger.Warn("Deactivate: partner=%d is already inactive", partnerID)
		return nil, fmt.Errorf("%w: partner is already inactive", ErrInvalidTransition)
	}

	if err := s.partnerRepo.UpdateStatus(ctx, partnerID, domain.PartnerInactive); err != nil {
		return nil, s.mapRepoError("Deactivate", partnerID, err)
	}

	return s.GetByID(ctx, partnerID)
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Partner, error) {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return partner, nil
}

func (s *Service) mapRepoError(op string, partnerID int64, err error) error {
	if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
		s.logger.Warn("%s: partner=%d not found", op, partnerID)
		return ErrPartnerNotFound
	}
	s.logger.Error("%s: repository error for partner=%d: %v", op, partnerID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateCreate(req *models.CreatePartnerRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, maxNameLength)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if (req.Longitude == nil) != (req.Latitude == nil) {
		return fmt.Errorf("%w: longitude and latitude must be set together", ErrInvalidInput)
	}
	if req.Longitude != nil {
		point := domain.GeoPoint{Longitude: *req.Longitude, Latitude: *req.Latitude}
		if err := point.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}
