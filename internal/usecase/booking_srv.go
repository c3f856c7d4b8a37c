package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"amana-travel/internal/data/entity"
	"amana-travel/internal/data/repository"
	"amana-travel/internal/dto/request"
	"amana-travel/internal/dto/response"
	"amana-travel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// flowTTL bounds how long an unfinished booking flow is kept.
const flowTTL = 2 * time.Hour

type BookingService interface {
	OpenFlow(ctx context.Context, req *request.OpenBookingFlowRequest) (*response.BookingFlowResponse, error)
	Submit(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListForPackage(ctx context.Context, packageID string) ([]response.BookingResponse, error)
}

type flowStatus int

const (
	flowOpen flowStatus = iota
	flowSubmitting
	flowDone
)

// bookingFlow is one pass through the booking form. It accepts a single
// successful submission.
type bookingFlow struct {
	packageID   string
	packageType string
	openedAt    time.Time
	status      flowStatus
}

type bookingService struct {
	repo     repository.BookingRepository
	sessions SessionManager
	now      func() time.Time
	log      *zap.Logger

	mu    sync.Mutex
	flows map[uuid.UUID]*bookingFlow
}

func NewBookingService(repo repository.BookingRepository, sessions SessionManager, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		sessions: sessions,
		now:      time.Now,
		log:      log.With(zap.String("service", "booking")),
		flows:    make(map[uuid.UUID]*bookingFlow),
	}
}

func (s *bookingService) OpenFlow(ctx context.Context, req *request.OpenBookingFlowRequest) (*response.BookingFlowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	id := uuid.New()
	now := s.now()

	s.mu.Lock()
	s.pruneLocked(now)
	s.flows[id] = &bookingFlow{
		packageID:   req.PackageID,
		packageType: req.PackageType,
		openedAt:    now,
	}
	s.mu.Unlock()

	return &response.BookingFlowResponse{
		FlowID:      id.String(),
		PackageID:   req.PackageID,
		PackageType: req.PackageType,
		OpenedAt:    now,
	}, nil
}

func (s *bookingService) pruneLocked(now time.Time) {
	for id, f := range s.flows {
		if f.status != flowSubmitting && now.Sub(f.openedAt) > flowTTL {
			delete(s.flows, id)
		}
	}
}

// claim marks the flow as submitting. Only an open flow for the same
// package can be claimed.
func (s *bookingService) claim(flowID uuid.UUID, req *request.CreateBookingRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[flowID]
	if !ok {
		return utils.NewValidationError("Booking flow not found, please start again",
			map[string]string{"flow_id": "Unknown or expired booking flow"})
	}
	if f.packageID != req.PackageID || f.packageType != req.PackageType {
		return utils.NewValidationError("Booking flow belongs to another package",
			map[string]string{"package_id": "Does not match the booking flow"})
	}
	if f.status != flowOpen {
		return utils.NewValidationError("booking already submitted",
			map[string]string{"flow_id": "This booking has already been submitted"})
	}

	f.status = flowSubmitting
	return nil
}

func (s *bookingService) release(flowID uuid.UUID, status flowStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.flows[flowID]; ok {
		f.status = status
	}
}

// Submit validates locally, then sends one POST /bookings. Anonymous users
// are not stopped here: the server decides, and its answer comes back as an
// unauthenticated error.
func (s *bookingService) Submit(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking validation failed", zap.Any("errors", errs))
		return nil, utils.NewValidationError("Validation failed", errs)
	}

	flowID, err := uuid.Parse(req.FlowID)
	if err != nil {
		return nil, utils.NewValidationError("Validation failed",
			map[string]string{"flow_id": "Must be a valid UUID"})
	}
	if err := s.claim(flowID, req); err != nil {
		return nil, err
	}

	st, _, err := currentState(ctx, s.sessions)
	if err != nil {
		s.release(flowID, flowOpen)
		return nil, err
	}

	booking := &entity.Booking{
		PackageID:          req.PackageID,
		PackageType:        req.PackageType,
		NumberOfTravellers: entity.Travellers(strings.TrimSpace(string(req.NumberOfTravellers))),
		Client: entity.BookingClient{
			Name:    strings.TrimSpace(req.Client.Name),
			Email:   strings.TrimSpace(req.Client.Email),
			Phone:   strings.TrimSpace(req.Client.Phone),
			Address: strings.TrimSpace(req.Client.Address),
		},
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}
	if st.IsAuthenticated() {
		booking.UserID = st.User.ID
	}

	created, err := s.repo.Create(ctx, st.Token, booking)
	if err != nil {
		// failed submissions stay open so the user can retry explicitly
		s.release(flowID, flowOpen)

		switch utils.KindOf(err) {
		case utils.KindUnauthenticated:
			s.log.Warn("Booking rejected, sign-in required",
				zap.String("package_id", req.PackageID),
				zap.String("session_status", st.Status.String()))
		default:
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("package_id", req.PackageID))
		}
		return nil, err
	}

	s.release(flowID, flowDone)

	s.log.Info("Booking created",
		zap.String("booking_id", created.ID),
		zap.String("package_id", created.PackageID),
		zap.String("user_id", booking.UserID))

	resp := response.BookingToResponse(created)
	return &resp, nil
}

func (s *bookingService) ListForPackage(ctx context.Context, packageID string) ([]response.BookingResponse, error) {
	st, _, err := currentState(ctx, s.sessions)
	if err != nil {
		return nil, err
	}
	if !st.IsAuthenticated() {
		return nil, utils.NewUnauthenticatedError("Please sign in to see your bookings")
	}

	bookings, err := s.repo.ListForPackage(ctx, st.Token, st.User.ID, packageID)
	if err != nil {
		if utils.KindOf(err) != utils.KindUnauthenticated {
			s.log.Error("Failed to list bookings",
				zap.Error(err),
				zap.String("package_id", packageID))
		}
		return nil, err
	}

	out := make([]response.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, response.BookingToResponse(&bookings[i]))
	}
	return out, nil
}
