package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/hacksavvy/internal/auth"
	"github.com/festy23/hacksavvy/internal/config"
	"github.com/festy23/hacksavvy/internal/storage"
	teamModel "github.com/festy23/hacksavvy/internal/team/model"
	"github.com/festy23/hacksavvy/internal/team/repository"
)

// RegistrationService validates and persists team applications with their payment proof.
type RegistrationService interface {
	// Submit creates the caller's application in pending status.
	Submit(ctx context.Context, identity *auth.Identity, req *teamModel.RegisterRequest, proof *teamModel.ProofFile) (*teamModel.SubmitResult, error)

	// Resubmit overwrites the caller's rejected application and returns it to pending.
	Resubmit(ctx context.Context, identity *auth.Identity, req *teamModel.RegisterRequest, proof *teamModel.ProofFile) (*teamModel.SubmitResult, error)

	// Options describes the registration form constraints.
	Options() teamModel.Options
}

type registrationService struct {
	repo         repository.Repository
	db           *gorm.DB
	store        storage.ObjectStore
	notifier     Notifier
	maxProofSize int64
	registration config.RegistrationConfig
	logger       *zap.SugaredLogger
	now          Clock
}

// NewRegistrationService creates a new registration service instance.
func NewRegistrationService(
	repo repository.Repository,
	db *gorm.DB,
	store storage.ObjectStore,
	notifier Notifier,
	storageCfg config.StorageConfig,
	registrationCfg config.RegistrationConfig,
	logger *zap.SugaredLogger,
) RegistrationService {
	return &registrationService{
		repo:         repo,
		db:           db,
		store:        store,
		notifier:     notifier,
		maxProofSize: storageCfg.MaxProofSize,
		registration: registrationCfg,
		logger:       logger,
		now:          utcNow,
	}
}

// Options describes the registration form constraints.
func (s *registrationService) Options() teamModel.Options {
	return teamModel.Options{
		Tracks:            teamModel.Tracks,
		DietPreferences:   teamModel.DietPreferences,
		MinTeamSize:       teamModel.MinTeamSize,
		MaxTeamSize:       teamModel.MaxTeamSize,
		MaxProofSizeBytes: s.maxProofSize,
		ProofContentTypes: teamModel.ProofContentTypes,
		ResubmissionMode:  s.registration.ResubmissionMode,
	}
}

// Submit validates the payload and proof, uploads the proof, inserts the row
// and sends the "received" notification to every member.
func (s *registrationService) Submit(
	ctx context.Context,
	identity *auth.Identity,
	req *teamModel.RegisterRequest,
	proof *teamModel.ProofFile,
) (result *teamModel.SubmitResult, err error) {
	defer recoverPanic(s.logger, "submit", &err)

	info, err := s.prepare(identity, req, proof)
	if err != nil {
		return nil, err
	}

	if _, lookupErr := s.repo.GetByLeader(ctx, identity.UserID); lookupErr == nil {
		return nil, teamModel.ErrAlreadyRegistered
	} else if !errors.Is(lookupErr, teamModel.ErrApplicationNotFound) {
		return nil, persistenceError("lookup leader application", lookupErr)
	}

	objectPath, url, err := s.upload(ctx, identity, proof, info)
	if err != nil {
		return nil, err
	}

	now := s.now()
	team := &teamModel.Team{
		ID:                   uuid.New(),
		LeaderUserID:         identity.UserID,
		TeamName:             req.TeamName,
		Track:                req.Track,
		MembersData:          req.MembersData(),
		TransactionID:        req.TransactionID,
		PaymentScreenshotURL: &url,
		AccommodationNeeded:  req.Accommodation,
		PaymentStatus:        teamModel.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, team); err != nil {
		s.discardUpload(ctx, objectPath)
		return nil, persistenceError("create application", err)
	}

	s.logger.Infow("application submitted",
		"application_id", team.ID,
		"leader_user_id", team.LeaderUserID,
		"team_size", team.Size(),
	)

	return &teamModel.SubmitResult{
		Application:      teamModel.NewApplicationResponse(team),
		NotificationSent: s.notifyReceived(ctx, team),
	}, nil
}

// Resubmit replaces a rejected application's details and proof.
func (s *registrationService) Resubmit(
	ctx context.Context,
	identity *auth.Identity,
	req *teamModel.RegisterRequest,
	proof *teamModel.ProofFile,
) (result *teamModel.SubmitResult, err error) {
	defer recoverPanic(s.logger, "resubmit", &err)

	if identity == nil {
		return nil, teamModel.ErrUnauthorized
	}
	if !s.registration.ResubmissionEnabled() {
		return nil, teamModel.ErrResubmissionDisabled
	}

	info, err := s.prepare(identity, req, proof)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		return nil, persistenceError("lookup leader application", err)
	}
	if existing.PaymentStatus != teamModel.StatusRejected {
		return nil, fmt.Errorf("%w: application is %s", teamModel.ErrInvalidTransition, existing.PaymentStatus)
	}

	objectPath, url, err := s.upload(ctx, identity, proof, info)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var updated *teamModel.Team
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		ok, txErr := txRepo.Resubmit(ctx, existing.ID, repository.ResubmitFields{
			TeamName:             req.TeamName,
			Track:                req.Track,
			MembersData:          req.MembersData(),
			TransactionID:        req.TransactionID,
			PaymentScreenshotURL: url,
			AccommodationNeeded:  req.Accommodation,
		}, now)
		if txErr != nil {
			return txErr
		}
		if !ok {
			return fmt.Errorf("%w: application is no longer rejected", teamModel.ErrInvalidTransition)
		}

		if txErr = txRepo.RecordReviewEvent(ctx, &teamModel.ReviewEvent{
			TeamID:     existing.ID,
			ActorEmail: identity.Email,
			FromStatus: teamModel.StatusRejected,
			ToStatus:   teamModel.StatusPending,
			CreatedAt:  now,
		}); txErr != nil {
			return txErr
		}

		updated, txErr = txRepo.GetByID(ctx, existing.ID)
		return txErr
	})
	if err != nil {
		s.discardUpload(ctx, objectPath)
		return nil, persistenceError("resubmit application", err)
	}

	if existing.PaymentScreenshotURL != nil {
		if oldPath, ok := storage.ObjectPath(s.store, *existing.PaymentScreenshotURL); ok && oldPath != objectPath {
			s.discardUpload(ctx, oldPath)
		}
	}

	s.logger.Infow("application resubmitted", "application_id", updated.ID, "leader_user_id", updated.LeaderUserID)

	return &teamModel.SubmitResult{
		Application:      teamModel.NewApplicationResponse(updated),
		NotificationSent: s.notifyReceived(ctx, updated),
	}, nil
}

// prepare checks identity, normalizes and validates the payload, then the proof.
func (s *registrationService) prepare(
	identity *auth.Identity,
	req *teamModel.RegisterRequest,
	proof *teamModel.ProofFile,
) (teamModel.ProofInfo, error) {
	if identity == nil {
		return teamModel.ProofInfo{}, teamModel.ErrUnauthorized
	}
	if req == nil {
		return teamModel.ProofInfo{}, teamModel.NewValidationError("data", "registration details are required")
	}

	req.Normalize()
	if strings.TrimSpace(req.Leader.Email) == "" {
		req.Leader.Email = identity.Email
	}
	if err := req.Validate(); err != nil {
		return teamModel.ProofInfo{}, err
	}
	return teamModel.ValidateProof(proof, s.maxProofSize)
}

func (s *registrationService) upload(
	ctx context.Context,
	identity *auth.Identity,
	proof *teamModel.ProofFile,
	info teamModel.ProofInfo,
) (string, string, error) {
	objectPath := storage.ProofPath(identity.UserID, info.Extension)
	url, err := s.store.Upload(ctx, objectPath, info.ContentType, proof.Data)
	if err != nil {
		s.logger.Errorw("payment proof upload failed", "leader_user_id", identity.UserID, "error", err)
		return "", "", fmt.Errorf("%w: %v", teamModel.ErrUpload, err)
	}
	return objectPath, url, nil
}

// discardUpload removes a proof no row points to, best effort.
func (s *registrationService) discardUpload(ctx context.Context, objectPath string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), objectPath); err != nil {
		s.logger.Warnw("failed to remove unreferenced payment proof", "path", objectPath, "error", err)
	}
}

func (s *registrationService) notifyReceived(ctx context.Context, team *teamModel.Team) bool {
	if err := s.notifier.ApplicationReceived(ctx, teamSummary(team), recipients(team.MembersData)); err != nil {
		s.logger.Warnw("application received notification failed",
			"application_id", team.ID,
			"error", fmt.Errorf("%w: %v", teamModel.ErrMail, err),
		)
		return false
	}
	return true
}
