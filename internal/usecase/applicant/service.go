// Package applicant keeps applicant rows in step with the identity provider
// and serves the applicant's own profile.
package applicant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-portal/internal/domain/applicant"

	"go.uber.org/zap"
)

var (
	ErrInternal       = errors.New("internal error")
	ErrInvalidPayload = errors.New("invalid webhook payload")
	ErrEmailTaken     = errors.New("email already used by another applicant")
)

const (
	dedupKeyPrefix = "webhook:clerk:"
	dedupTTL       = 24 * time.Hour
)

// Deduper remembers webhook message ids. SetIfNotExists reports whether the
// key was newly stored; Delete releases a claim so the message can be retried.
type Deduper interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

type ProfileInput struct {
	Name      *string
	Email     *string
	ResumeURL *string
}

type Service struct {
	applicants applicant.Repository
	dedup      Deduper
	logger     *zap.Logger
}

func NewService(applicants applicant.Repository, dedup Deduper, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{applicants: applicants, dedup: dedup, logger: logger}
}

func (s *Service) Profile(ctx context.Context, externalID string) (applicant.Applicant, error) {
	a, err := s.applicants.GetOrCreate(ctx, externalID)
	if err != nil {
		return applicant.Applicant{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return a, nil
}

// UpdateProfile changes only the fields sent with a non-blank value.
func (s *Service) UpdateProfile(ctx context.Context, externalID string, in ProfileInput) (applicant.Applicant, error) {
	up := applicant.Upsert{
		ExternalID: externalID,
		Name:       nonBlank(in.Name),
		Email:      nonBlank(in.Email),
		ResumeURL:  nonBlank(in.ResumeURL),
	}
	if up.Email != nil {
		lower := strings.ToLower(*up.Email)
		up.Email = &lower
	}

	a, err := s.applicants.Upsert(ctx, up)
	if err != nil {
		if errors.Is(err, applicant.ErrEmailDuplicate) {
			return applicant.Applicant{}, ErrEmailTaken
		}
		return applicant.Applicant{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return a, nil
}

// HandleWebhook applies one verified identity-provider event. A message id that
// was already processed is acknowledged without touching the store. The id is
// only kept once the event has been applied.
func (s *Service) HandleWebhook(ctx context.Context, msgID string, payload []byte) error {
	ev, err := ParseEvent(payload)
	if err != nil {
		return err
	}

	claimed := ""
	if s.dedup != nil && msgID != "" {
		key := dedupKeyPrefix + msgID
		fresh, err := s.dedup.SetIfNotExists(ctx, key, ev.Type, dedupTTL)
		switch {
		case err != nil:
			s.logger.Warn("webhook dedup check failed", zap.String("msg_id", msgID), zap.Error(err))
		case !fresh:
			s.logger.Info("duplicate webhook ignored", zap.String("msg_id", msgID), zap.String("type", ev.Type))
			return nil
		default:
			claimed = key
		}
	}

	if err := s.apply(ctx, ev); err != nil {
		// A failed delivery is retried by the provider under the same id.
		if claimed != "" {
			if derr := s.dedup.Delete(context.WithoutCancel(ctx), claimed); derr != nil {
				s.logger.Warn("webhook dedup release failed", zap.String("msg_id", msgID), zap.Error(derr))
			}
		}
		return err
	}
	return nil
}

func (s *Service) apply(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventUserCreated, EventUserUpdated:
		up := ev.Data.upsert()
		if up.Email != nil {
			lower := strings.ToLower(*up.Email)
			up.Email = &lower
		}
		a, err := s.applicants.Upsert(ctx, up)
		if err != nil {
			if errors.Is(err, applicant.ErrEmailDuplicate) {
				// Keep the rest of the profile in sync when the address collides.
				up.Email = nil
				a, err = s.applicants.Upsert(ctx, up)
			}
			if err != nil {
				return fmt.Errorf("%w: upsert applicant: %v", ErrInternal, err)
			}
		}
		s.logger.Info("applicant synced", zap.String("type", ev.Type), zap.Int64("applicant_id", a.ID))
	case EventUserDeleted:
		removed, err := s.applicants.DeleteByExternalID(ctx, ev.Data.ID)
		if err != nil {
			return fmt.Errorf("%w: delete applicant: %v", ErrInternal, err)
		}
		s.logger.Info("applicant deleted", zap.String("external_id", ev.Data.ID), zap.Bool("existed", removed))
	default:
		s.logger.Info("webhook event ignored", zap.String("type", ev.Type))
	}
	return nil
}

func nonBlank(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
