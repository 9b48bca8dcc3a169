package services

import (
	"errors"
	"sync"
	"time"

	"github.com/WinterOat/vault_service/internal/domain"
	"github.com/WinterOat/vault_service/internal/dto"
	"github.com/WinterOat/vault_service/internal/helper"
	"github.com/WinterOat/vault_service/internal/repository"
	"github.com/WinterOat/vault_service/internal/worker"
	"github.com/google/uuid"
)

const (
	GateActionView   = "view"
	GateActionEdit   = "edit"
	GateActionDelete = "delete"

	grantTTL = 2 * time.Minute
)

var (
	ErrInvalidAction = errors.New("unknown gate action")
	ErrNoChallenge   = errors.New("no password challenge in progress")
	ErrGrantInvalid  = errors.New("grant missing, expired or already used")
)

// pendingAction is the single tagged gate state per owner. Absence from the
// map means Idle; presence means AwaitingPassword with the chosen action.
type pendingAction struct {
	Action    string
	ProfileID uint
}

type grant struct {
	OwnerID   uint
	Action    string
	ProfileID uint
	ExpiresAt time.Time
}

type GateService interface {
	// Request always surfaces a password prompt, whether or not a master
	// password exists yet, for all three actions alike.
	Request(ownerID uint, action string, profileID uint) error
	SubmitPassword(ownerID uint, entered string) (dto.GateResult, error)
	Cancel(ownerID uint) error
	// Consume validates and burns a single-use grant before the handler
	// performs the gated action.
	Consume(ownerID uint, grantID string, action string, profileID uint) error
	BiometricAvailable() bool
}

type gateService struct {
	secrets    repository.SecretRepository
	profiles   repository.ProfileRepository
	audits     repository.AuditRepository
	dispatcher *worker.Dispatcher
	auth       helper.Auth
	biometric  bool

	mu      sync.Mutex
	pending map[uint]pendingAction
	grants  map[string]grant
	now     func() time.Time
}

func NewGateService(
	secrets repository.SecretRepository,
	profiles repository.ProfileRepository,
	audits repository.AuditRepository,
	dispatcher *worker.Dispatcher,
	auth helper.Auth,
	biometricAvailable bool,
) GateService {
	return &gateService{
		secrets:    secrets,
		profiles:   profiles,
		audits:     audits,
		dispatcher: dispatcher,
		auth:       auth,
		biometric:  biometricAvailable,
		pending:    make(map[uint]pendingAction),
		grants:     make(map[string]grant),
		now:        time.Now,
	}
}

func (g *gateService) BiometricAvailable() bool {
	return g.biometric
}

func (g *gateService) Request(ownerID uint, action string, profileID uint) error {
	switch action {
	case GateActionView, GateActionEdit, GateActionDelete:
	default:
		return ErrInvalidAction
	}

	profile, err := g.profiles.FindByID(profileID)
	if err != nil {
		return err
	}
	if profile.UserID != ownerID {
		return ErrNotOwner
	}

	g.mu.Lock()
	g.pending[ownerID] = pendingAction{Action: action, ProfileID: profileID}
	g.mu.Unlock()
	return nil
}

func (g *gateService) SubmitPassword(ownerID uint, entered string) (dto.GateResult, error) {
	g.mu.Lock()
	pending, ok := g.pending[ownerID]
	if !ok {
		g.mu.Unlock()
		return dto.GateResult{}, ErrNoChallenge
	}
	delete(g.pending, ownerID)
	g.mu.Unlock()

	digest, err := g.secrets.GetDigest()
	if errors.Is(err, repository.ErrNoMasterSecret) {
		// first-time setup: the entered value becomes the master password
		// and the pending action is dropped
		newDigest, err := g.auth.HashPassword(entered)
		if err != nil {
			return dto.GateResult{}, err
		}
		if err := g.secrets.SetDigest(newDigest); err != nil {
			return dto.GateResult{}, err
		}
		g.audit(ownerID, pending, domain.GateOutcomePasswordSet)
		return dto.GateResult{Outcome: domain.GateOutcomePasswordSet}, nil
	}
	if err != nil {
		return dto.GateResult{}, err
	}

	if g.auth.VerifyPassword(entered, digest) != nil {
		g.audit(ownerID, pending, domain.GateOutcomeDenied)
		return dto.GateResult{
			Outcome: domain.GateOutcomeDenied,
			Notice:  "invalid password",
		}, nil
	}

	grantID := uuid.NewString()
	g.mu.Lock()
	g.grants[grantID] = grant{
		OwnerID:   ownerID,
		Action:    pending.Action,
		ProfileID: pending.ProfileID,
		ExpiresAt: g.now().Add(grantTTL),
	}
	g.mu.Unlock()

	g.audit(ownerID, pending, domain.GateOutcomeGranted)
	return dto.GateResult{
		Outcome:   domain.GateOutcomeGranted,
		Action:    pending.Action,
		ProfileID: pending.ProfileID,
		GrantID:   grantID,
	}, nil
}

func (g *gateService) Cancel(ownerID uint) error {
	g.mu.Lock()
	pending, ok := g.pending[ownerID]
	delete(g.pending, ownerID)
	g.mu.Unlock()

	if ok {
		g.audit(ownerID, pending, domain.GateOutcomeCancelled)
	}
	return nil
}

func (g *gateService) Consume(ownerID uint, grantID string, action string, profileID uint) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	gr, ok := g.grants[grantID]
	if !ok {
		return ErrGrantInvalid
	}
	delete(g.grants, grantID)

	if gr.OwnerID != ownerID || gr.Action != action || gr.ProfileID != profileID {
		return ErrGrantInvalid
	}
	if g.now().After(gr.ExpiresAt) {
		return ErrGrantInvalid
	}
	return nil
}

func (g *gateService) audit(ownerID uint, pending pendingAction, outcome string) {
	entry := &domain.GateAudit{
		UserID:    ownerID,
		Action:    pending.Action,
		ProfileID: pending.ProfileID,
		Outcome:   outcome,
	}
	g.dispatcher.Submit(worker.Task{
		Name: "gate.audit",
		Run: func() error {
			return g.audits.Append(entry)
		},
	})
}
