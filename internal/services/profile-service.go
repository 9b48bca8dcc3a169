package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/WinterOat/vault_service/internal/domain"
	"github.com/WinterOat/vault_service/internal/dto"
	"github.com/WinterOat/vault_service/internal/helper"
	"github.com/WinterOat/vault_service/internal/interfaces"
	"github.com/WinterOat/vault_service/internal/repository"
	"github.com/WinterOat/vault_service/internal/watch"
	"github.com/WinterOat/vault_service/internal/worker"
	"github.com/WinterOat/vault_service/pkg/utils"
	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNoRequired      = errors.New("account number is required")
	ErrAccountTypeRequired    = errors.New("account type is required")
	ErrExternalUserIDRequired = errors.New("external user id is required")
	ErrBankCodeRequired       = errors.New("bank code is required")
	ErrDuplicateAccount       = errors.New("duplicate account number")
	ErrNotOwner               = errors.New("profile belongs to another user")
)

type ProfileService interface {
	ListProfiles(ownerID uint) (dto.ProfileListResponse, error)
	Subscribe(ownerID uint) (<-chan []dto.ProfileSummary, func())
	GetProfile(ownerID uint, profileID uint) (*dto.ProfileDetail, error)
	// SaveProfile validates the draft and, when it passes, enqueues the
	// insert (editingID 0) or update. The returned channel reports the
	// write's outcome; the REST layer never reads it.
	SaveProfile(ownerID uint, input dto.ProfileInput, editingID uint) (<-chan error, error)
	DeleteProfile(ownerID uint, profileID uint) (<-chan error, error)
	PurgeOwner(ownerID uint) error
}

type profileService struct {
	repo       repository.ProfileRepository
	dispatcher *worker.Dispatcher
	hub        *watch.Hub
	producer   interfaces.ProducerHandler
	biometric  bool
}

func NewProfileService(
	repo repository.ProfileRepository,
	dispatcher *worker.Dispatcher,
	hub *watch.Hub,
	producer interfaces.ProducerHandler,
	biometricAvailable bool,
) ProfileService {
	return &profileService{
		repo:       repo,
		dispatcher: dispatcher,
		hub:        hub,
		producer:   producer,
		biometric:  biometricAvailable,
	}
}

func (s *profileService) ListProfiles(ownerID uint) (dto.ProfileListResponse, error) {
	profiles, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return dto.ProfileListResponse{}, err
	}
	summaries := summarize(profiles)
	return dto.ProfileListResponse{
		Profiles:           summaries,
		Empty:              len(summaries) == 0,
		BiometricAvailable: s.biometric,
	}, nil
}

func (s *profileService) Subscribe(ownerID uint) (<-chan []dto.ProfileSummary, func()) {
	return s.hub.Subscribe(ownerID)
}

func (s *profileService) GetProfile(ownerID uint, profileID uint) (*dto.ProfileDetail, error) {
	profile, err := s.repo.FindByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return &dto.ProfileDetail{
		ID:              profile.ID,
		AccountNo:       profile.AccountNo,
		AccountType:     profile.AccountType,
		ExternalUserID:  profile.ExternalUserID,
		BankCode:        profile.BankCode,
		ProfilePassword: profile.ProfilePassword,
		MobilePIN:       profile.MobilePIN,
		UPIPIN:          profile.UPIPIN,
		ATMPIN:          profile.ATMPIN,
		LoginPassword:   profile.LoginPassword,
		MobileNumber:    profile.MobileNumber,
	}, nil
}

func (s *profileService) SaveProfile(ownerID uint, input dto.ProfileInput, editingID uint) (<-chan error, error) {
	draft := domain.BankProfile{
		UserID:          ownerID,
		AccountNo:       strings.TrimSpace(input.AccountNo),
		AccountType:     strings.TrimSpace(input.AccountType),
		ExternalUserID:  strings.TrimSpace(input.ExternalUserID),
		BankCode:        strings.TrimSpace(input.BankCode),
		ProfilePassword: input.ProfilePassword,
		MobilePIN:       input.MobilePIN,
		UPIPIN:          input.UPIPIN,
		ATMPIN:          input.ATMPIN,
		LoginPassword:   input.LoginPassword,
		MobileNumber:    input.MobileNumber,
	}

	switch {
	case draft.AccountNo == "":
		return nil, ErrAccountNoRequired
	case draft.AccountType == "":
		return nil, ErrAccountTypeRequired
	case draft.ExternalUserID == "":
		return nil, ErrExternalUserIDRequired
	case draft.BankCode == "":
		return nil, ErrBankCodeRequired
	}

	existing, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.ID != editingID && p.AccountNo == draft.AccountNo {
			return nil, ErrDuplicateAccount
		}
	}

	if editingID != 0 {
		current, err := s.repo.FindByID(editingID)
		if err != nil {
			return nil, err
		}
		if current.UserID != ownerID {
			return nil, ErrNotOwner
		}
		draft.ID = current.ID
		draft.CreatedAt = current.CreatedAt
	}

	done := make(chan error, 1)
	s.dispatcher.Submit(worker.Task{
		Name: "profile.save",
		Run: func() error {
			var err error
			event := "profile.updated"
			if draft.ID == 0 {
				event = "profile.created"
				err = s.repo.Create(&draft)
			} else {
				err = s.repo.Update(&draft)
			}
			if err != nil {
				if helper.IsDuplicateProfile(err) {
					return ErrDuplicateAccount
				}
				return err
			}
			s.afterWrite(ownerID, event, draft.ID, draft.BankCode)
			return nil
		},
		Done: done,
	})
	return done, nil
}

func (s *profileService) DeleteProfile(ownerID uint, profileID uint) (<-chan error, error) {
	profile, err := s.repo.FindByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != ownerID {
		return nil, ErrNotOwner
	}

	done := make(chan error, 1)
	s.dispatcher.Submit(worker.Task{
		Name: "profile.delete",
		Run: func() error {
			if err := s.repo.Delete(ownerID, profileID); err != nil {
				return err
			}
			s.afterWrite(ownerID, "profile.deleted", profileID, profile.BankCode)

			// the delete just transitioned the list to empty, so this
			// fires exactly once per transition
			remaining, err := s.repo.CountByOwner(ownerID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				s.publish(fmt.Sprintf("vault.empty:%d", ownerID), dto.VaultEmptyEvent{
					Event:  "vault.empty",
					UserID: ownerID,
				})
			}
			return nil
		},
		Done: done,
	})
	return done, nil
}

func (s *profileService) PurgeOwner(ownerID uint) error {
	if err := s.repo.DeleteByOwner(ownerID); err != nil {
		return err
	}
	s.hub.Publish(ownerID, nil)
	return nil
}

// afterWrite publishes the lifecycle event and pushes a fresh snapshot to
// the owner's list subscribers.
func (s *profileService) afterWrite(ownerID uint, event string, profileID uint, bankCode string) {
	s.publish(fmt.Sprintf("%s:%d", event, ownerID), dto.ProfileEvent{
		Event:     event,
		UserID:    ownerID,
		ProfileID: profileID,
		BankCode:  bankCode,
	})

	profiles, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		logrus.WithError(err).Error("refresh list snapshot")
		return
	}
	s.hub.Publish(ownerID, summarize(profiles))
}

func (s *profileService) publish(key string, event interface{}) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("marshal vault event")
		return
	}
	if err := s.producer.PublishMessage([]byte(key), payload); err != nil {
		logrus.WithError(err).Error("publish vault event")
	}
}

func summarize(profiles []domain.BankProfile) []dto.ProfileSummary {
	summaries := make([]dto.ProfileSummary, len(profiles))
	for i, p := range profiles {
		summaries[i] = dto.ProfileSummary{
			ID:              p.ID,
			MaskedAccountNo: utils.MaskAccountNumber(p.AccountNo),
			AccountType:     p.AccountType,
			BankCode:        p.BankCode,
			ExternalUserID:  p.ExternalUserID,
		}
	}
	return summaries
}
