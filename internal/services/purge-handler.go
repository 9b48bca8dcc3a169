package services

import (
	"encoding/json"
	"errors"

	"github.com/WinterOat/vault_service/internal/dto"
	"github.com/sirupsen/logrus"
)

// PurgeHandler reacts to account-service deletion events by removing every
// profile the departing owner stored.
type PurgeHandler struct {
	profiles ProfileService
}

func NewPurgeHandler(profiles ProfileService) *PurgeHandler {
	return &PurgeHandler{profiles: profiles}
}

func (h *PurgeHandler) HandleMessage(message string) error {
	var event dto.UserDeletedEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		return err
	}
	if event.Event != "user.deleted" {
		// other account events share the topic; nothing to do here
		return nil
	}
	if event.UserID == 0 {
		return errors.New("user.deleted event without user id")
	}

	logrus.WithField("user_id", event.UserID).Info("purging vault for deleted user")
	return h.profiles.PurgeOwner(event.UserID)
}
