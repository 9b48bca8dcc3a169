package repository

import (
	"errors"

	"github.com/WinterOat/vault_service/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNoMasterSecret = errors.New("no master secret stored")

// SecretRepository holds the single app-wide master password digest,
// kept in its own table away from the profile records.
type SecretRepository interface {
	GetDigest() (string, error)
	SetDigest(digest string) error
}

type secretRepository struct {
	db *gorm.DB
}

func NewSecretRepository(db *gorm.DB) SecretRepository {
	return &secretRepository{db: db}
}

func (r *secretRepository) GetDigest() (string, error) {
	secret := &domain.MasterSecret{}
	if err := r.db.Order("id ASC").First(secret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoMasterSecret
		}
		logrus.WithError(err).Error("read master secret")
		return "", errors.New("failed to read master secret")
	}
	return secret.Digest, nil
}

func (r *secretRepository) SetDigest(digest string) error {
	if digest == "" {
		return errors.New("empty digest")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		existing := &domain.MasterSecret{}
		err := tx.Order("id ASC").First(existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&domain.MasterSecret{Digest: digest}).Error
		}
		if err != nil {
			return err
		}
		existing.Digest = digest
		return tx.Save(existing).Error
	})
}
