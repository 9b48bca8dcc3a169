package repository

import (
	"errors"

	"github.com/WinterOat/vault_service/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	ListByOwner(ownerID uint) ([]domain.BankProfile, error)
	FindByID(id uint) (*domain.BankProfile, error)
	Create(profile *domain.BankProfile) error
	Update(profile *domain.BankProfile) error
	Delete(ownerID uint, profileID uint) error
	CountByOwner(ownerID uint) (int64, error)
	DeleteByOwner(ownerID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ListByOwner(ownerID uint) ([]domain.BankProfile, error) {
	var profiles []domain.BankProfile
	if err := r.db.Where("user_id = ?", ownerID).Order("id ASC").Find(&profiles).Error; err != nil {
		logrus.WithError(err).Error("list profiles by owner")
		return nil, errors.New("failed to list profiles")
	}
	return profiles, nil
}

func (r *profileRepository) FindByID(id uint) (*domain.BankProfile, error) {
	profile := &domain.BankProfile{}
	if err := r.db.First(profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		logrus.WithError(err).Error("find profile by id")
		return nil, errors.New("failed to find profile")
	}
	return profile, nil
}

func (r *profileRepository) Create(profile *domain.BankProfile) error {
	if profile == nil {
		return errors.New("nil profile")
	}
	return r.db.Create(profile).Error
}

func (r *profileRepository) Update(profile *domain.BankProfile) error {
	if profile == nil || profile.ID == 0 {
		return errors.New("profile not persisted")
	}
	return r.db.Save(profile).Error
}

func (r *profileRepository) Delete(ownerID uint, profileID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", profileID, ownerID).Delete(&domain.BankProfile{})
	if res.Error != nil {
		logrus.WithError(res.Error).Error("delete profile")
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) CountByOwner(ownerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.BankProfile{}).Where("user_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *profileRepository) DeleteByOwner(ownerID uint) error {
	return r.db.Where("user_id = ?", ownerID).Delete(&domain.BankProfile{}).Error
}
