package services

import (
	"errors"
	"strings"

	"github.com/WinterOat/vault_service/internal/domain"
	"github.com/WinterOat/vault_service/internal/dto"
	"github.com/WinterOat/vault_service/internal/helper"
	"github.com/WinterOat/vault_service/internal/helper/utils"
	"github.com/WinterOat/vault_service/internal/repository"
)

type UserService interface {
	Register(input dto.RegisterRequest) error
	Login(input dto.UserLogin) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewUserService(repo repository.UserRepository, auth helper.Auth) UserService {
	return &userService{
		repo: repo,
		auth: auth,
	}
}

func (u *userService) Register(input dto.RegisterRequest) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	displayName := strings.TrimSpace(input.DisplayName)

	if email == "" || strings.TrimSpace(input.Password) == "" || displayName == "" {
		return errors.New("invalid inputs")
	}
	if _, err := utils.ExtractEmailDomain(email); err != nil {
		return errors.New("invalid email")
	}
	if len(input.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	existing, err := u.repo.FindUserByEmail(email)
	if err == nil && existing != nil && existing.ID != 0 {
		return errors.New("email already exists")
	}

	hashed, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return err
	}

	newUser := &domain.User{
		Email:        email,
		PasswordHash: hashed,
		DisplayName:  displayName,
		Phone:        input.Phone,
		Status:       "active",
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		return err
	}
	if usr == nil || usr.ID == 0 {
		return errors.New("failed to create user")
	}
	return nil
}

func (u *userService) Login(input dto.UserLogin) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if err := u.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, errors.New("invalid email or password")
	}
	return user, nil
}
