package services

import (
	"testing"

	"github.com/WinterOat/vault_service/internal/dto"
	"github.com/WinterOat/vault_service/internal/helper"
	"github.com/stretchr/testify/assert"
)

func newUserFixture() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, helper.SetupAuth("test-secret")), repo
}

func TestRegisterAndLogin_Roundtrip(t *testing.T) {
	svc, _ := newUserFixture()

	err := svc.Register(dto.RegisterRequest{
		Email:       "Rahul@Example.com",
		Password:    "s3cret-pass",
		DisplayName: "Rahul",
	})
	assert.NoError(t, err)

	user, err := svc.Login(dto.UserLogin{Email: "rahul@example.com", Password: "s3cret-pass"})
	assert.NoError(t, err)
	assert.Equal(t, "rahul@example.com", user.Email)

	_, err = svc.Login(dto.UserLogin{Email: "rahul@example.com", Password: "wrong"})
	assert.Error(t, err)
}

func TestRegister_RejectsBadInputs(t *testing.T) {
	svc, _ := newUserFixture()

	assert.Error(t, svc.Register(dto.RegisterRequest{Email: "", Password: "s3cret", DisplayName: "x"}))
	assert.Error(t, svc.Register(dto.RegisterRequest{Email: "not-an-email", Password: "s3cret-pass", DisplayName: "x"}))
	assert.Error(t, svc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "short", DisplayName: "x"}))
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture()

	req := dto.RegisterRequest{Email: "a@b.com", Password: "s3cret-pass", DisplayName: "x"}
	assert.NoError(t, svc.Register(req))
	assert.Error(t, svc.Register(req))
}
