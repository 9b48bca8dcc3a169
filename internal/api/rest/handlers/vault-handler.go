package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/WinterOat/vault_service/internal/api/rest/middleware"
	"github.com/WinterOat/vault_service/internal/dto"
	"github.com/WinterOat/vault_service/internal/helper"
	"github.com/WinterOat/vault_service/internal/helper/utils"
	"github.com/WinterOat/vault_service/internal/repository"
	"github.com/WinterOat/vault_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type VaultHandler struct {
	profiles services.ProfileService
	gate     services.GateService
}

func NewVaultHandler(profiles services.ProfileService, gate services.GateService) *VaultHandler {
	return &VaultHandler{
		profiles: profiles,
		gate:     gate,
	}
}

func (h *VaultHandler) SetupRoutes(app *fiber.App, auth helper.Auth) {
	vault := app.Group("/api/vault", middleware.AuthMiddleware(auth))

	vault.Get("/profiles", h.ListProfiles)
	vault.Get("/profiles/stream", h.StreamProfiles)
	vault.Post("/profiles", h.AddProfile)
	vault.Get("/profiles/:profileID", h.ViewProfile)
	vault.Put("/profiles/:profileID", h.EditProfile)
	vault.Delete("/profiles/:profileID", h.DeleteProfile)

	vault.Post("/gate", h.RequestGate)
	vault.Post("/gate/password", h.SubmitGatePassword)
	vault.Delete("/gate", h.CancelGate)
}

func ownerID(ctx *fiber.Ctx) (uint, bool) {
	id, ok := ctx.Locals("userID").(uint)
	return id, ok && id != 0
}

func (h *VaultHandler) ListProfiles(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	list, err := h.profiles.ListProfiles(owner)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

// StreamProfiles pushes the owner's masked list as server-sent events.
// One subscription per connection, torn down when the client goes away.
func (h *VaultHandler) StreamProfiles(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	initial, err := h.profiles.ListProfiles(owner)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	updates, cancel := h.profiles.Subscribe(owner)

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		if err := writeEvent(w, initial.Profiles); err != nil {
			return
		}
		for snapshot := range updates {
			if err := writeEvent(w, snapshot); err != nil {
				return
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, snapshot []dto.ProfileSummary) error {
	if snapshot == nil {
		snapshot = []dto.ProfileSummary{}
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func (h *VaultHandler) AddProfile(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var input dto.ProfileInput
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if _, err := h.profiles.SaveProfile(owner, input, 0); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusAccepted, "profile saved")
}

func (h *VaultHandler) ViewProfile(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	profileID, err := parseProfileID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid profile id")
	}

	grantID := ctx.Query("grant")
	if err := h.gate.Consume(owner, grantID, services.GateActionView, profileID); err != nil {
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	}

	detail, err := h.profiles.GetProfile(owner, profileID)
	if err != nil {
		return profileError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, detail)
}

func (h *VaultHandler) EditProfile(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	profileID, err := parseProfileID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid profile id")
	}

	var body struct {
		GrantID string `json:"grant_id"`
		dto.ProfileInput
	}
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.gate.Consume(owner, body.GrantID, services.GateActionEdit, profileID); err != nil {
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	}

	if _, err := h.profiles.SaveProfile(owner, body.ProfileInput, profileID); err != nil {
		return profileError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusAccepted, "profile saved")
}

func (h *VaultHandler) DeleteProfile(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	profileID, err := parseProfileID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid profile id")
	}

	grantID := ctx.Query("grant")
	if err := h.gate.Consume(owner, grantID, services.GateActionDelete, profileID); err != nil {
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	}

	if _, err := h.profiles.DeleteProfile(owner, profileID); err != nil {
		return profileError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusAccepted, "profile deleted")
}

func (h *VaultHandler) RequestGate(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.GateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.gate.Request(owner, req.Action, req.ProfileID); err != nil {
		if errors.Is(err, services.ErrInvalidAction) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return profileError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"status":              "awaiting_password",
		"biometric_available": h.gate.BiometricAvailable(),
	})
}

func (h *VaultHandler) SubmitGatePassword(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.GateSubmit
	if err := ctx.BodyParser(&req); err != nil || req.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "password is required")
	}

	result, err := h.gate.SubmitPassword(owner, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrNoChallenge) {
			return utils.ResponseError(ctx, fiber.StatusConflict, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *VaultHandler) CancelGate(ctx *fiber.Ctx) error {
	owner, ok := ownerID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.gate.Cancel(owner); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "gate cancelled")
}

func parseProfileID(ctx *fiber.Ctx) (uint, error) {
	raw := ctx.Params("profileID")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid profile id")
	}
	return uint(parsed), nil
}

func profileError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAccountNoRequired),
		errors.Is(err, services.ErrAccountTypeRequired),
		errors.Is(err, services.ErrExternalUserIDRequired),
		errors.Is(err, services.ErrBankCodeRequired),
		errors.Is(err, services.ErrDuplicateAccount):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
