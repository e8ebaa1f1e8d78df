package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fakturio-inc/fakturio/internal/application/entitlement/usecases"
	"github.com/fakturio-inc/fakturio/internal/domain/entitlement"
	profilevo "github.com/fakturio-inc/fakturio/internal/domain/profile/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/shared/constants"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
	"github.com/fakturio-inc/fakturio/internal/shared/utils"
)

// AccessHandler exposes the entitlement decisions: feature access, module
// access and quota checks for the authenticated account.
type AccessHandler struct {
	checkFeatureUC *usecases.CheckFeatureAccessUseCase
	checkModuleUC  *usecases.CanAccessModuleUseCase
	checkQuotaUC   *usecases.CheckQuotaUseCase
	logger         logger.Interface
}

func NewAccessHandler(
	checkFeatureUC *usecases.CheckFeatureAccessUseCase,
	checkModuleUC *usecases.CanAccessModuleUseCase,
	checkQuotaUC *usecases.CheckQuotaUseCase,
	logger logger.Interface,
) *AccessHandler {
	return &AccessHandler{
		checkFeatureUC: checkFeatureUC,
		checkModuleUC:  checkModuleUC,
		checkQuotaUC:   checkQuotaUC,
		logger:         logger,
	}
}

type FeatureAccessResponse struct {
	Feature string `json:"feature"`
	Allowed bool   `json:"allowed"`
	Level   string `json:"level"`
	Reason  string `json:"reason,omitempty"`
}

type ModuleAccessResponse struct {
	Module          string `json:"module"`
	Allowed         bool   `json:"allowed"`
	Reason          string `json:"reason,omitempty"`
	UpgradeRequired bool   `json:"upgrade_required"`
	RequiredPlan    string `json:"required_plan,omitempty"`
}

type QuotaResponse struct {
	Quota       string    `json:"quota"`
	WithinLimit bool      `json:"within_limit"`
	Unlimited   bool      `json:"unlimited"`
	Limit       int64     `json:"limit"`
	Usage       int64     `json:"usage"`
	Remaining   int64     `json:"remaining"`
	CycleStart  time.Time `json:"cycle_start"`
}

func (h *AccessHandler) CheckFeature(c *gin.Context) {
	accountID := c.GetString(constants.ContextKeyAccountID)

	query := usecases.CheckFeatureAccessQuery{
		AccountID: accountID,
		Feature:   entitlement.FeatureKey(c.Param("feature")),
	}

	result, err := h.checkFeatureUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", FeatureAccessResponse{
		Feature: query.Feature.String(),
		Allowed: result.Allowed,
		Level:   result.Level.String(),
		Reason:  string(result.Reason),
	})
}

func (h *AccessHandler) CheckModule(c *gin.Context) {
	accountID := c.GetString(constants.ContextKeyAccountID)

	required := profilevo.PermissionViewOnly
	if raw := c.Query("permission"); raw != "" {
		required = profilevo.PermissionLevel(raw)
	}

	query := usecases.CanAccessModuleQuery{
		AccountID:          accountID,
		Module:             entitlement.ModuleKey(c.Param("module")),
		RequiredPermission: required,
	}

	result, err := h.checkModuleUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ModuleAccessResponse{
		Module:          query.Module.String(),
		Allowed:         result.Allowed,
		Reason:          string(result.Reason),
		UpgradeRequired: result.UpgradeRequired,
		RequiredPlan:    result.RequiredPlan.String(),
	})
}

func (h *AccessHandler) CheckQuota(c *gin.Context) {
	accountID := c.GetString(constants.ContextKeyAccountID)
	key := entitlement.QuotaKey(c.Param("quota"))

	result, err := h.checkQuotaUC.Execute(c.Request.Context(), accountID, key)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", QuotaResponse{
		Quota:       string(result.QuotaKey),
		WithinLimit: result.WithinLimit,
		Unlimited:   result.Unlimited,
		Limit:       result.Limit,
		Usage:       result.Usage,
		Remaining:   result.Remaining,
		CycleStart:  result.CycleStart,
	})
}
