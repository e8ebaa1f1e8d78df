package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fakturio-inc/fakturio/internal/application/subscription/usecases"
	"github.com/fakturio-inc/fakturio/internal/domain/subscription/valueobjects"
	"github.com/fakturio-inc/fakturio/internal/shared/constants"
	"github.com/fakturio-inc/fakturio/internal/shared/logger"
	"github.com/fakturio-inc/fakturio/internal/shared/utils"
)

// BillingHandler exposes the plan-change orchestrator over HTTP.
type BillingHandler struct {
	applyPlanChangeUC *usecases.ApplyPlanChangeUseCase
	logger            logger.Interface
}

func NewBillingHandler(applyPlanChangeUC *usecases.ApplyPlanChangeUseCase, logger logger.Interface) *BillingHandler {
	return &BillingHandler{
		applyPlanChangeUC: applyPlanChangeUC,
		logger:            logger,
	}
}

type ChangePlanRequest struct {
	Plan     string `json:"plan" validate:"required,oneof=starter pro"`
	Interval string `json:"interval" validate:"required,oneof=monthly yearly"`
}

type CancelSubscriptionRequest struct {
	Immediate bool `json:"immediate"`
}

type ScheduledChangeResponse struct {
	Plan        string    `json:"plan"`
	Interval    string    `json:"interval"`
	EffectiveAt time.Time `json:"effective_at"`
}

type SubscriptionResponse struct {
	ID                string                   `json:"id"`
	Status            string                   `json:"status"`
	Plan              string                   `json:"plan"`
	Interval          string                   `json:"interval"`
	CancelAtPeriodEnd bool                     `json:"cancel_at_period_end"`
	CurrentPeriodEnd  *time.Time               `json:"current_period_end,omitempty"`
	ScheduledChange   *ScheduledChangeResponse `json:"scheduled_change,omitempty"`
}

func (h *BillingHandler) ChangePlan(c *gin.Context) {
	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for plan change", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ApplyPlanChangeCommand{
		AccountID:      c.GetString(constants.ContextKeyAccountID),
		Action:         usecases.ActionUpdatePlan,
		TargetPlan:     valueobjects.PlanTier(req.Plan),
		TargetInterval: valueobjects.BillingInterval(req.Interval),
	}

	h.execute(c, cmd)
}

func (h *BillingHandler) CancelSubscription(c *gin.Context) {
	var req CancelSubscriptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for cancellation", "error", err)
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	cmd := usecases.ApplyPlanChangeCommand{
		AccountID:         c.GetString(constants.ContextKeyAccountID),
		Action:            usecases.ActionCancel,
		CancelImmediately: req.Immediate,
	}

	h.execute(c, cmd)
}

func (h *BillingHandler) ReactivateSubscription(c *gin.Context) {
	cmd := usecases.ApplyPlanChangeCommand{
		AccountID: c.GetString(constants.ContextKeyAccountID),
		Action:    usecases.ActionReactivate,
	}

	h.execute(c, cmd)
}

// SyncSubscription refreshes the local projection from the payment
// processor without changing anything on the processor side.
func (h *BillingHandler) SyncSubscription(c *gin.Context) {
	cmd := usecases.ApplyPlanChangeCommand{
		AccountID: c.GetString(constants.ContextKeyAccountID),
		Action:    usecases.ActionUpdateStatus,
	}

	h.execute(c, cmd)
}

func (h *BillingHandler) execute(c *gin.Context, cmd usecases.ApplyPlanChangeCommand) {
	result, err := h.applyPlanChangeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := SubscriptionResponse{
		ID:                result.ID,
		Status:            result.Status.String(),
		Plan:              result.Plan.String(),
		Interval:          result.Interval.String(),
		CancelAtPeriodEnd: result.CancelAtPeriodEnd,
		CurrentPeriodEnd:  result.CurrentPeriodEnd,
	}
	if change := result.ScheduledChange; change != nil {
		response.ScheduledChange = &ScheduledChangeResponse{
			Plan:        change.TargetPlan.String(),
			Interval:    change.TargetInterval.String(),
			EffectiveAt: change.EffectiveAt,
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", response)
}
