package review

import (
	"errors"
	"strconv"

	"go-unionreg/internal/features/approval"
	"go-unionreg/internal/features/chain"
	"go-unionreg/internal/features/quorum"
	"go-unionreg/internal/features/validation"
	"go-unionreg/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReviewController struct {
	coordinator *Coordinator
}

func NewReviewController(coordinator *Coordinator) *ReviewController {
	return &ReviewController{coordinator: coordinator}
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSubmissionNotFound),
		errors.Is(err, approval.ErrInstanceNotFound),
		errors.Is(err, validation.ErrIssueNotFound),
		errors.Is(err, chain.ErrUnknownWorkflowType):
		return fiber.StatusNotFound
	case errors.Is(err, approval.ErrInvalidStepOrder),
		errors.Is(err, approval.ErrInstanceTerminated),
		errors.Is(err, approval.ErrConcurrentModification),
		errors.Is(err, approval.ErrChainMismatch),
		errors.Is(err, ErrReviewAlreadyStarted),
		errors.Is(err, ErrReviewNotStarted):
		return fiber.StatusConflict
	case errors.Is(err, approval.ErrUnauthorizedAuthority):
		return fiber.StatusForbidden
	case errors.Is(err, ErrSubmissionNotReviewable),
		errors.Is(err, ErrQuorumNotMet),
		errors.Is(err, ErrInvalidSubmission),
		errors.Is(err, approval.ErrInvalidDecision),
		errors.Is(err, validation.ErrInvalidIssue),
		errors.Is(err, validation.ErrUnreadableFile),
		errors.Is(err, quorum.ErrInvalidInput):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(ctx *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}

	var notReviewable *NotReviewableError
	if errors.As(err, &notReviewable) {
		body["issues"] = notReviewable.Issues
	}
	var inputErr *quorum.InputError
	if errors.As(err, &inputErr) {
		body["field"] = inputErr.Field
	}
	return ctx.Status(statusFor(err)).JSON(body)
}

func identity(ctx *fiber.Ctx) (approval.Identity, bool) {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok {
		return approval.Identity{}, false
	}
	return approval.Identity{ID: claims.UserID, Role: claims.Role}, true
}

type CreateSubmissionInput struct {
	Kind         Kind     `json:"kind"`
	WorkflowType string   `json:"workflow_type"`
	Title        string   `json:"title"`
	UnionRef     string   `json:"union_ref"`
	Turnout      *Turnout `json:"turnout"`
}

// CreateSubmission godoc
// @Summary Register a submission
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body CreateSubmissionInput true "Submission"
// @Success 201 {object} Submission
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 422 {object} map[string]string "Invalid submission"
// @Router /api/submissions [post]
func (c *ReviewController) CreateSubmission(ctx *fiber.Ctx) error {
	var input CreateSubmissionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	actor, _ := identity(ctx)

	s := &Submission{
		Kind:         input.Kind,
		WorkflowType: input.WorkflowType,
		Title:        input.Title,
		UnionRef:     input.UnionRef,
		Turnout:      input.Turnout,
		SubmittedBy:  actor.ID,
	}
	if err := c.coordinator.RegisterSubmission(ctx.UserContext(), s); err != nil {
		if errors.Is(err, chain.ErrUnknownWorkflowType) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(s)
}

// GetReviewState godoc
// @Summary Get the review state of a submission
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} ReviewState
// @Failure 404 {object} map[string]string "Submission not found"
// @Router /api/submissions/{id}/review [get]
func (c *ReviewController) GetReviewState(ctx *fiber.Ctx) error {
	state, err := c.coordinator.GetReviewState(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(state)
}

// BeginReview godoc
// @Summary Start the approval chain for a submission
// @Tags submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 201 {object} approval.Instance
// @Failure 409 {object} map[string]string "Review already started"
// @Failure 422 {object} map[string]interface{} "Blocking validation issues"
// @Router /api/submissions/{id}/review [post]
func (c *ReviewController) BeginReview(ctx *fiber.Ctx) error {
	actor, _ := identity(ctx)
	inst, err := c.coordinator.BeginReview(ctx.UserContext(), ctx.Params("id"), actor)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"instance": inst,
		"status":   ProjectStatus(inst),
	})
}

type DecisionInput struct {
	StepIndex *int              `json:"step_index"`
	Decision  approval.Decision `json:"decision"`
	Comments  string            `json:"comments"`
}

// Decide godoc
// @Summary Record an authority decision
// @Description The caller's role must match the authority of the pending step
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param decision body DecisionInput true "Decision"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not the authority for this step"
// @Failure 409 {object} map[string]string "Wrong step or finished review"
// @Failure 422 {object} map[string]string "Quorum not met"
// @Router /api/submissions/{id}/decisions [post]
func (c *ReviewController) Decide(ctx *fiber.Ctx) error {
	var input DecisionInput
	if err := ctx.BodyParser(&input); err != nil || input.StepIndex == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	actor, ok := identity(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	inst, err := c.coordinator.Decide(ctx.UserContext(), ctx.Params("id"), *input.StepIndex, input.Decision, actor, input.Comments)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"instance": inst,
		"status":   ProjectStatus(inst),
	})
}

type AddIssueInput struct {
	AffectedItemRef string               `json:"affected_item_ref"`
	FieldName       string               `json:"field_name"`
	IssueType       validation.IssueType `json:"issue_type"`
	Severity        validation.Severity  `json:"severity"`
	Description     string               `json:"description"`
}

// AddIssue godoc
// @Summary Record a validation issue
// @Tags issues
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param issue body AddIssueInput true "Issue"
// @Success 201 {object} map[string]string
// @Router /api/submissions/{id}/issues [post]
func (c *ReviewController) AddIssue(ctx *fiber.Ctx) error {
	var input AddIssueInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	actor, _ := identity(ctx)

	id, err := c.coordinator.AddIssue(ctx.UserContext(), ctx.Params("id"), validation.Issue{
		AffectedItemRef: input.AffectedItemRef,
		FieldName:       input.FieldName,
		IssueType:       input.IssueType,
		Severity:        input.Severity,
		Description:     input.Description,
	}, actor.ID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListIssues godoc
// @Summary List validation issues of a submission
// @Tags issues
// @Produce json
// @Param id path string true "Submission ID"
// @Param severity query string false "warning or error"
// @Param resolved query bool false "Resolved flag"
// @Success 200 {array} validation.Issue
// @Router /api/submissions/{id}/issues [get]
func (c *ReviewController) ListIssues(ctx *fiber.Ctx) error {
	var filter validation.Filter
	if v := ctx.Query("severity"); v != "" {
		severity := validation.Severity(v)
		if !severity.Valid() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid severity"})
		}
		filter.Severity = &severity
	}
	if v := ctx.Query("resolved"); v != "" {
		resolved, err := strconv.ParseBool(v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resolved flag"})
		}
		filter.Resolved = &resolved
	}

	issues, err := c.coordinator.ListIssues(ctx.UserContext(), ctx.Params("id"), filter)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(issues)
}

// ResolveIssue godoc
// @Summary Mark a validation issue resolved
// @Description Resolving an already resolved issue succeeds
// @Tags issues
// @Param id path string true "Issue ID"
// @Success 200 {object} map[string]string
// @Router /api/issues/{id}/resolve [post]
func (c *ReviewController) ResolveIssue(ctx *fiber.Ctx) error {
	actor, _ := identity(ctx)
	if err := c.coordinator.ResolveIssue(ctx.UserContext(), ctx.Params("id"), actor.ID); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// ImportMembershipList godoc
// @Summary Import a membership list workbook
// @Tags issues
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Submission ID"
// @Param file formData file true "xlsx membership list"
// @Param declared_total formData int false "Declared member count"
// @Success 200 {object} validation.IngestReport
// @Router /api/submissions/{id}/import [post]
func (c *ReviewController) ImportMembershipList(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	declaredTotal := 0
	if v := ctx.FormValue("declared_total"); v != "" {
		declaredTotal, err = strconv.Atoi(v)
		if err != nil || declaredTotal < 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid declared_total"})
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open file"})
	}
	defer file.Close()

	actor, _ := identity(ctx)
	report, err := c.coordinator.ImportMembershipList(ctx.UserContext(), ctx.Params("id"), file, declaredTotal, actor.ID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(report)
}
