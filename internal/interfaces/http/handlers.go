package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkulanga/cdf-workflow/internal/application/service"
	"github.com/mkulanga/cdf-workflow/internal/domain/entity"
	"github.com/mkulanga/cdf-workflow/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	registryService service.RegistryService
	workflowService service.WorkflowService
	historyService  service.HistoryService
	reportService   service.ReportService
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	registryService service.RegistryService,
	workflowService service.WorkflowService,
	historyService service.HistoryService,
	reportService service.ReportService,
	logger Logger,
) *Handlers {
	return &Handlers{
		registryService: registryService,
		workflowService: workflowService,
		historyService:  historyService,
		reportService:   reportService,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CreateProjectRequest is the payload for registering a project
type CreateProjectRequest struct {
	Code         string `json:"code" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Constituency string `json:"constituency" binding:"required"`
	AmountCents  int64  `json:"amount_cents" binding:"required"`
}

// CreatePaymentRequest is the payload for registering a payment
type CreatePaymentRequest struct {
	ProjectID   int64  `json:"project_id" binding:"required"`
	Reference   string `json:"reference" binding:"required"`
	Payee       string `json:"payee" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
}

// TransitionRequest is the payload for advancing a workflow
type TransitionRequest struct {
	TargetState string   `json:"target_state" binding:"required"`
	ActorID     string   `json:"actor_id" binding:"required"`
	ActorRoles  []string `json:"actor_roles" binding:"required"`
	Comment     string   `json:"comment"`
}

// TransitionOption describes one transition available to a caller
type TransitionOption struct {
	Action          string   `json:"action"`
	To              string   `json:"to"`
	RequiredRoles   []string `json:"required_roles"`
	RequiresComment bool     `json:"requires_comment"`
}

// ListRequest represents pagination query parameters
type ListRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r *ListRequest) normalize() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// statusFor maps the workflow error taxonomy to HTTP status codes. CAS
// conflicts wrap ErrInvalidTransition and land on 409 with the rest of the
// invalid-transition class.
func statusFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrCommentRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrUnauthorized), errors.Is(err, workflow.ErrSegregationViolation):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(status, Response{Success: false, Error: "internal error"})
		return
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// CreateProject handles POST /api/projects
func (h *Handlers) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	project := &entity.Project{
		Code:         req.Code,
		Title:        req.Title,
		Description:  req.Description,
		Constituency: req.Constituency,
		AmountCents:  req.AmountCents,
	}

	if err := h.registryService.CreateProject(c.Request.Context(), project); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: project})
}

// ListProjects handles GET /api/projects
func (h *Handlers) ListProjects(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	projects, err := h.registryService.ListProjects(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: projects})
}

// GetProject handles GET /api/projects/:id
func (h *Handlers) GetProject(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	project, err := h.registryService.GetProject(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: project})
}

// CreatePayment handles POST /api/payments
func (h *Handlers) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	payment := &entity.Payment{
		ProjectID:   req.ProjectID,
		Reference:   req.Reference,
		Payee:       req.Payee,
		AmountCents: req.AmountCents,
	}

	if err := h.registryService.CreatePayment(c.Request.Context(), payment); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: payment})
}

// ListPayments handles GET /api/payments
func (h *Handlers) ListPayments(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	payments, err := h.registryService.ListPayments(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: payments})
}

// GetPayment handles GET /api/payments/:id
func (h *Handlers) GetPayment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	payment, err := h.registryService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: payment})
}

// ExecuteTransition handles POST /api/workflow/:kind/:id/transition
func (h *Handlers) ExecuteTransition(c *gin.Context) {
	kind, id, ok := h.parseKindAndID(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	result, err := h.workflowService.ExecuteTransition(c.Request.Context(), service.TransitionRequest{
		Kind:        kind,
		EntityID:    id,
		TargetState: workflow.State(req.TargetState),
		ActorID:     req.ActorID,
		ActorRoles:  parseRoles(req.ActorRoles),
		Comment:     req.Comment,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// ListTransitions handles GET /api/workflow/:kind/:id/transitions. With a
// current_state query parameter the answer is computed purely from the
// transition table; otherwise the entity's stored state is consulted.
func (h *Handlers) ListTransitions(c *gin.Context) {
	kind, id, ok := h.parseKindAndID(c)
	if !ok {
		return
	}

	roles := parseRoles(strings.Split(c.Query("actor_roles"), ","))

	var transitions []workflow.Transition
	if stateParam := c.Query("current_state"); stateParam != "" {
		transitions = h.workflowService.AvailableTransitionsFromState(kind, workflow.State(stateParam), roles)
	} else {
		var err error
		transitions, err = h.workflowService.ListAvailableTransitions(c.Request.Context(), kind, id, roles)
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	options := make([]TransitionOption, 0, len(transitions))
	for _, t := range transitions {
		required := make([]string, len(t.RequiredRoles))
		for i, r := range t.RequiredRoles {
			required[i] = r.String()
		}
		options = append(options, TransitionOption{
			Action:          t.Action,
			To:              t.To.String(),
			RequiredRoles:   required,
			RequiresComment: t.RequiresComment,
		})
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: options})
}

// GetHistory handles GET /api/workflow/:kind/:id/history
func (h *Handlers) GetHistory(c *gin.Context) {
	kind, id, ok := h.parseKindAndID(c)
	if !ok {
		return
	}

	events, err := h.historyService.GetHistory(c.Request.Context(), kind, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: events})
}

// ExportHistory handles GET /api/workflow/:kind/:id/history/export,
// streaming the history as an xlsx workbook
func (h *Handlers) ExportHistory(c *gin.Context) {
	kind, id, ok := h.parseKindAndID(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("%s-%d-history.xlsx", kind, id)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reportService.WriteHistoryReport(c.Request.Context(), kind, id, c.Writer); err != nil {
		h.logger.Error("History export failed", "kind", kind.String(), "entity_id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
}

func (h *Handlers) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid entity ID"})
		return 0, false
	}
	return id, true
}

func (h *Handlers) parseKindAndID(c *gin.Context) (workflow.Kind, int64, bool) {
	kind, ok := workflow.ParseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "unknown workflow kind"})
		return "", 0, false
	}

	id, ok := h.parseID(c)
	if !ok {
		return "", 0, false
	}
	return kind, id, true
}

func parseRoles(raw []string) []workflow.Role {
	roles := make([]workflow.Role, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r != "" {
			roles = append(roles, workflow.Role(r))
		}
	}
	return roles
}
