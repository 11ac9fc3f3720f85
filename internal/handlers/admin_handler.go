package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneyflow/internal/errors"
	"moneyflow/internal/pagination"
	"moneyflow/internal/services"
)

// AdminHandler handles administrative requests. All routes require the admin
// middleware; every mutation is audit-logged.
type AdminHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userService services.UserServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{userService: userService, auditService: auditService}
}

// AdminUpdateUserRequest represents the admin user update payload
type AdminUpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ListUsers returns a paginated list of all users
// @Summary     List users
// @Description Get a paginated list of all users
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.User] "Paginated users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUser returns a single user by ID
// @Summary     Get user
// @Description Get a single user by ID
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} models.User "User details"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(targetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser updates a user's admin-editable fields
// @Summary     Update user
// @Description Update a user's name, active flag, or admin flag
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "User ID"
// @Param       request body AdminUpdateUserRequest true "Fields to update"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.AdminUpdateUser(targetID, services.AdminUserUpdate{
		FullName: req.FullName,
		IsActive: req.IsActive,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.FullName != nil {
		changes["full_name"] = *req.FullName
	}
	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
	}
	if req.IsAdmin != nil {
		changes["is_admin"] = *req.IsAdmin
	}
	h.auditService.Log(actorID, "ADMIN_UPDATE_USER", "user", targetID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeactivateUser deactivates a user account
// @Summary     Deactivate user
// @Description Deactivate a user account
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]string "User deactivated"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/{id} [delete]
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeactivateUser(targetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actorID, "ADMIN_DEACTIVATE_USER", "user", targetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}

// Stats returns aggregate platform counts
// @Summary     Platform stats
// @Description Get aggregate user, transaction, and category counts
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.AdminStats "Aggregate counts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.userService.AdminStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
