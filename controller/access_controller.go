// controller/access_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	gatekeeper_errors "github.com/fleetgate/gatekeeper/errors"
	"github.com/fleetgate/gatekeeper/model"
	"github.com/fleetgate/gatekeeper/service"
	"github.com/fleetgate/gatekeeper/util"
	helper_util "github.com/fleetgate/gatekeeper/util/helper"
)

type AccessController struct {
	accessService service.IAccessService
}

func NewAccessController(accessService service.IAccessService) *AccessController {
	return &AccessController{
		accessService: accessService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.POST("/evaluate", ac.Evaluate)
		access.POST("/evaluate/batch", ac.EvaluateBatch)
		access.GET("/permissions", ac.ListPermissions)
		access.GET("/permissions/:id", ac.GetPermission)
		access.GET("/decisions", ac.QueryDecisions)
	}
}

// Evaluate endpoint
func (ac *AccessController) Evaluate(c *gin.Context) {
	var request model.EvaluateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid access request", gatekeeper_errors.ErrInvalidAccessRequest)
		return
	}

	result, err := ac.accessService.Evaluate(c, model.AccessRequest{
		UserID:  request.UserID,
		Page:    request.Page,
		Section: request.Section,
		Role:    request.Role,
	}, request.Profile)
	if err != nil {
		switch {
		case errors.Is(err, gatekeeper_errors.ErrInvalidAccessRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid access request", err)
		case errors.Is(err, gatekeeper_errors.ErrProfileNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Permission profile not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to evaluate access", gatekeeper_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// EvaluateBatch endpoint
func (ac *AccessController) EvaluateBatch(c *gin.Context) {
	var request model.BatchAccessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid batch access request", gatekeeper_errors.ErrInvalidAccessRequest)
		return
	}

	results, err := ac.accessService.EvaluateBatch(c, request, nil)
	if err != nil {
		switch {
		case errors.Is(err, gatekeeper_errors.ErrInvalidAccessRequest):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid batch access request", err)
		case errors.Is(err, gatekeeper_errors.ErrProfileNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Permission profile not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to evaluate batch", gatekeeper_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, results)
}

// ListPermissions endpoint
func (ac *AccessController) ListPermissions(c *gin.Context) {
	c.JSON(http.StatusOK, ac.accessService.ListPermissions(c))
}

// GetPermission endpoint
func (ac *AccessController) GetPermission(c *gin.Context) {
	permissionID := c.Param("id")

	permission, err := ac.accessService.GetPermission(c, permissionID)
	if err != nil {
		if errors.Is(err, gatekeeper_errors.ErrPermissionNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Permission not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve permission", err)
		}
		return
	}

	c.JSON(http.StatusOK, permission)
}

// QueryDecisions endpoint
func (ac *AccessController) QueryDecisions(c *gin.Context) {
	limit, _, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", gatekeeper_errors.ErrInvalidPagination)
		return
	}

	to := time.Now()
	from := to.Add(-24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		if from, err = helper_util.ParseTime(raw); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = helper_util.ParseTime(raw); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
			return
		}
	}

	decisions, err := ac.accessService.QueryDecisions(c, from, to, c.Query("user_id"), c.Query("page"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query decisions", err)
		return
	}

	if limit > 0 && len(decisions) > limit {
		decisions = decisions[:limit]
	}
	c.JSON(http.StatusOK, decisions)
}
