// controller/access_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/fleetgate/gatekeeper/audit"
	"github.com/fleetgate/gatekeeper/controller"
	gatekeeper_errors "github.com/fleetgate/gatekeeper/errors"
	logger "github.com/fleetgate/gatekeeper/logging"
	"github.com/fleetgate/gatekeeper/model"
	mock_service "github.com/fleetgate/gatekeeper/test/service_mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

func TestAccessController(t *testing.T) {
	// Initialize logger
	logger.InitLogger(os.TempDir())
	defer logger.Sync()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccessService := mock_service.NewMockIAccessService(ctrl)
	accessController := controller.NewAccessController(mockAccessService)
	router := setupRouter()
	api := router.Group("/")
	accessController.RegisterRoutes(api)

	t.Run("Evaluate_Granted", func(t *testing.T) {
		mockAccessService.EXPECT().
			Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.AccessResult{Granted: true, Reason: "Access granted", BlockType: model.BlockNone}, nil)

		body := strings.NewReader(`{"user_id":"dispatcher-12","page":"dispatch","section":"load-board","role":"dispatcher"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/evaluate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var result model.AccessResult
		json.NewDecoder(w.Body).Decode(&result)
		assert.True(t, result.Granted)
		assert.Equal(t, model.BlockNone, result.BlockType)
	})

	t.Run("Evaluate_Denied", func(t *testing.T) {
		mockAccessService.EXPECT().
			Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.AccessResult{Granted: false, Reason: "Dispatch certification required", BlockType: model.BlockSection}, nil)

		body := strings.NewReader(`{"user_id":"driver-7","page":"dispatch","section":"load-board","role":"driver"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/evaluate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var result model.AccessResult
		json.NewDecoder(w.Body).Decode(&result)
		assert.False(t, result.Granted)
		assert.Equal(t, "Dispatch certification required", result.Reason)
	})

	t.Run("Evaluate_Failure_BadRequest", func(t *testing.T) {
		// Missing required fields never reaches the service.
		body := strings.NewReader(`{"user_id":"driver-7"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/evaluate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Evaluate_Failure_ProfileNotFound", func(t *testing.T) {
		mockAccessService.EXPECT().
			Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.AccessResult{}, gatekeeper_errors.ErrProfileNotFound)

		body := strings.NewReader(`{"user_id":"ghost","page":"dispatch","section":"load-board","role":"dispatcher"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/evaluate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("EvaluateBatch_Success", func(t *testing.T) {
		results := []model.BatchAccessResult{
			{Page: "dispatch", Section: "load-board", Result: model.AccessResult{Granted: true, Reason: "Access granted", BlockType: model.BlockNone}},
			{Page: "financials", Section: "payments", Result: model.AccessResult{Granted: false, Reason: "Payment processor certification required", BlockType: model.BlockSection}},
		}

		mockAccessService.EXPECT().
			EvaluateBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(results, nil)

		body := strings.NewReader(`{"user_id":"dispatcher-12","role":"dispatcher","targets":[{"page":"dispatch","section":"load-board"},{"page":"financials","section":"payments"}]}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/evaluate/batch", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decoded []model.BatchAccessResult
		json.NewDecoder(w.Body).Decode(&decoded)
		assert.Len(t, decoded, 2)
		assert.True(t, decoded[0].Result.Granted)
		assert.False(t, decoded[1].Result.Granted)
	})

	t.Run("EvaluateBatch_Failure_EmptyTargets", func(t *testing.T) {
		body := strings.NewReader(`{"user_id":"dispatcher-12","role":"dispatcher","targets":[]}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/access/evaluate/batch", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListPermissions_Success", func(t *testing.T) {
		permissions := []model.SectionPermission{
			{ID: "app.access", Page: "*", Section: "*", Priority: 100},
			{ID: "dispatch.load-board", Page: "dispatch", Section: "load-board", Priority: 3},
		}

		mockAccessService.EXPECT().
			ListPermissions(gomock.Any()).
			Return(permissions)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/permissions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decoded []model.SectionPermission
		json.NewDecoder(w.Body).Decode(&decoded)
		assert.Len(t, decoded, 2)
		assert.Equal(t, "app.access", decoded[0].ID)
	})

	t.Run("GetPermission_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			GetPermission(gomock.Any(), gomock.Any()).
			Return(model.SectionPermission{ID: "dispatch.load-board", Page: "dispatch", Section: "load-board", Priority: 3}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/permissions/dispatch.load-board", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetPermission_Failure_NotFound", func(t *testing.T) {
		mockAccessService.EXPECT().
			GetPermission(gomock.Any(), gomock.Any()).
			Return(model.SectionPermission{}, gatekeeper_errors.ErrPermissionNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/permissions/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("QueryDecisions_Success", func(t *testing.T) {
		fixedTime := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
		decisions := []audit.AccessAudit{
			{
				Timestamp: fixedTime,
				UserID:    "dispatcher-12",
				Page:      "dispatch",
				Section:   "load-board",
				Role:      "dispatcher",
				Granted:   true,
				Reason:    "Access granted",
				BlockType: "none",
			},
		}

		mockAccessService.EXPECT().
			QueryDecisions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(decisions, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/decisions?user_id=dispatcher-12", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decoded []audit.AccessAudit
		json.NewDecoder(w.Body).Decode(&decoded)
		assert.Len(t, decoded, 1)
		assert.Equal(t, "dispatcher-12", decoded[0].UserID)
		assert.True(t, decisions[0].Timestamp.Equal(decoded[0].Timestamp))
	})

	t.Run("QueryDecisions_Failure_BadTimestamp", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/decisions?from=yesterday", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("QueryDecisions_Failure_BadLimit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/access/decisions?limit=many", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
