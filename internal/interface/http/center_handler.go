package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/chinmayajanata/backend/internal/application"
	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/pkg/response"
	"github.com/chinmayajanata/backend/pkg/validation"
)

type CenterHandler struct {
	Svc    *app.CenterService
	Logger *logrus.Logger
}

func NewCenterHandler(svc *app.CenterService, logger *logrus.Logger) *CenterHandler {
	return &CenterHandler{Svc: svc, Logger: logger}
}

type centerRequest struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func centerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid center id", nil)
		return 0, false
	}
	return id, true
}

func callerFrom(c *gin.Context) app.CallerContext {
	return app.CallerContext{Principal: c.GetString("username")}
}

func (h *CenterHandler) Create(c *gin.Context) {
	var req centerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	center, err := h.Svc.Create(c.Request.Context(), callerFrom(c), req.Name, entity.Location{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		response.Fail(c, statusFor(err), "failed to create center", nil)
		return
	}
	response.Success(c, http.StatusCreated, center, "center created", nil)
}

func (h *CenterHandler) Get(c *gin.Context) {
	id, ok := centerID(c)
	if !ok {
		return
	}
	center, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, statusFor(err), "center not found", nil)
		return
	}
	response.Success(c, http.StatusOK, center, "center", nil)
}

func (h *CenterHandler) List(c *gin.Context) {
	centers, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, statusFor(err), "failed to list centers", nil)
		return
	}
	response.Success(c, http.StatusOK, centers, "centers", map[string]any{"count": len(centers)})
}

func (h *CenterHandler) Verify(c *gin.Context) {
	id, ok := centerID(c)
	if !ok {
		return
	}
	if err := h.Svc.Verify(c.Request.Context(), callerFrom(c), id); err != nil {
		response.Fail(c, statusFor(err), "verification failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"center_id": id, "verified": true}, "center verified", nil)
}

func (h *CenterHandler) Update(c *gin.Context) {
	id, ok := centerID(c)
	if !ok {
		return
	}
	var req centerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	center, err := h.Svc.UpdateDetails(c.Request.Context(), id, req.Name, entity.Location{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		response.Fail(c, statusFor(err), "failed to update center", nil)
		return
	}
	response.Success(c, http.StatusOK, center, "center updated", nil)
}

func (h *CenterHandler) Remove(c *gin.Context) {
	id, ok := centerID(c)
	if !ok {
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), callerFrom(c), id); err != nil {
		response.Fail(c, statusFor(err), "removal failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"center_id": id, "removed": true}, "center removed", nil)
}
