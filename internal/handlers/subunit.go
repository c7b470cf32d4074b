package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutest/edutest-backend/internal/services"
	"github.com/edutest/edutest-backend/internal/taxonomy"
)

type SubUnitHandler struct {
	subUnitService services.SubUnitService
}

func NewSubUnitHandler(subUnitService services.SubUnitService) *SubUnitHandler {
	return &SubUnitHandler{subUnitService: subUnitService}
}

func (sh *SubUnitHandler) List(c *gin.Context) {
	subUnits, err := sh.subUnitService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subUnits)
}

func (sh *SubUnitHandler) ListByUnit(c *gin.Context) {
	unitID, ok := taxonomy.ParseID(c.Param("unitId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}
	subUnits, err := sh.subUnitService.ListByUnit(c.Request.Context(), unitID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subUnits)
}

func (sh *SubUnitHandler) Get(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	subUnit, err := sh.subUnitService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-unit not found"})
		return
	}
	c.JSON(http.StatusOK, subUnit)
}

func (sh *SubUnitHandler) Create(c *gin.Context) {
	var req services.SubUnitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	subUnit, err := sh.subUnitService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, subUnit)
}

func (sh *SubUnitHandler) Update(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req services.SubUnitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	subUnit, err := sh.subUnitService.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subUnit)
}

func (sh *SubUnitHandler) Reorder(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	dir, ok := taxonomy.ParseDirection(c.Query("direction"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
		return
	}
	if err := sh.subUnitService.Reorder(c.Request.Context(), id, dir); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (sh *SubUnitHandler) Delete(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := sh.subUnitService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
