package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutest/edutest-backend/internal/services"
	"github.com/edutest/edutest-backend/internal/taxonomy"
)

type ConceptHandler struct {
	conceptService services.ConceptService
}

func NewConceptHandler(conceptService services.ConceptService) *ConceptHandler {
	return &ConceptHandler{conceptService: conceptService}
}

func (ch *ConceptHandler) List(c *gin.Context) {
	concepts, err := ch.conceptService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, concepts)
}

func (ch *ConceptHandler) ListBySubUnit(c *gin.Context) {
	subUnitID, ok := taxonomy.ParseID(c.Param("subUnitId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sub-unit id"})
		return
	}
	concepts, err := ch.conceptService.ListBySubUnit(c.Request.Context(), subUnitID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, concepts)
}

func (ch *ConceptHandler) Get(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	concept, err := ch.conceptService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "concept not found"})
		return
	}
	c.JSON(http.StatusOK, concept)
}

func (ch *ConceptHandler) Create(c *gin.Context) {
	var req services.ConceptInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	concept, err := ch.conceptService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, concept)
}

func (ch *ConceptHandler) Update(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req services.ConceptInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	concept, err := ch.conceptService.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, concept)
}

func (ch *ConceptHandler) Reorder(c *gin.Context) {
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
	if err := ch.conceptService.Reorder(c.Request.Context(), id, dir); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (ch *ConceptHandler) Delete(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := ch.conceptService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
