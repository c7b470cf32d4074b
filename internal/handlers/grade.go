package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutest/edutest-backend/internal/services"
	"github.com/edutest/edutest-backend/internal/taxonomy"
)

type GradeHandler struct {
	gradeService services.GradeService
}

func NewGradeHandler(gradeService services.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

func (gh *GradeHandler) List(c *gin.Context) {
	grades, err := gh.gradeService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grades)
}

func (gh *GradeHandler) ListByLevel(c *gin.Context) {
	levelID, ok := taxonomy.ParseID(c.Param("levelId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}
	grades, err := gh.gradeService.ListByLevel(c.Request.Context(), levelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grades)
}

func (gh *GradeHandler) Get(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	grade, err := gh.gradeService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "grade not found"})
		return
	}
	c.JSON(http.StatusOK, grade)
}

func (gh *GradeHandler) Create(c *gin.Context) {
	var req services.GradeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	grade, err := gh.gradeService.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, grade)
}

func (gh *GradeHandler) Update(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req services.GradeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	grade, err := gh.gradeService.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grade)
}

func (gh *GradeHandler) Reorder(c *gin.Context) {
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
	if err := gh.gradeService.Reorder(c.Request.Context(), id, dir); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (gh *GradeHandler) Delete(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := gh.gradeService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
