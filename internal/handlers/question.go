package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/edutest/edutest-backend/internal/questionbank"
	"github.com/edutest/edutest-backend/internal/requestdata"
	"github.com/edutest/edutest-backend/internal/services"
	"github.com/edutest/edutest-backend/internal/taxonomy"
)

type QuestionHandler struct {
	questionService services.QuestionService
	genService      services.QuestionGenService
	files           services.FileStorageService
}

func NewQuestionHandler(questionService services.QuestionService, genService services.QuestionGenService, files services.FileStorageService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, genService: genService, files: files}
}

// filterFromQuery builds the question bank filter from query params. Bad ids
// are treated as unset rather than erroring, matching the cascading selects
// that submit empty strings freely.
func filterFromQuery(c *gin.Context) questionbank.Filter {
	var f questionbank.Filter
	f.LevelID, _ = taxonomy.ParseID(c.Query("levelId"))
	f.GradeID, _ = taxonomy.ParseID(c.Query("gradeId"))
	f.UnitID, _ = taxonomy.ParseID(c.Query("unitId"))
	f.SubUnitID, _ = taxonomy.ParseID(c.Query("subUnitId"))
	f.ConceptID, _ = taxonomy.ParseID(c.Query("conceptId"))
	f.ConceptText = c.Query("conceptText")
	f.QuestionType = c.Query("questionType")
	f.Difficulty = c.Query("difficulty")
	return f
}

func (qh *QuestionHandler) List(c *gin.Context) {
	questions, err := qh.questionService.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (qh *QuestionHandler) Get(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	question, err := qh.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}
	c.JSON(http.StatusOK, question)
}

// bindQuestionInput accepts either a JSON body or a multipart form whose
// "request" part carries the JSON and whose "image"/"document" parts carry
// the attachments.
func bindQuestionInput(c *gin.Context) (*services.QuestionInput, error) {
	var input services.QuestionInput

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		data := c.PostForm("request")
		if data == "" {
			return nil, errInvalidBody
		}
		if err := json.Unmarshal([]byte(data), &input); err != nil {
			return nil, errInvalidBody
		}
		if file, err := c.FormFile("image"); err == nil {
			input.ReferenceImage = file
		}
		if file, err := c.FormFile("document"); err == nil {
			input.ReferenceDocument = file
		}
		return &input, nil
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		return nil, errInvalidBody
	}
	return &input, nil
}

func (qh *QuestionHandler) Create(c *gin.Context) {
	input, err := bindQuestionInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var createdBy uint
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		createdBy = rd.UserID
	}

	question, err := qh.questionService.Create(c.Request.Context(), *input, createdBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (qh *QuestionHandler) Update(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	input, err := bindQuestionInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	question, err := qh.questionService.Update(c.Request.Context(), id, *input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, question)
}

func (qh *QuestionHandler) Delete(c *gin.Context) {
	id, ok := taxonomy.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := qh.questionService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

// bindGenerateInput accepts a JSON body or a multipart form: "request" JSON
// part plus optional "image" (shown to the model) and "document" (text
// appended to the prompt) parts.
func bindGenerateInput(c *gin.Context) (*services.GenerateQuestionInput, error) {
	var input services.GenerateQuestionInput

	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		data := c.PostForm("request")
		if data == "" {
			return nil, errInvalidBody
		}
		if err := json.Unmarshal([]byte(data), &input); err != nil {
			return nil, errInvalidBody
		}
		if file, err := c.FormFile("image"); err == nil {
			if raw, err := readFormFile(file); err == nil {
				input.ReferenceImage = raw
			}
		}
		if file, err := c.FormFile("document"); err == nil {
			if raw, err := readFormFile(file); err == nil && utf8.Valid(raw) {
				input.DocumentText = string(raw)
			}
		}
	} else if err := c.ShouldBindJSON(&input); err != nil {
		return nil, errInvalidBody
	}

	if input.ConceptID == 0 {
		return nil, errInvalidBody
	}
	return &input, nil
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func (qh *QuestionHandler) GenerateAI(c *gin.Context) {
	if qh.genService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generation is not configured"})
		return
	}
	req, err := bindGenerateInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var userID uint
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		userID = rd.UserID
	}

	draft, err := qh.genService.Generate(c.Request.Context(), userID, *req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ServeFile streams a stored attachment or generated image.
func (qh *QuestionHandler) ServeFile(c *gin.Context) {
	relPath := strings.TrimPrefix(c.Param("path"), "/")
	absPath, err := qh.files.Resolve(relPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid path"})
		return
	}
	c.File(absPath)
}
