package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/qbank-backend/internal/middleware"
	"github.com/quizforge/qbank-backend/internal/model"
	"github.com/quizforge/qbank-backend/internal/response"
	"github.com/quizforge/qbank-backend/internal/service"
	"github.com/quizforge/qbank-backend/internal/validator"
)

// QuestionHandler handles question write and read endpoints.
type QuestionHandler struct {
	upsertService   *service.UpsertService
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(upsertService *service.UpsertService, questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{upsertService: upsertService, questionService: questionService}
}

// UpsertQuestion godoc
// PUT /api/v1/author/banks/:bank_id/questions
// Creates or updates one question by its source question id.
func (h *QuestionHandler) UpsertQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	bankID, err := uuid.Parse(c.Param("bank_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpsertRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	req.UserID = claims.UserID
	req.BankID = bankID
	req.Origin = &model.SessionOrigin{
		ClientIP:  c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}

	result, err := h.upsertService.Upsert(c.Request.Context(), &req)
	if err != nil {
		ue, ok := service.AsUpsertError(err)
		if !ok {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		response.FailWithFields(c, statusForUpsertError(ue.Code), ue.Code,
			map[string]string{"detail": ue.Detail})
		return
	}

	status := http.StatusOK
	if result.Operation == model.OperationCreated {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"result": result})
}

// GetQuestion godoc
// GET /api/v1/author/banks/:bank_id/questions/:source_id
// Retrieves one question with its relationship rows.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	bankID, err := uuid.Parse(c.Param("bank_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	agg, rels, err := h.questionService.GetByKey(c.Request.Context(), claims.UserID, bankID, c.Param("source_id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if agg == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if rels == nil {
		rels = []model.QuestionTaxonomyRelationship{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"question":      agg,
		"relationships": rels,
	})
}

// ListQuestions godoc
// GET /api/v1/author/banks/:bank_id/questions
// Lists all questions in a bank.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	bankID, err := uuid.Parse(c.Param("bank_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.ListByBank(c.Request.Context(), bankID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.QuestionAggregate{}
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// statusForUpsertError maps write-path error codes to HTTP statuses.
func statusForUpsertError(code response.ErrCode) int {
	switch code {
	case response.ErrRateLimitExceeded:
		return http.StatusTooManyRequests
	case response.ErrSessionSecurityViolation, response.ErrOwnershipViolation:
		return http.StatusForbidden
	case response.ErrInvalidTaxonomyReference, response.ErrInvalidCategoryHierarchy,
		response.ErrDataIntegrityViolation, response.ErrUnsupportedQuestionType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
