package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailydose/internal/controller"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/service"
)

type StudentController struct {
	studentService   service.StudentService
	dailySetService  service.DailySetService
	attemptService   service.AttemptService
	sessionService   service.SessionService
	analyticsService service.AnalyticsService
}

func NewStudentController(
	studentService service.StudentService,
	dailySetService service.DailySetService,
	attemptService service.AttemptService,
	sessionService service.SessionService,
	analyticsService service.AnalyticsService,
) *StudentController {
	return &StudentController{
		studentService:   studentService,
		dailySetService:  dailySetService,
		attemptService:   attemptService,
		sessionService:   sessionService,
		analyticsService: analyticsService,
	}
}

// ListSubjects godoc
// @Summary (Student) Subjects and primary subject
// @Tags Student
// @Produce json
// @Success 200 {object} dto.StudentSubjectsResponse
// @Router /student/subjects [get]
func (c *StudentController) ListSubjects(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	resp, err := c.studentService.ListSubjects(ctx.Request.Context(), caller.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SelectSubject godoc
// @Summary (Student) Select the primary subject
// @Description The primary subject can be chosen once. Repeating the same choice is accepted.
// @Tags Student
// @Accept json
// @Produce json
// @Param selection body dto.SelectSubjectRequest true "Subject to select"
// @Success 200 {object} dto.StudentSubjectsResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown subject"
// @Failure 409 {object} dto.ErrorResponse "A different subject is already selected"
// @Router /student/subjects [post]
func (c *StudentController) SelectSubject(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	var req dto.SelectSubjectRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.studentService.SelectPrimarySubject(ctx.Request.Context(), caller.ID, req.SubjectID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetDailyQuestions godoc
// @Summary (Student) Today's question set
// @Description Returns today's set, generating it on first request. Status is READY, NO_SUBJECT_SELECTED or QUESTION_BANK_EXHAUSTED.
// @Tags Student
// @Produce json
// @Success 200 {object} dto.DailySetResponse
// @Router /daily-questions [get]
func (c *StudentController) GetDailyQuestions(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	set, err := c.dailySetService.GetOrCreateTodaySet(ctx.Request.Context(), caller.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, set)
}

// CompleteDailyQuestions godoc
// @Summary (Student) Complete today's set
// @Description Scores today's set. Unanswered questions count as wrong. Repeating the call returns the stored score.
// @Tags Student
// @Produce json
// @Success 200 {object} dto.DailySetResponse
// @Failure 404 {object} dto.ErrorResponse "No set generated today"
// @Router /daily-questions [post]
func (c *StudentController) CompleteDailyQuestions(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	set, err := c.dailySetService.CompleteTodaySet(ctx.Request.Context(), caller.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, set)
}

// SubmitAnswer godoc
// @Summary (Student) Answer a question
// @Description Records the first answer. Later submissions return that attempt with alreadyAttempted=true.
// @Tags Student
// @Accept json
// @Produce json
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /student/submit-answer [post]
func (c *StudentController) SubmitAnswer(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.attemptService.SubmitAnswer(ctx.Request.Context(), caller.ID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// EndSession godoc
// @Summary (Student) End the study session
// @Description Adds the time since login to today's total. Without an active session the totals are returned unchanged.
// @Tags Student
// @Produce json
// @Success 200 {object} dto.EndSessionResponse
// @Router /student/end-session [post]
func (c *StudentController) EndSession(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	resp, err := c.sessionService.EndSession(ctx.Request.Context(), caller.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAnalytics godoc
// @Summary (Student) Progress analytics
// @Tags Student
// @Produce json
// @Success 200 {object} dto.AnalyticsResponse
// @Router /student/analytics [get]
func (c *StudentController) GetAnalytics(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	resp, err := c.analyticsService.GetAnalytics(ctx.Request.Context(), caller.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
