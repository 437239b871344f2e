package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailydose/internal/controller"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/service"
)

type AdminController struct {
	subjectService service.SubjectService
	authService    service.AuthService
}

func NewAdminController(subjectService service.SubjectService, authService service.AuthService) *AdminController {
	return &AdminController{subjectService: subjectService, authService: authService}
}

// ListSubjects godoc
// @Summary List subjects
// @Description All subjects with the number of questions in each.
// @Tags Subjects
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /subjects [get]
func (c *AdminController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.subjectService.ListSubjects(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}

// CreateSubject godoc
// @Summary (Admin) Create a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param subject body dto.SubjectRequest true "Subject data"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 403 {object} dto.ErrorResponse "Not a super admin"
// @Failure 409 {object} dto.ErrorResponse "Subject name already exists"
// @Router /subjects [post]
func (c *AdminController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.subjectService.CreateSubject(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, subject)
}

// UpdateSubject godoc
// @Summary (Admin) Update a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param subject body dto.SubjectRequest true "Subject data"
// @Success 200 {object} dto.SubjectResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject name already exists"
// @Router /subjects/{id} [put]
func (c *AdminController) UpdateSubject(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.subjectService.UpdateSubject(ctx.Request.Context(), id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// DeleteSubject godoc
// @Summary (Admin) Delete a subject
// @Description Fails with 409 while any question references the subject.
// @Tags Subjects
// @Param id path int true "Subject ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Subject still has questions"
// @Router /subjects/{id} [delete]
func (c *AdminController) DeleteSubject(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.subjectService.DeleteSubject(ctx.Request.Context(), id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListUsers godoc
// @Summary (Admin) List users
// @Tags Users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse "Not a super admin"
// @Router /users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.authService.ListUsers(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}
