package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/services"
	"github.com/emreacar/schoolhub/internal/middleware"
	"github.com/emreacar/schoolhub/internal/pkg/helpers"
)

// AcademicController handles classes, sections, subjects and enrollments.
type AcademicController struct {
	academicService *services.AcademicService
}

// NewAcademicController creates a new academic controller
func NewAcademicController(academicService *services.AcademicService) *AcademicController {
	return &AcademicController{academicService: academicService}
}

// CreateClass adds a grade level
// @Summary Create a class
// @Description Creates a grade level in the caller's school
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class details"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse} "Class created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *AcademicController) CreateClass(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid class creation request")
		return
	}

	class, err := c.academicService.CreateClass(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromClass(class), "Class created successfully"))
}

// GetClass retrieves one class
// @Summary Get class by ID
// @Description Retrieves a specific grade level of the caller's school
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [get]
func (c *AcademicController) GetClass(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	class, err := c.academicService.GetClass(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromClass(class), "Class retrieved successfully"))
}

// ListClasses retrieves the classes of the caller's school
// @Summary List classes
// @Description Retrieves the grade levels of the caller's school with optional status filtering
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (active, inactive, archived)"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ClassListResponse} "Classes retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *AcademicController) ListClasses(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var status *models.ClassStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ClassStatus(raw)
		status = &s
	}
	page, size := helpers.ParsePaginationParams(ctx)

	classes, total, err := c.academicService.ListClasses(ctx, actor, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.ClassListResponse{
		Classes:    dto.FromClasses(classes),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Classes retrieved successfully"))
}

// UpdateClass modifies a grade level
// @Summary Update a class
// @Description Updates mutable fields of a grade level
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Param request body dto.UpdateClassRequest true "Class fields"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [put]
func (c *AcademicController) UpdateClass(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid class update request")
		return
	}

	class, err := c.academicService.UpdateClass(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromClass(class), "Class updated successfully"))
}

// SetClassStatus transitions a class's lifecycle status
// @Summary Set class status
// @Description Activates, deactivates or archives a grade level
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Param request body object{status=string} true "New status"
// @Success 200 {object} dto.APIResponse "Class status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/status [put]
func (c *AcademicController) SetClassStatus(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.ClassStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid status request")
		return
	}

	if err := c.academicService.SetClassStatus(ctx, actor, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Class status updated successfully"))
}

// MyClasses lists the classes the authenticated teacher is assigned to
// @Summary List own classes
// @Description Retrieves the classes the authenticated teacher teaches, via homeroom or subject assignment
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassResponse} "Classes retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/my-classes [get]
func (c *AcademicController) MyClasses(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	classes, err := c.academicService.MyClasses(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromClasses(classes), "Classes retrieved successfully"))
}

// CreateSection adds a division to a class
// @Summary Create a section
// @Description Creates a division inside a grade level, optionally with a homeroom teacher
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSectionRequest true "Section details"
// @Success 201 {object} dto.APIResponse{data=dto.SectionResponse} "Section created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or teacher role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class or teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [post]
func (c *AcademicController) CreateSection(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid section creation request")
		return
	}

	section, err := c.academicService.CreateSection(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromSection(section), "Section created successfully"))
}

// ListSections lists the sections of a class
// @Summary List sections
// @Description Retrieves the divisions of one grade level
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.SectionResponse} "Sections retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/sections [get]
func (c *AcademicController) ListSections(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sections, err := c.academicService.ListSections(ctx, actor, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		responses = append(responses, dto.FromSection(&sections[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Sections retrieved successfully"))
}

// UpdateSection modifies a class division
// @Summary Update a section
// @Description Updates mutable fields of a class division
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID" Format(int64) minimum(1)
// @Param request body dto.CreateSectionRequest true "Section fields"
// @Success 200 {object} dto.APIResponse{data=dto.SectionResponse} "Section updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [put]
func (c *AcademicController) UpdateSection(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid section update request")
		return
	}

	section, err := c.academicService.UpdateSection(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromSection(section), "Section updated successfully"))
}

// CreateSubject adds a subject
// @Summary Create a subject
// @Description Creates a subject in the caller's school
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject details"
// @Success 201 {object} dto.APIResponse{data=dto.SubjectResponse} "Subject created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 409 {object} dto.ErrorResponse "Subject code already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [post]
func (c *AcademicController) CreateSubject(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid subject creation request")
		return
	}

	subject, err := c.academicService.CreateSubject(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromSubject(subject), "Subject created successfully"))
}

// ListSubjects lists the subjects of the caller's school
// @Summary List subjects
// @Description Retrieves the subjects of the caller's school
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SubjectResponse} "Subjects retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *AcademicController) ListSubjects(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	subjects, err := c.academicService.ListSubjects(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		responses = append(responses, dto.FromSubject(&subjects[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Subjects retrieved successfully"))
}

// SetSubjectStatus transitions a subject's lifecycle status
// @Summary Set subject status
// @Description Activates, deactivates or archives a subject
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID" Format(int64) minimum(1)
// @Param request body object{status=string} true "New status"
// @Success 200 {object} dto.APIResponse "Subject status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects/{id}/status [put]
func (c *AcademicController) SetSubjectStatus(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.ClassStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid status request")
		return
	}

	if err := c.academicService.SetSubjectStatus(ctx, actor, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Subject status updated successfully"))
}

// AssignSubject assigns a subject to a class
// @Summary Assign a subject
// @Description Links a subject and optionally a teacher to a class/section
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignSubjectRequest true "Assignment details"
// @Success 201 {object} dto.APIResponse{data=dto.ClassSubjectResponse} "Subject assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or teacher role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class, subject or teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Subject already assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /class-subjects [post]
func (c *AcademicController) AssignSubject(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.AssignSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid subject assignment request")
		return
	}

	cs, err := c.academicService.AssignSubject(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromClassSubject(cs), "Subject assigned successfully"))
}

// ListClassSubjects lists the subject assignments of a class
// @Summary List class subjects
// @Description Retrieves the subject assignments of one class with subject and teacher loaded
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassSubjectResponse} "Class subjects retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/subjects [get]
func (c *AcademicController) ListClassSubjects(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	assignments, err := c.academicService.ListClassSubjects(ctx, actor, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ClassSubjectResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, dto.FromClassSubject(&assignments[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Class subjects retrieved successfully"))
}

// RemoveClassSubject deletes a subject assignment
// @Summary Remove a class subject
// @Description Deletes a subject assignment from a class
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Subject assignment removed successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /class-subjects/{id} [delete]
func (c *AcademicController) RemoveClassSubject(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.academicService.RemoveClassSubject(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Subject assignment removed successfully"))
}

// EnrollStudent enrolls a student into a class
// @Summary Enroll a student
// @Description Records a student's membership in a class/section and stamps the student record
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollStudentRequest true "Enrollment details"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Student enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Student or class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *AcademicController) EnrollStudent(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid enrollment request")
		return
	}

	enrollment, err := c.academicService.Enroll(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromEnrollment(enrollment), "Student enrolled successfully"))
}

// ListEnrollments lists the enrollments of a class
// @Summary List enrollments
// @Description Retrieves the enrollments of one class
// @Tags academics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id}/enrollments [get]
func (c *AcademicController) ListEnrollments(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	classID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollments, err := c.academicService.ListEnrollments(ctx, actor, classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		responses = append(responses, dto.FromEnrollment(&enrollments[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Enrollments retrieved successfully"))
}

// SetEnrollmentStatus transitions an enrollment's status
// @Summary Set enrollment status
// @Description Marks an enrollment as active, dropped or transferred
// @Tags academics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID" Format(int64) minimum(1)
// @Param request body object{status=string} true "New status"
// @Success 200 {object} dto.APIResponse "Enrollment status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/status [put]
func (c *AcademicController) SetEnrollmentStatus(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.EnrollmentStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid status request")
		return
	}

	if err := c.academicService.SetEnrollmentStatus(ctx, actor, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Enrollment status updated successfully"))
}
