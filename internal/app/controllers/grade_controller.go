package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/app/services"
	"github.com/emreacar/schoolhub/internal/middleware"
	"github.com/emreacar/schoolhub/internal/pkg/helpers"
)

// GradeController handles assignments, recorded scores and grade summaries.
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new grade controller
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// CreateAssignment adds graded work
// @Summary Create an assignment
// @Description Creates graded work for a class/subject pair; the caller becomes the assignment owner
// @Tags gradebook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or due date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class or subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments [post]
func (c *GradeController) CreateAssignment(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid assignment creation request")
		return
	}

	assignment, err := c.gradeService.CreateAssignment(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromAssignment(assignment), "Assignment created successfully"))
}

// GetAssignment retrieves one assignment
// @Summary Get assignment by ID
// @Description Retrieves a specific assignment of the caller's school
// @Tags gradebook
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id} [get]
func (c *GradeController) GetAssignment(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	assignment, err := c.gradeService.GetAssignment(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAssignment(assignment), "Assignment retrieved successfully"))
}

// ListAssignments retrieves assignments with filtering
// @Summary List assignments
// @Description Retrieves assignments with filtering and pagination; teachers see their own assignments
// @Tags gradebook
// @Produce json
// @Security BearerAuth
// @Param classId query int false "Filter by class ID"
// @Param subjectId query int false "Filter by subject ID"
// @Param termId query int false "Filter by term ID"
// @Param status query string false "Filter by status (draft, published, closed, graded)"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentListResponse} "Assignments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments [get]
func (c *GradeController) ListAssignments(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var filter repositories.AssignmentFilter
	filter.ClassID = parseOptionalID(ctx, "classId")
	filter.SubjectID = parseOptionalID(ctx, "subjectId")
	filter.TermID = parseOptionalID(ctx, "termId")
	if status := ctx.Query("status"); status != "" {
		s := models.AssignmentStatus(status)
		filter.Status = &s
	}
	page, size := helpers.ParsePaginationParams(ctx)

	assignments, total, err := c.gradeService.ListAssignments(ctx, actor, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AssignmentListResponse{
		Assignments: dto.FromAssignments(assignments),
		Pagination:  helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Assignments retrieved successfully"))
}

// UpdateAssignment modifies an assignment
// @Summary Update an assignment
// @Description Updates mutable fields of an assignment; teachers can only touch their own
// @Tags gradebook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID" Format(int64) minimum(1)
// @Param request body dto.UpdateAssignmentRequest true "Assignment fields"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse} "Assignment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or due date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id} [put]
func (c *GradeController) UpdateAssignment(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid assignment update request")
		return
	}

	assignment, err := c.gradeService.UpdateAssignment(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAssignment(assignment), "Assignment updated successfully"))
}

// ArchiveAssignment retires an assignment
// @Summary Archive an assignment
// @Description Archives an assignment so it no longer accepts grades; teachers can only archive their own
// @Tags gradebook
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Assignment archived successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id} [delete]
func (c *GradeController) ArchiveAssignment(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.gradeService.ArchiveAssignment(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Assignment archived successfully"))
}

// RecordGrade records one score
// @Summary Record a grade
// @Description Records a score for one student, optionally tied to an assignment
// @Tags gradebook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordGradeRequest true "Grade details"
// @Success 201 {object} dto.APIResponse{data=dto.GradeResponse} "Grade recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or score out of range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Student or assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Grade already recorded for this assignment"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades [post]
func (c *GradeController) RecordGrade(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.RecordGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid grade request")
		return
	}

	grade, err := c.gradeService.RecordGrade(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromGrade(grade), "Grade recorded successfully"))
}

// BulkRecordGrades grades many students on one assignment
// @Summary Bulk record grades
// @Description Records scores for many students on one assignment in a single transaction
// @Tags gradebook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkRecordGradesRequest true "Grade entries"
// @Success 200 {object} dto.APIResponse{data=dto.BulkRecordGradesResponse} "Grades recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or score out of range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/bulk [post]
func (c *GradeController) BulkRecordGrades(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.BulkRecordGradesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid bulk grade request")
		return
	}

	recorded, err := c.gradeService.BulkRecordGrades(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.BulkRecordGradesResponse{Recorded: recorded}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Grades recorded successfully"))
}

// UpdateGrade corrects a recorded score
// @Summary Update a grade
// @Description Corrects a recorded score; publication is one-way
// @Tags gradebook
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID" Format(int64) minimum(1)
// @Param request body dto.UpdateGradeRequest true "Corrected score"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or score out of range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [put]
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid grade update request")
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromGrade(grade), "Grade updated successfully"))
}

// GetStudentGrades retrieves one student's grades
// @Summary Get student grades
// @Description Retrieves a student's grades with assignments loaded; parents and students see published grades only
// @Tags gradebook
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Param subjectId query int false "Filter by subject ID"
// @Param assignmentId query int false "Filter by assignment ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/student/{studentId} [get]
func (c *GradeController) GetStudentGrades(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	var filter repositories.GradeFilter
	filter.SubjectID = parseOptionalID(ctx, "subjectId")
	filter.AssignmentID = parseOptionalID(ctx, "assignmentId")

	grades, err := c.gradeService.GetStudentGrades(ctx, actor, studentID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromGrades(grades), "Grades retrieved successfully"))
}

// MyGrades retrieves the acting student's own published grades
// @Summary Get my grades
// @Description Retrieves the published grades of the student linked to the authenticated account
// @Tags gradebook
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "Filter by subject ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Account is not linked to a student record"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/my-grades [get]
func (c *GradeController) MyGrades(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var filter repositories.GradeFilter
	filter.SubjectID = parseOptionalID(ctx, "subjectId")

	grades, err := c.gradeService.MyGrades(ctx, actor, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromGrades(grades), "Grades retrieved successfully"))
}

// GetAssignmentGrades retrieves all scores for one assignment
// @Summary Get assignment grades
// @Description Retrieves all recorded scores for one assignment
// @Tags gradebook
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.GradeResponse} "Grades retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/grades [get]
func (c *GradeController) GetAssignmentGrades(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	grades, err := c.gradeService.GetAssignmentGrades(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromGrades(grades), "Grades retrieved successfully"))
}

// GetStudentGradeSummary retrieves a student's weighted averages
// @Summary Get grade summary
// @Description Computes a student's weighted average per subject plus the overall average; averages are null when no graded work exists
// @Tags gradebook
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentGradeSummaryResponse} "Summary computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/student/{studentId}/summary [get]
func (c *GradeController) GetStudentGradeSummary(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	summary, err := c.gradeService.GetStudentSummary(ctx, actor, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Summary computed successfully"))
}
