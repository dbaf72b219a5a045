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

// SchoolController handles school profile, platform administration and the
// academic calendar.
type SchoolController struct {
	schoolService *services.SchoolService
}

// NewSchoolController creates a new school controller
func NewSchoolController(schoolService *services.SchoolService) *SchoolController {
	return &SchoolController{schoolService: schoolService}
}

// GetSchool retrieves the caller's school profile
// @Summary Get school profile
// @Description Retrieves the profile of the caller's school
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SchoolResponse} "School retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	school, err := c.schoolService.Get(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromSchool(school), "School retrieved successfully"))
}

// UpdateSchool updates the caller's school profile
// @Summary Update school profile
// @Description Updates mutable profile fields of the caller's school
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSchoolRequest true "School profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.SchoolResponse} "School updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school [put]
func (c *SchoolController) UpdateSchool(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid school update request")
		return
	}

	school, err := c.schoolService.Update(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromSchool(school), "School updated successfully"))
}

// CompleteSetup marks the caller's school setup as finished
// @Summary Complete school setup
// @Description Marks the onboarding of the caller's school as completed and activates it
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Setup completed successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/complete-setup [post]
func (c *SchoolController) CompleteSetup(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	if err := c.schoolService.CompleteSetup(ctx, actor); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Setup completed successfully"))
}

// GetGradingScales retrieves the caller's school grading scale
// @Summary Get grading scales
// @Description Retrieves the school's letter grade bands; the default scale applies when the school has not customized one
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.GradingScalesResponse} "Grading scales retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/grading-scales [get]
func (c *SchoolController) GetGradingScales(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	scales, err := c.schoolService.GetGradingScales(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.GradingScalesResponse{Scales: scales}, "Grading scales retrieved successfully"))
}

// UpdateGradingScales replaces the caller's school grading scale
// @Summary Update grading scales
// @Description Replaces the school's letter grade bands; new letters apply to grades recorded afterwards
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateGradingScalesRequest true "Grading scale bands"
// @Success 200 {object} dto.APIResponse{data=dto.GradingScalesResponse} "Grading scales updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or band boundaries"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /school/grading-scales [put]
func (c *SchoolController) UpdateGradingScales(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGradingScalesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid grading scale request")
		return
	}

	scales, err := c.schoolService.UpdateGradingScales(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.GradingScalesResponse{Scales: scales}, "Grading scales updated successfully"))
}

// ListSchools retrieves all school tenants (platform administration)
// @Summary List all schools
// @Description Retrieves all school tenants with optional status filtering
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, active, suspended)"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.SchoolListResponse} "Schools retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools [get]
func (c *SchoolController) ListSchools(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var status *models.SchoolStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.SchoolStatus(raw)
		status = &s
	}
	page, size := helpers.ParsePaginationParams(ctx)

	schools, total, err := c.schoolService.ListAll(ctx, actor, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		responses = append(responses, dto.FromSchool(&schools[i]))
	}
	response := dto.SchoolListResponse{
		Schools:    responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Schools retrieved successfully"))
}

// SetSchoolStatus transitions a school tenant's status (platform administration)
// @Summary Set school status
// @Description Activates or suspends a school tenant
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "School ID" Format(int64) minimum(1)
// @Param request body object{status=string} true "New status"
// @Success 200 {object} dto.APIResponse "School status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/schools/{id}/status [put]
func (c *SchoolController) SetSchoolStatus(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.SchoolStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid status request")
		return
	}

	if err := c.schoolService.SetStatus(ctx, actor, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "School status updated successfully"))
}

// CreateAcademicYear adds an academic year to the calendar
// @Summary Create academic year
// @Description Creates an academic year in the caller's school calendar
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year details"
// @Success 201 {object} dto.APIResponse{data=dto.AcademicYearResponse} "Academic year created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/academic-years [post]
func (c *SchoolController) CreateAcademicYear(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid academic year request")
		return
	}

	year, err := c.schoolService.CreateAcademicYear(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromAcademicYear(year), "Academic year created successfully"))
}

// ListAcademicYears lists the academic years of the caller's school
// @Summary List academic years
// @Description Retrieves the academic years of the caller's school, newest first
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AcademicYearResponse} "Academic years retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/academic-years [get]
func (c *SchoolController) ListAcademicYears(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	years, err := c.schoolService.ListAcademicYears(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AcademicYearResponse, 0, len(years))
	for i := range years {
		responses = append(responses, dto.FromAcademicYear(&years[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Academic years retrieved successfully"))
}

// GetCurrentAcademicYear retrieves the academic year flagged current
// @Summary Get current academic year
// @Description Retrieves the academic year currently in effect for the caller's school
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AcademicYearResponse} "Academic year retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "No current academic year configured"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/academic-years/current [get]
func (c *SchoolController) GetCurrentAcademicYear(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	year, err := c.schoolService.GetCurrentAcademicYear(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAcademicYear(year), "Academic year retrieved successfully"))
}

// CreateTerm adds a grading period to an academic year
// @Summary Create term
// @Description Creates a grading period inside an academic year
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTermRequest true "Term details"
// @Success 201 {object} dto.APIResponse{data=dto.TermResponse} "Term created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/terms [post]
func (c *SchoolController) CreateTerm(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateTermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid term request")
		return
	}

	term, err := c.schoolService.CreateTerm(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromTerm(term), "Term created successfully"))
}

// ListTerms lists the terms of an academic year
// @Summary List terms
// @Description Retrieves the grading periods of one academic year
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param yearId path int true "Academic year ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.TermResponse} "Terms retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid academic year ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/academic-years/{yearId}/terms [get]
func (c *SchoolController) ListTerms(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	yearID, ok := parseIDParam(ctx, "yearId")
	if !ok {
		return
	}

	terms, err := c.schoolService.ListTerms(ctx, actor, yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.TermResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, dto.FromTerm(&terms[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Terms retrieved successfully"))
}

// CreateHoliday adds a holiday to the calendar
// @Summary Create holiday
// @Description Adds a non-instructional day to the caller's school calendar
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHolidayRequest true "Holiday details"
// @Success 201 {object} dto.APIResponse{data=dto.HolidayResponse} "Holiday created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/holidays [post]
func (c *SchoolController) CreateHoliday(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid holiday request")
		return
	}

	holiday, err := c.schoolService.CreateHoliday(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromHoliday(holiday), "Holiday created successfully"))
}

// ListHolidays lists holidays within a date range
// @Summary List holidays
// @Description Retrieves the holidays of the caller's school within an inclusive date range
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]dto.HolidayResponse} "Holidays retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/holidays [get]
func (c *SchoolController) ListHolidays(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	start, end, err := helpers.ParseDateRange(ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date range")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	holidays, err := c.schoolService.ListHolidays(ctx, actor, start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		responses = append(responses, dto.FromHoliday(&holidays[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses, "Holidays retrieved successfully"))
}

// DeleteHoliday removes a holiday from the calendar
// @Summary Delete holiday
// @Description Removes a holiday from the caller's school calendar
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param id path int true "Holiday ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Holiday deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Holiday not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar/holidays/{id} [delete]
func (c *SchoolController) DeleteHoliday(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.schoolService.DeleteHoliday(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Holiday deleted successfully"))
}
