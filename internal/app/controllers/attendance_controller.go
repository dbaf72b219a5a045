package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/services"
	"github.com/emreacar/schoolhub/internal/middleware"
)

// AttendanceController handles attendance marking and summary views.
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new attendance controller
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// MarkAttendance marks one student on one date
// @Summary Mark attendance
// @Description Marks or re-marks a single student's attendance for one date
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance details"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance marked successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format, status or roster membership"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid attendance request")
		return
	}

	record, err := c.attendanceService.Mark(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAttendance(record), "Attendance marked successfully"))
}

// BulkMarkAttendance marks a whole class roster for one date
// @Summary Bulk mark attendance
// @Description Marks attendance for a whole class roster on one date in a single transaction
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkMarkAttendanceRequest true "Roster entries"
// @Success 200 {object} dto.APIResponse{data=dto.BulkMarkAttendanceResponse} "Attendance marked successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format, status or roster membership"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/bulk [post]
func (c *AttendanceController) BulkMarkAttendance(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.BulkMarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid bulk attendance request")
		return
	}

	marked, err := c.attendanceService.BulkMark(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.BulkMarkAttendanceResponse{Marked: marked}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Attendance marked successfully"))
}

// GetClassAttendance retrieves the class roster with statuses for one date
// @Summary Get class attendance
// @Description Retrieves the full class roster for one date; students not yet marked carry a null status
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID" Format(int64) minimum(1)
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param sectionId query int false "Filter by section ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassAttendanceResponse} "Attendance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID or date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/class/{classId} [get]
func (c *AttendanceController) GetClassAttendance(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	view, err := c.attendanceService.GetClassAttendance(ctx, actor, classID, parseOptionalID(ctx, "sectionId"), ctx.Query("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, "Attendance retrieved successfully"))
}

// GetStudentAttendance retrieves one student's attendance within a range
// @Summary Get student attendance
// @Description Retrieves one student's attendance records within an explicit inclusive date range
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceResponse} "Attendance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID or date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/student/{studentId} [get]
func (c *AttendanceController) GetStudentAttendance(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	records, err := c.attendanceService.GetStudentAttendance(ctx, actor, studentID, ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAttendances(records), "Attendance retrieved successfully"))
}

// GetAttendanceSummary retrieves one student's attendance summary
// @Summary Get attendance summary
// @Description Computes a student's attendance statistics over an explicit inclusive date range
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceSummaryResponse} "Summary computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID or date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/student/{studentId}/summary [get]
func (c *AttendanceController) GetAttendanceSummary(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	summary, err := c.attendanceService.GetSummary(ctx, actor, studentID, ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Summary computed successfully"))
}

// GetClassAttendanceSummary retrieves per-student summaries for a class
// @Summary Get class attendance summary
// @Description Computes attendance statistics for every student on a class roster over an explicit inclusive date range
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID" Format(int64) minimum(1)
// @Param sectionId query int false "Restrict to a section"
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.ClassAttendanceSummaryResponse} "Summary computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID or date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/summary/{classId} [get]
func (c *AttendanceController) GetClassAttendanceSummary(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}
	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	summary, err := c.attendanceService.GetClassSummary(ctx, actor, classID,
		parseOptionalID(ctx, "sectionId"), ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Summary computed successfully"))
}
