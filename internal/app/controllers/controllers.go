package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/app/services"
	"github.com/emreacar/schoolhub/internal/middleware"
)

// Controllers struct holds all controllers
type Controllers struct {
	AuthController       *AuthController
	UserController       *UserController
	SchoolController     *SchoolController
	StudentController    *StudentController
	AcademicController   *AcademicController
	AttendanceController *AttendanceController
	GradeController      *GradeController
}

// NewControllers initializes all controllers
func NewControllers(svc *services.Services, logger zerolog.Logger) *Controllers {
	return &Controllers{
		AuthController:       NewAuthController(svc.AuthService, logger),
		UserController:       NewUserController(svc.UserService),
		SchoolController:     NewSchoolController(svc.SchoolService),
		StudentController:    NewStudentController(svc.StudentService),
		AcademicController:   NewAcademicController(svc.AcademicService),
		AttendanceController: NewAttendanceController(svc.AttendanceService),
		GradeController:      NewGradeController(svc.GradeService),
	}
}

// currentActor builds the acting identity from the claims the auth middleware
// stored in the request context. A false result means the middleware did not
// run; the caller must stop handling the request.
func currentActor(ctx *gin.Context) (authz.Actor, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return authz.Actor{}, false
	}
	schoolID, ok := middleware.CurrentSchoolID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return authz.Actor{}, false
	}
	role, ok := middleware.CurrentRole(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return authz.Actor{}, false
	}
	return authz.Actor{UserID: userID, SchoolID: schoolID, Role: role}, true
}

func abortUnauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// parseIDParam parses a positive int64 path parameter. On failure it writes
// the error response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func bindError(ctx *gin.Context, err error, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func parseOptionalID(ctx *gin.Context, name string) *int64 {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil
	}
	return &id
}
