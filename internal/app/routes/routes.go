package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emreacar/schoolhub/internal/app/controllers"
	"github.com/emreacar/schoolhub/internal/app/models"
	"github.com/emreacar/schoolhub/internal/app/models/dto"
	"github.com/emreacar/schoolhub/internal/middleware"
)

// SetupRouter configures all application routes. Fine-grained authorization
// (tenant isolation, role capabilities, ownership) is enforced by the guard
// inside the service layer; the route table only separates public endpoints,
// authenticated endpoints and the platform administration group.
func SetupRouter(
	router *gin.Engine,
	c *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register-school", c.AuthController.RegisterSchool)
		auth.POST("/login", c.AuthController.Login)
		auth.POST("/refresh", c.AuthController.RefreshToken)
		auth.POST("/invitations/accept", c.AuthController.AcceptInvitation)
		auth.GET("/invitations/:token", c.AuthController.GetInvitation)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authProtected := authenticated.Group("/auth")
		{
			authProtected.POST("/logout", c.AuthController.Logout)
			authProtected.GET("/me", c.AuthController.GetProfile)
			authProtected.POST("/change-password", c.AuthController.ChangePassword)
			authProtected.POST("/invitations", c.AuthController.InviteUser)
			authProtected.GET("/invitations", c.AuthController.ListInvitations)
		}

		school := authenticated.Group("/school")
		{
			school.GET("", c.SchoolController.GetSchool)
			school.PUT("", c.SchoolController.UpdateSchool)
			school.POST("/complete-setup", c.SchoolController.CompleteSetup)
			school.GET("/grading-scales", c.SchoolController.GetGradingScales)
			school.PUT("/grading-scales", c.SchoolController.UpdateGradingScales)
		}

		calendar := authenticated.Group("/calendar")
		{
			calendar.POST("/academic-years", c.SchoolController.CreateAcademicYear)
			calendar.GET("/academic-years", c.SchoolController.ListAcademicYears)
			calendar.GET("/academic-years/current", c.SchoolController.GetCurrentAcademicYear)
			calendar.GET("/academic-years/:yearId/terms", c.SchoolController.ListTerms)
			calendar.POST("/terms", c.SchoolController.CreateTerm)
			calendar.POST("/holidays", c.SchoolController.CreateHoliday)
			calendar.GET("/holidays", c.SchoolController.ListHolidays)
			calendar.DELETE("/holidays/:id", c.SchoolController.DeleteHoliday)
		}

		users := authenticated.Group("/users")
		{
			users.GET("", c.UserController.ListUsers)
			users.POST("", c.UserController.CreateUser)
			users.GET("/teachers", c.UserController.ListTeachers)
			users.GET("/parents", c.UserController.ListParentAccounts)
			users.GET("/:id", c.UserController.GetUser)
			users.PUT("/:id", c.UserController.UpdateUser)
			users.PUT("/:id/role", c.UserController.UpdateUserRole)
			users.POST("/:id/deactivate", c.UserController.DeactivateUser)
			users.POST("/:id/reactivate", c.UserController.ReactivateUser)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", c.StudentController.ListStudents)
			students.POST("", c.StudentController.CreateStudent)
			students.GET("/my-children", c.StudentController.MyChildren)
			students.GET("/:id", c.StudentController.GetStudent)
			students.PUT("/:id", c.StudentController.UpdateStudent)
			students.PUT("/:id/status", c.StudentController.UpdateStudentStatus)
			students.GET("/:id/parents", c.StudentController.ListParents)
			students.POST("/:id/parents", c.StudentController.LinkParent)
			students.DELETE("/:id/parents/:parentId", c.StudentController.UnlinkParent)
		}

		classes := authenticated.Group("/classes")
		{
			classes.GET("", c.AcademicController.ListClasses)
			classes.POST("", c.AcademicController.CreateClass)
			classes.GET("/my-classes", c.AcademicController.MyClasses)
			classes.GET("/:id", c.AcademicController.GetClass)
			classes.PUT("/:id", c.AcademicController.UpdateClass)
			classes.PUT("/:id/status", c.AcademicController.SetClassStatus)
			classes.GET("/:id/sections", c.AcademicController.ListSections)
			classes.GET("/:id/subjects", c.AcademicController.ListClassSubjects)
			classes.GET("/:id/enrollments", c.AcademicController.ListEnrollments)
		}

		sections := authenticated.Group("/sections")
		{
			sections.POST("", c.AcademicController.CreateSection)
			sections.PUT("/:id", c.AcademicController.UpdateSection)
		}

		subjects := authenticated.Group("/subjects")
		{
			subjects.GET("", c.AcademicController.ListSubjects)
			subjects.POST("", c.AcademicController.CreateSubject)
			subjects.PUT("/:id/status", c.AcademicController.SetSubjectStatus)
		}

		classSubjects := authenticated.Group("/class-subjects")
		{
			classSubjects.POST("", c.AcademicController.AssignSubject)
			classSubjects.DELETE("/:id", c.AcademicController.RemoveClassSubject)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("", c.AcademicController.EnrollStudent)
			enrollments.PUT("/:id/status", c.AcademicController.SetEnrollmentStatus)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.POST("", c.AttendanceController.MarkAttendance)
			attendance.POST("/bulk", c.AttendanceController.BulkMarkAttendance)
			attendance.GET("/class/:classId", c.AttendanceController.GetClassAttendance)
			attendance.GET("/student/:studentId", c.AttendanceController.GetStudentAttendance)
			attendance.GET("/student/:studentId/summary", c.AttendanceController.GetAttendanceSummary)
			attendance.GET("/summary/:classId", c.AttendanceController.GetClassAttendanceSummary)
		}

		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("", c.GradeController.ListAssignments)
			assignments.POST("", c.GradeController.CreateAssignment)
			assignments.GET("/:id", c.GradeController.GetAssignment)
			assignments.PUT("/:id", c.GradeController.UpdateAssignment)
			assignments.DELETE("/:id", c.GradeController.ArchiveAssignment)
			assignments.GET("/:id/grades", c.GradeController.GetAssignmentGrades)
		}

		grades := authenticated.Group("/grades")
		{
			grades.POST("", c.GradeController.RecordGrade)
			grades.POST("/bulk", c.GradeController.BulkRecordGrades)
			grades.PUT("/:id", c.GradeController.UpdateGrade)
			grades.GET("/my-grades", c.GradeController.MyGrades)
			grades.GET("/student/:studentId", c.GradeController.GetStudentGrades)
			grades.GET("/student/:studentId/summary", c.GradeController.GetStudentGradeSummary)
		}

		// Platform administration, super admins only. The guard re-checks the
		// role; the middleware just keeps the group out of tenant traffic.
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			admin.GET("/schools", c.SchoolController.ListSchools)
			admin.PUT("/schools/:id/status", c.SchoolController.SetSchoolStatus)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
