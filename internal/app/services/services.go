package services

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	authz "github.com/emreacar/schoolhub/internal/app/auth"
	"github.com/emreacar/schoolhub/internal/app/repositories"
	"github.com/emreacar/schoolhub/internal/pkg/auth"
	"github.com/emreacar/schoolhub/internal/pkg/email"
)

// Services struct holds all services
type Services struct {
	AuthService        *AuthService
	UserService        *UserService
	SchoolService      *SchoolService
	StudentService     *StudentService
	AcademicService    *AcademicService
	AttendanceService  *AttendanceService
	GradeService       *GradeService
	AggregationService *AggregationService
}

// NewServices creates all services wired to a shared authorization guard.
func NewServices(
	pool *pgxpool.Pool,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *Services {
	guard := authz.NewGuard(repos.OwnershipRepository)
	aggregation := NewAggregationService()

	return &Services{
		AuthService:        NewAuthService(pool, repos, jwtService, emailService, logger),
		UserService:        NewUserService(repos, guard, logger),
		SchoolService:      NewSchoolService(repos, guard, logger),
		StudentService:     NewStudentService(repos, guard, logger),
		AcademicService:    NewAcademicService(repos, guard, logger),
		AttendanceService:  NewAttendanceService(repos, aggregation, guard, logger),
		GradeService:       NewGradeService(repos, aggregation, guard, logger),
		AggregationService: aggregation,
	}
}
