package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	SchoolRepository     *SchoolRepository
	CalendarRepository   *CalendarRepository
	StudentRepository    *StudentRepository
	AcademicRepository   *AcademicRepository
	AttendanceRepository *AttendanceRepository
	GradeRepository      *GradeRepository
	InvitationRepository *InvitationRepository
	TokenRepository      *TokenRepository
	OwnershipRepository  *OwnershipRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		SchoolRepository:     NewSchoolRepository(db),
		CalendarRepository:   NewCalendarRepository(db),
		StudentRepository:    NewStudentRepository(db),
		AcademicRepository:   NewAcademicRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		GradeRepository:      NewGradeRepository(db),
		InvitationRepository: NewInvitationRepository(db),
		TokenRepository:      NewTokenRepository(db),
		OwnershipRepository:  NewOwnershipRepository(db),
	}
}
