package dto

import (
	"github.com/emreacar/schoolhub/internal/app/models"
)

// SchoolResponse represents a school tenant.
type SchoolResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	Address        *string `json:"address,omitempty"`
	City           *string `json:"city,omitempty"`
	Country        *string `json:"country,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	Email          *string `json:"email,omitempty"`
	Website        *string `json:"website,omitempty"`
	Status         string  `json:"status"`
	SetupCompleted bool    `json:"setupCompleted"`
}

// SchoolListResponse represents a paginated list of schools.
type SchoolListResponse struct {
	Schools    []SchoolResponse `json:"schools"`
	Pagination PaginationInfo   `json:"pagination"`
}

// UpdateSchoolRequest updates mutable school profile fields.
type UpdateSchoolRequest struct {
	Name        string  `json:"name" binding:"required"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Country     *string `json:"country,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// GradingScaleEntry is one band of a school's grading scale.
type GradingScaleEntry struct {
	Name        string  `json:"name" binding:"required" example:"A+"`
	MinScore    float64 `json:"minScore" binding:"min=0" example:"90"`
	MaxScore    float64 `json:"maxScore" binding:"required,gt=0" example:"100"`
	GradeLetter string  `json:"gradeLetter" binding:"required" example:"A+"`
	GradePoint  float64 `json:"gradePoint" binding:"min=0" example:"4.0"`
}

// UpdateGradingScalesRequest replaces the school's grading scale.
type UpdateGradingScalesRequest struct {
	Scales []GradingScaleEntry `json:"scales" binding:"required,min=1,dive"`
}

// GradingScalesResponse carries a school's letter grade bands.
type GradingScalesResponse struct {
	Scales []models.GradingScale `json:"scales"`
}

// CreateAcademicYearRequest creates an academic year in the calendar.
type CreateAcademicYearRequest struct {
	Name      string `json:"name" binding:"required" example:"2025-2026"`
	StartDate string `json:"startDate" binding:"required" example:"2025-09-01"`
	EndDate   string `json:"endDate" binding:"required" example:"2026-06-30"`
	IsCurrent bool   `json:"isCurrent"`
}

// CreateTermRequest creates a grading period inside an academic year.
type CreateTermRequest struct {
	AcademicYearID int64           `json:"academicYearId" binding:"required,min=1"`
	Name           string          `json:"name" binding:"required" example:"Term 1"`
	TermType       models.TermType `json:"termType" binding:"required" example:"semester"`
	StartDate      string          `json:"startDate" binding:"required" example:"2025-09-01"`
	EndDate        string          `json:"endDate" binding:"required" example:"2026-01-20"`
	IsCurrent      bool            `json:"isCurrent"`
}

// CreateHolidayRequest adds a non-instructional day to the calendar.
type CreateHolidayRequest struct {
	Name        string  `json:"name" binding:"required" example:"Winter Break"`
	Date        string  `json:"date" binding:"required" example:"2025-12-24"`
	Description *string `json:"description,omitempty"`
}

// AcademicYearResponse represents an academic year.
type AcademicYearResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsCurrent bool   `json:"isCurrent"`
}

// TermResponse represents a grading period.
type TermResponse struct {
	ID             int64  `json:"id"`
	AcademicYearID int64  `json:"academicYearId"`
	Name           string `json:"name"`
	TermType       string `json:"termType"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	IsCurrent      bool   `json:"isCurrent"`
}

// HolidayResponse represents a calendar holiday.
type HolidayResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
}

const dateLayout = "2006-01-02"

// FromSchool converts a model school to its response form.
func FromSchool(s *models.School) SchoolResponse {
	if s == nil {
		return SchoolResponse{}
	}
	return SchoolResponse{
		ID:             s.ID,
		Name:           s.Name,
		Code:           s.Code,
		Address:        s.Address,
		City:           s.City,
		Country:        s.Country,
		PhoneNumber:    s.PhoneNumber,
		Email:          s.Email,
		Website:        s.Website,
		Status:         string(s.Status),
		SetupCompleted: s.SetupCompleted,
	}
}

// FromAcademicYear converts a model academic year.
func FromAcademicYear(y *models.AcademicYear) AcademicYearResponse {
	if y == nil {
		return AcademicYearResponse{}
	}
	return AcademicYearResponse{
		ID:        y.ID,
		Name:      y.Name,
		StartDate: y.StartDate.Format(dateLayout),
		EndDate:   y.EndDate.Format(dateLayout),
		IsCurrent: y.IsCurrent,
	}
}

// FromTerm converts a model term.
func FromTerm(t *models.Term) TermResponse {
	if t == nil {
		return TermResponse{}
	}
	return TermResponse{
		ID:             t.ID,
		AcademicYearID: t.AcademicYearID,
		Name:           t.Name,
		TermType:       string(t.TermType),
		StartDate:      t.StartDate.Format(dateLayout),
		EndDate:        t.EndDate.Format(dateLayout),
		IsCurrent:      t.IsCurrent,
	}
}

// FromHoliday converts a model holiday.
func FromHoliday(h *models.Holiday) HolidayResponse {
	if h == nil {
		return HolidayResponse{}
	}
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format(dateLayout),
		Description: h.Description,
	}
}
