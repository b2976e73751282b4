package domain

import (
	"strings"
	"time"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeInactive EmployeeStatus = "Inactive"
	EmployeeVacation EmployeeStatus = "Vacation"
)

// ParseEmployeeStatus matches case-insensitively and falls back to Active.
func ParseEmployeeStatus(raw string) EmployeeStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "inactive":
		return EmployeeInactive
	case "vacation":
		return EmployeeVacation
	default:
		return EmployeeActive
	}
}

func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeVacation:
		return true
	default:
		return false
	}
}

type EducationLevel string

const (
	EducationNone           EducationLevel = "None"
	EducationHighSchool     EducationLevel = "HighSchool"
	EducationTechnical      EducationLevel = "Technical"
	EducationProfessional   EducationLevel = "Professional"
	EducationSpecialization EducationLevel = "Specialization"
	EducationMasters        EducationLevel = "Masters"
	EducationDoctorate      EducationLevel = "Doctorate"
)

var educationLevels = []EducationLevel{
	EducationNone,
	EducationHighSchool,
	EducationTechnical,
	EducationProfessional,
	EducationSpecialization,
	EducationMasters,
	EducationDoctorate,
}

// ParseEducationLevel matches case-insensitively and falls back to None.
func ParseEducationLevel(raw string) EducationLevel {
	value := strings.TrimSpace(raw)
	for _, level := range educationLevels {
		if strings.EqualFold(value, string(level)) {
			return level
		}
	}
	return EducationNone
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Employee struct {
	ID             string         `json:"id"`
	Document       string         `json:"document"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Address        string         `json:"address,omitempty"`
	Position       string         `json:"position"`
	Salary         float64        `json:"salary"`
	HireDate       time.Time      `json:"hire_date"`
	Status         EmployeeStatus `json:"status"`
	EducationLevel EducationLevel `json:"education_level"`
	Profile        string         `json:"profile,omitempty"`
	DepartmentID   string         `json:"department_id"`
	DepartmentName string         `json:"department_name,omitempty"`
	OwnerID        string         `json:"owner_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Scope restricts repository reads to one owner. The zero value is unscoped.
type Scope struct {
	OwnerID string
}

func (s Scope) Scoped() bool {
	return strings.TrimSpace(s.OwnerID) != ""
}

type DashboardMetrics struct {
	Total    int `json:"total"`
	Vacation int `json:"vacation"`
	Active   int `json:"active"`
}
