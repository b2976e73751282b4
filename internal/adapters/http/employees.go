package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type employeeRequest struct {
	Document       string  `json:"document"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	Position       string  `json:"position"`
	Salary         float64 `json:"salary"`
	HireDate       string  `json:"hire_date"`
	Status         string  `json:"status"`
	EducationLevel string  `json:"education_level"`
	Profile        string  `json:"profile"`
	DepartmentID   string  `json:"department_id"`
}

func (req employeeRequest) toDomain() (domain.Employee, error) {
	employee := domain.Employee{
		Document:       req.Document,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Position:       req.Position,
		Salary:         req.Salary,
		Profile:        req.Profile,
		DepartmentID:   req.DepartmentID,
		Status:         domain.EmployeeStatus(strings.TrimSpace(req.Status)),
		EducationLevel: domain.ParseEducationLevel(req.EducationLevel),
	}
	if employee.Status != "" {
		employee.Status = domain.ParseEmployeeStatus(req.Status)
	}

	hireDate, err := parseHireDate(req.HireDate)
	if err != nil {
		return domain.Employee{}, err
	}
	employee.HireDate = hireDate
	return employee, nil
}

func parseHireDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.WrapError(domain.ErrInvalidInput, "parse hire_date", fmt.Errorf("unsupported date %q", raw))
}

func decodeEmployee(r *http.Request) (domain.Employee, error) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.Employee{}, domain.WrapError(domain.ErrInvalidInput, "decode employee", errors.New("invalid json"))
	}
	return req.toDomain()
}

func (rt *Router) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := rt.deps.Employees.List(r.Context(), scopeFromRequest(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": employees})
}

func (rt *Router) getEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := rt.deps.Employees.GetByID(r.Context(), scopeFromRequest(r), r.PathValue("id"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (rt *Router) createEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := decodeEmployee(r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	created, err := rt.deps.Employees.Create(r.Context(), scopeFromRequest(r), employee)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/employees/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (rt *Router) updateEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := decodeEmployee(r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	employee.ID = r.PathValue("id")
	updated, err := rt.deps.Employees.Update(r.Context(), scopeFromRequest(r), employee)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (rt *Router) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := rt.deps.Employees.Delete(r.Context(), scopeFromRequest(r), r.PathValue("id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportEmployees buffers the workbook so a failure can still be reported as JSON.
func (rt *Router) exportEmployees(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := rt.deps.Employees.Export(r.Context(), scopeFromRequest(r), &buf); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="empleados.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
