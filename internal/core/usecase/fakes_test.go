package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/kirillkom/talentoplus/internal/core/domain"
)

type countCall struct {
	method string
	arg    string
	scope  domain.Scope
}

// countStoreFake counts over an in-memory employee list and records calls.
type countStoreFake struct {
	employees []domain.Employee
	err       error
	calls     []countCall
}

func (f *countStoreFake) record(method, arg string, scope domain.Scope) error {
	f.calls = append(f.calls, countCall{method: method, arg: arg, scope: scope})
	return f.err
}

func (f *countStoreFake) count(scope domain.Scope, keep func(domain.Employee) bool) int {
	n := 0
	for _, e := range f.employees {
		if scope.Scoped() && e.OwnerID != scope.OwnerID {
			continue
		}
		if keep(e) {
			n++
		}
	}
	return n
}

func (f *countStoreFake) CountAll(_ context.Context, scope domain.Scope) (int, error) {
	if err := f.record("all", "", scope); err != nil {
		return 0, err
	}
	return f.count(scope, func(domain.Employee) bool { return true }), nil
}

func (f *countStoreFake) CountByStatus(_ context.Context, scope domain.Scope, status domain.EmployeeStatus) (int, error) {
	if err := f.record("status", string(status), scope); err != nil {
		return 0, err
	}
	return f.count(scope, func(e domain.Employee) bool { return e.Status == status }), nil
}

func (f *countStoreFake) CountByDepartmentName(_ context.Context, scope domain.Scope, name string) (int, error) {
	if err := f.record("department", name, scope); err != nil {
		return 0, err
	}
	return f.count(scope, func(e domain.Employee) bool { return strings.EqualFold(e.DepartmentName, name) }), nil
}

func (f *countStoreFake) CountByPosition(_ context.Context, scope domain.Scope, text string) (int, error) {
	if err := f.record("position", text, scope); err != nil {
		return 0, err
	}
	return f.count(scope, func(e domain.Employee) bool {
		return strings.Contains(strings.ToLower(e.Position), strings.ToLower(text))
	}), nil
}

type classifierFake struct {
	query domain.CanonicalQuery
	err   error
	calls int
}

func (f *classifierFake) Classify(context.Context, string) (domain.CanonicalQuery, error) {
	f.calls++
	if f.err != nil {
		return domain.CanonicalQuery{}, f.err
	}
	return f.query, nil
}

// rawClassifierFake mimics an external model answering with a raw tag.
func rawClassifierFake(raw string) *classifierFake {
	return &classifierFake{query: domain.Canonicalize(raw)}
}

var errStoreDown = errors.New("store down")

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: "1", Position: "Auxiliar Contable", Status: domain.EmployeeActive, DepartmentName: "Tecnología"},
		{ID: "2", Position: "Desarrollador", Status: domain.EmployeeActive, DepartmentName: "Tecnología"},
		{ID: "3", Position: "Auxiliar de Bodega", Status: domain.EmployeeInactive, DepartmentName: "Operaciones"},
		{ID: "4", Position: "Analista", Status: domain.EmployeeVacation, DepartmentName: "Recursos Humanos"},
		{ID: "5", Position: "Gerente", Status: domain.EmployeeInactive, DepartmentName: "Recursos Humanos", OwnerID: "owner-b"},
	}
}
