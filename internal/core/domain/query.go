package domain

import "strings"

type QueryKind int

const (
	QueryTotal QueryKind = iota
	QueryByStatus
	QueryByDepartment
	QueryByPosition
)

func (k QueryKind) String() string {
	switch k {
	case QueryByStatus:
		return "status"
	case QueryByDepartment:
		return "department"
	case QueryByPosition:
		return "position"
	default:
		return "total"
	}
}

const (
	departmentPlaceholder = "<nombre>"
	positionPlaceholder   = "<texto>"
)

// CanonicalQuery is the classified intent of a question. Its String form is
// echoed back to callers as the human-readable trace of what was counted.
type CanonicalQuery struct {
	Kind   QueryKind
	Status EmployeeStatus
	// Value is the quoted department name or position text, case preserved.
	Value string
	// Placeholder is set on heuristic forms that carry no extracted value.
	Placeholder bool
}

func TotalQuery() CanonicalQuery {
	return CanonicalQuery{Kind: QueryTotal}
}

func StatusQuery(status EmployeeStatus) CanonicalQuery {
	return CanonicalQuery{Kind: QueryByStatus, Status: status}
}

func DepartmentQuery(name string) CanonicalQuery {
	return CanonicalQuery{Kind: QueryByDepartment, Value: name}
}

func PositionQuery(text string) CanonicalQuery {
	return CanonicalQuery{Kind: QueryByPosition, Value: text}
}

func DepartmentPlaceholderQuery() CanonicalQuery {
	return CanonicalQuery{Kind: QueryByDepartment, Placeholder: true}
}

func PositionPlaceholderQuery() CanonicalQuery {
	return CanonicalQuery{Kind: QueryByPosition, Placeholder: true}
}

// Param returns the extracted parameter, or "" for placeholder forms.
func (q CanonicalQuery) Param() string {
	if q.Placeholder {
		return ""
	}
	return q.Value
}

func (q CanonicalQuery) String() string {
	switch q.Kind {
	case QueryByStatus:
		return "contar empleados en estado " + statusLabel(q.Status)
	case QueryByDepartment:
		value := q.Value
		if q.Placeholder {
			value = departmentPlaceholder
		}
		return `contar empleados por departamento "` + value + `"`
	case QueryByPosition:
		value := q.Value
		if q.Placeholder {
			value = positionPlaceholder
		}
		return `contar empleados por cargo "` + value + `"`
	default:
		return "contar todos los empleados"
	}
}

// statusLabel keeps "Vacation" untranslated; consumers match on these literals.
func statusLabel(status EmployeeStatus) string {
	switch status {
	case EmployeeInactive:
		return "Inactivo"
	case EmployeeVacation:
		return "Vacation"
	default:
		return "Activo"
	}
}

// Canonicalize maps a raw classifier answer (one of the four tag shapes) to a
// CanonicalQuery. Unrecognized text is the total-count intent.
func Canonicalize(raw string) CanonicalQuery {
	trimmed := strings.TrimSpace(raw)
	upper := strings.ToUpper(trimmed)

	switch {
	case strings.HasPrefix(upper, "DEPARTAMENTO"):
		return DepartmentQuery(ExtractQuoted(trimmed))
	case strings.HasPrefix(upper, "ESTADO"):
		switch {
		case strings.Contains(upper, "INACTIVO"):
			return StatusQuery(EmployeeInactive)
		case strings.Contains(upper, "VACACION"):
			return StatusQuery(EmployeeVacation)
		default:
			return StatusQuery(EmployeeActive)
		}
	case strings.HasPrefix(upper, "CARGO"):
		return PositionQuery(ExtractQuoted(trimmed))
	default:
		return TotalQuery()
	}
}

// ExtractQuoted returns the text between the first and last double quote, or
// "" when fewer than two quotes are present.
func ExtractQuoted(text string) string {
	start := strings.IndexByte(text, '"')
	end := strings.LastIndexByte(text, '"')
	if start < 0 || end <= start {
		return ""
	}
	return text[start+1 : end]
}

type QueryResult struct {
	Question     string `json:"question"`
	SQLLikeQuery string `json:"sqlLikeQuery"`
	Result       string `json:"result"`
}
