package usecase

import (
	"strings"
	"unicode/utf8"
)

const departmentPhrase = "departamento de"

var knownDepartmentFragments = []struct {
	fragments []string
	name      string
}{
	{fragments: []string{"tecnolog"}, name: "tecnología"},
	{fragments: []string{"recursos humanos"}, name: "recursos humanos"},
	{fragments: []string{"operacion", "operación"}, name: "operaciones"},
}

// extractDepartmentName guesses a department name from a lower-cased
// question. It returns "" when nothing looks like a department.
func extractDepartmentName(question string) string {
	if idx := strings.Index(question, departmentPhrase); idx >= 0 {
		parts := strings.Fields(question[idx+len(departmentPhrase):])
		if len(parts) > 0 {
			candidate := parts[0]
			if len(parts) > 1 && utf8.RuneCountInString(parts[1]) > 3 {
				candidate = parts[0] + " " + parts[1]
			}
			return strings.Trim(candidate, ".?!,;")
		}
	}

	for _, known := range knownDepartmentFragments {
		for _, fragment := range known.fragments {
			if strings.Contains(question, fragment) {
				return known.name
			}
		}
	}
	return ""
}
