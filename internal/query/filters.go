/**
 * CONTEXT:   Ad-hoc filter-based search over days/time_records for the data-query CLI
 * INPUT:     A QueryFilters value with optional fields set
 * OUTPUT:    A WHERE clause string plus positional args in matching order
 * BUSINESS:  The CLI surface composes filters the user passes as flags;
 *            clause order must match arg order exactly or bindings misalign
 * CHANGE:    Builds a qualified (d.*, t.*, project_path.*) WHERE clause since
 *            every caller joins days, time_records, and the recursive
 *            project-path CTE
 * RISK:      Medium - LIKE escaping must use ESCAPE '\' consistently for path-prefix filters
 */

package query

import "strings"

// QueryFilters holds every optional predicate the data-query CLI can apply.
// A nil pointer means "not set"; zero values are valid filter values.
type QueryFilters struct {
	Year               *int
	Month              *int
	Exercise           *bool
	Status             *bool
	From               *string
	To                 *string
	DayRemarkLike      *string
	ActivityRemarkLike *string
	PathContains       *string
	Overnight          *bool
}

// BuildWhereClauses renders filters into a "WHERE ... AND ..." clause (empty
// string if no filters are set) plus the positional arguments in clause
// order. Callers append this directly after a base query's FROM/JOIN.
func BuildWhereClauses(f QueryFilters) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.Year != nil {
		clauses = append(clauses, "d.year = ?")
		args = append(args, *f.Year)
	}
	if f.Month != nil {
		clauses = append(clauses, "d.month = ?")
		args = append(args, *f.Month)
	}
	if f.Exercise != nil {
		clauses = append(clauses, "d.exercise = ?")
		args = append(args, boolToInt(*f.Exercise))
	}
	if f.Status != nil {
		clauses = append(clauses, "d.status = ?")
		args = append(args, boolToInt(*f.Status))
	}
	if f.From != nil {
		clauses = append(clauses, "d.date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		clauses = append(clauses, "d.date <= ?")
		args = append(args, *f.To)
	}
	if f.DayRemarkLike != nil {
		clauses = append(clauses, "d.remark LIKE ?")
		args = append(args, "%"+*f.DayRemarkLike+"%")
	}
	if f.ActivityRemarkLike != nil {
		clauses = append(clauses, "t.activity_remark LIKE ?")
		args = append(args, "%"+*f.ActivityRemarkLike+"%")
	}
	if f.PathContains != nil {
		clauses = append(clauses, "project_path.path LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLikePattern(*f.PathContains)+"%")
	}
	if f.Overnight != nil && *f.Overnight {
		clauses = append(clauses, "(d.getup_time IS NULL OR d.getup_time = '' OR d.getup_time = '00:00')")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// escapeLikePattern escapes SQLite LIKE metacharacters so user-supplied
// path fragments containing '%' or '_' are matched literally.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"%", "\\%",
		"_", "\\_",
	)
	return replacer.Replace(s)
}
