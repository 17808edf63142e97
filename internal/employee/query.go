package employee

import (
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// fullNameExpr synthesizes the searchable full name on the SQL side. Plain
// || concatenation works on both postgres and sqlite, which keeps the repo
// tests honest.
const fullNameExpr = "lower(first_name || ' ' || last_name)"

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeSearch collapses runs of whitespace to a single space and trims
// the ends. The seed data is stored single-spaced, so search and storage see
// the same normal form.
func NormalizeSearch(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Predicate is one equality constraint of the generated query.
type Predicate struct {
	Column string
	Value  interface{}
}

// BuildPredicates derives the equality predicate set from the caller's
// filters, restricted to authorized columns. Unauthorized or unknown keys
// are dropped silently so a client cannot probe for column existence by
// filtering. The result depends only on the inputs: building twice yields
// the same set.
func BuildPredicates(authorizedColumns []string, filters map[string]string) []Predicate {
	authorized := make(map[string]struct{}, len(authorizedColumns))
	for _, c := range authorizedColumns {
		authorized[c] = struct{}{}
	}

	var preds []Predicate
	for _, fd := range Schema {
		if !fd.Filterable {
			continue
		}
		v, present := filters[fd.Name]
		if !present || v == "" {
			continue
		}
		if _, ok := authorized[fd.Name]; !ok {
			continue
		}
		if fd.Kind == FieldBool {
			b, err := strconv.ParseBool(v)
			if err != nil {
				continue
			}
			preds = append(preds, Predicate{Column: fd.Name, Value: b})
		} else {
			preds = append(preds, Predicate{Column: fd.Name, Value: v})
		}
	}
	return preds
}

// SearchScope applies the mandatory case-insensitive full-name substring
// match plus the prepared predicates, ANDed together.
func SearchScope(searchStr string, preds []Predicate) func(*gorm.DB) *gorm.DB {
	needle := "%" + strings.ToLower(NormalizeSearch(searchStr)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where(fullNameExpr+" LIKE ?", needle)
		for _, p := range preds {
			db = db.Where(p.Column+" = ?", p.Value)
		}
		return db
	}
}
