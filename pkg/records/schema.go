package records

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/layout"
)

// Schema names the tables and fields that carry course data.
type Schema struct {
	// CourseField holds the course identifier in course and requisite records.
	CourseField string `toml:"course_field" validate:"required"`
	// RequisiteField holds the prerequisite identifier in requisite records.
	RequisiteField string `toml:"requisite_field" validate:"required"`
	// PrimaryField holds the optional primary flag in requisite records.
	PrimaryField string `toml:"primary_field"`
	// CourseTables are read, in order, to collect course identifiers.
	CourseTables []string `toml:"course_tables" validate:"min=1,dive,required"`
	// RequisiteTables are read, in order, to collect prerequisites.
	RequisiteTables []string `toml:"requisite_tables" validate:"min=1,dive,required"`
	// CoursePrefixes select the tables that receive x/y on merge.
	CoursePrefixes []string `toml:"course_prefixes" validate:"dive,required"`
	// RequisitePrefixes select the tables that receive endpoint coordinates.
	RequisitePrefixes []string `toml:"requisite_prefixes" validate:"dive,required"`
}

// DefaultSchema matches the spreadsheet export used by course planners.
func DefaultSchema() Schema {
	return Schema{
		CourseField:       "course_number",
		RequisiteField:    "requisite_number",
		PrimaryField:      "is_primary",
		CourseTables:      []string{"courses"},
		RequisiteTables:   []string{"course_requisites"},
		CoursePrefixes:    []string{"courses"},
		RequisitePrefixes: []string{"requisites", "course_requisites"},
	}
}

// Extract collects course identifiers and prerequisite records. Records with
// a blank identifier are skipped. Course identifiers repeat when several
// course tables list the same course; the graph builder collapses them.
func Extract(ds *Dataset, schema Schema) (courses []string, reqs []catalog.Requisite) {
	for _, name := range schema.CourseTables {
		for _, rec := range ds.Tables[name] {
			if id := field(rec, schema.CourseField); id != "" {
				courses = append(courses, id)
			}
		}
	}
	for _, name := range schema.RequisiteTables {
		for _, rec := range ds.Tables[name] {
			course := field(rec, schema.CourseField)
			req := field(rec, schema.RequisiteField)
			if course == "" || req == "" {
				continue
			}
			reqs = append(reqs, catalog.Requisite{
				Course:    course,
				Requisite: req,
				Primary:   primary(rec, schema.PrimaryField),
			})
		}
	}
	return courses, reqs
}

// Merge returns a deep copy of ds with coordinates attached. Course records
// get x and y, plus r and theta (degrees) for polar strategies. Requisite
// records get course_x, course_y, requisite_x and requisite_y. Records whose
// identifiers have no coordinate are left untouched.
func Merge(ds *Dataset, coords layout.Coordinates, schema Schema) *Dataset {
	out := ds.Clone()
	for name, rows := range out.Tables {
		switch {
		case hasPrefix(name, schema.RequisitePrefixes):
			for _, rec := range rows {
				if c, ok := coords[field(rec, schema.CourseField)]; ok {
					rec["course_x"] = c.X
					rec["course_y"] = c.Y
				}
				if c, ok := coords[field(rec, schema.RequisiteField)]; ok {
					rec["requisite_x"] = c.X
					rec["requisite_y"] = c.Y
				}
			}
		case hasPrefix(name, schema.CoursePrefixes):
			for _, rec := range rows {
				c, ok := coords[field(rec, schema.CourseField)]
				if !ok {
					continue
				}
				rec["x"] = c.X
				rec["y"] = c.Y
				if c.Polar {
					rec["r"] = c.R
					rec["theta"] = c.ThetaDegrees()
				}
			}
		}
	}
	return out
}

func hasPrefix(name string, prefixes []string) bool {
	return slices.ContainsFunc(prefixes, func(p string) bool {
		return strings.HasPrefix(name, p)
	})
}

// field returns a record value as a trimmed string. Spreadsheet exports
// sometimes store identifiers as numbers.
func field(rec Record, key string) string {
	switch v := rec[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%g", v))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// primary interprets a primary flag. An absent or blank flag means primary.
func primary(rec Record, key string) bool {
	if key == "" {
		return true
	}
	switch v := rec[key].(type) {
	case nil:
		return true
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "1", "true", "yes", "y":
			return true
		}
		return false
	default:
		return true
	}
}
