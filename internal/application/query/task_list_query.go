// Package query translates raw list-query parameters into the store
// directives a repository understands.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"task-service/internal/domain/repositories"
)

// sortableTaskFields maps the wire-level sort names onto store columns.
// Unknown names are ignored rather than rejected.
var sortableTaskFields = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"completed":   "completed",
	"description": "description",
}

// ParseTaskListOptions reads completed/sortBy/limit/skip from raw query
// parameters.
//
//	completed=true|false  -> equality filter; absent -> no filter
//	sortBy=<field>:<dir>  -> "desc" descends, anything else ascends
//	limit=<n>, skip=<n>   -> absent or non-numeric means no limit / no skip,
//	                         which is deliberately not the same as zero
func ParseTaskListOptions(values url.Values) *repositories.TaskListOptions {
	opts := &repositories.TaskListOptions{}

	if raw := values.Get("completed"); raw != "" {
		completed := raw == "true"
		opts.Completed = &completed
	}

	if raw := values.Get("sortBy"); raw != "" {
		parts := strings.SplitN(raw, ":", 2)
		if column, ok := sortableTaskFields[parts[0]]; ok {
			opts.SortField = column
			opts.SortDesc = len(parts) == 2 && parts[1] == "desc"
		}
	}

	opts.Limit = parseOptionalInt(values.Get("limit"))
	opts.Skip = parseOptionalInt(values.Get("skip"))

	return opts
}

func parseOptionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
