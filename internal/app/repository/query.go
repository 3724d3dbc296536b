package repository

import (
	"strings"

	"gorm.io/gorm"
)

// SortOrder is the direction of a list query
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc/desc in any case; anything else is desc
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereContains adds a case-insensitive substring match on column. LIKE
// wildcards in value match literally. column must come from code, never
// from request input.
func whereContains(query *gorm.DB, column, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return query
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
	return query.Where("LOWER("+column+`) LIKE ? ESCAPE '\'`, pattern)
}

// resolveSort maps a client sort key onto a SQL column through an
// allow-list. Unknown keys fall back to fallback.
func resolveSort(allowed map[string]string, key, fallback string) string {
	if column, ok := allowed[strings.TrimSpace(key)]; ok {
		return column
	}
	return fallback
}
