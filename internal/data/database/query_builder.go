// Package database builds parameterised SQL for the repositories in internal/data.
// Every identifier is quoted through pgx.Identifier; values are always bound.
package database

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	In                 ConditionType = "IN"
	defaultLimit                     = -1
)

// ErrNoColumns is returned by BuildInsert when no allowed column carries a value.
var ErrNoColumns = errors.New("insert has no columns")

type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// OrderTerm is one ORDER BY column. Direction is ASC or DESC; anything else is dropped.
type OrderTerm struct {
	Column    string
	Direction string
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    []OrderTerm
	Limit      int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{Table: table, Limit: defaultLimit}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithOrderBy appends an ordering column.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = append(o.OrderBy, OrderTerm{Column: column, Direction: direction})
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// sanitizeQualifiedIdentifier quotes each dot-separated part of ident.
func sanitizeQualifiedIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

func buildSelectClause(options *ListQueryOptions) string {
	if len(options.Columns) == 0 {
		return "SELECT * "
	}
	cols := make([]string, len(options.Columns))
	for i, col := range options.Columns {
		cols[i] = sanitizeQualifiedIdentifier(col)
	}
	return fmt.Sprintf("SELECT %s ", strings.Join(cols, ", "))
}

func buildOrderClause(terms []OrderTerm) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.Column == "" {
			continue
		}
		part := sanitizeQualifiedIdentifier(t.Column)
		if dir := strings.ToUpper(t.Direction); dir == "ASC" || dir == "DESC" {
			part += " " + dir
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// BuildListQuery constructs a SELECT with WHERE, ORDER BY and LIMIT clauses.
//
//	options := NewListQueryOptions("job_items",
//		WithCondition(WhereCond("connote_nbr", Equal, connote)),
//		WithOrderBy("created_ts", "DESC"),
//		WithOrderBy("id", "DESC"),
//	)
//	query, args := BuildListQuery(options)
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	whereClause, args, next := buildWhereClause(options.Conditions, 1)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}

	query.WriteString(buildOrderClause(options.OrderBy))

	if options.Limit != defaultLimit {
		fmt.Fprintf(&query, " LIMIT $%d", next)
		args = append(args, options.Limit)
	}

	return query.String(), args
}

// BuildInsert builds an INSERT ... RETURNING statement from values restricted
// to the allowed columns. Columns are emitted in sorted order so the statement
// text is stable. Keys outside allowed are ignored.
func BuildInsert(table string, values map[string]any, allowed []string, returning string) (string, []any, error) {
	permitted := make(map[string]struct{}, len(allowed))
	for _, c := range allowed {
		permitted[c] = struct{}{}
	}

	cols := make([]string, 0, len(values))
	for k := range values {
		if _, ok := permitted[k]; ok {
			cols = append(cols, k)
		}
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("%s: %w", table, ErrNoColumns)
	}
	sort.Strings(cols)

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = sanitizeIdentifier(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[c]
	}

	var query strings.Builder
	fmt.Fprintf(&query, "INSERT INTO %s (%s) VALUES (%s)",
		sanitizeIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	if returning != "" {
		query.WriteString(" RETURNING ")
		query.WriteString(sanitizeIdentifier(returning))
	}
	return query.String(), args, nil
}

func handleStandardCondition(cond Condition, field string, paramCount int) (string, []any, int) {
	return fmt.Sprintf("%s %s $%d", field, cond.Type, paramCount), []any{cond.Value}, paramCount + 1
}

func handleInCondition(cond Condition, field string, paramCount int) (string, []any, int) {
	rv := reflect.ValueOf(cond.Value)
	if rv.Kind() != reflect.Slice || rv.Len() == 0 {
		return "", nil, paramCount
	}

	placeholders := make([]string, rv.Len())
	args := make([]any, rv.Len())
	current := paramCount
	for i := range rv.Len() {
		placeholders[i] = fmt.Sprintf("$%d", current)
		args[i] = rv.Index(i).Interface()
		current++
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ", ")), args, current
}

func processCondition(cond Condition, paramCount int) (string, []any, int) {
	if cond.Field == "" {
		return "", nil, paramCount
	}
	field := sanitizeQualifiedIdentifier(cond.Field)

	switch cond.Type {
	case In:
		return handleInCondition(cond, field, paramCount)
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual:
		return handleStandardCondition(cond, field, paramCount)
	}
	return "", nil, paramCount
}

func buildWhereClause(inputConditions []Condition, startParamIndex int) (string, []any, int) {
	conditions := make([]string, 0, len(inputConditions))
	args := []any{}
	paramCount := startParamIndex

	for _, cond := range inputConditions {
		conditionStr, newArgs, next := processCondition(cond, paramCount)
		if conditionStr != "" {
			conditions = append(conditions, conditionStr)
			args = append(args, newArgs...)
			paramCount = next
		}
	}

	if len(conditions) == 0 {
		return "", args, paramCount
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, paramCount
}
