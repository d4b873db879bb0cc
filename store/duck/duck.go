// Package duck is a DuckDB backed provider of table rows.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "portal/entity"
)

const table = "items"

// ErrNotFound is returned when an id matches no row.
var ErrNotFound = errors.New("item not found")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Duck struct {
	db      *sql.DB
	logger  nt.Logger
	fields  []nt.Field
	columns []string // id, createdAt, then field keys
	name    string

	mu   sync.Mutex
	view nt.View
}

// New opens path, in memory when empty, and creates the items table from fields.
func New(path string, fields []nt.Field, lgr nt.Logger) (dk *Duck, err error) {

	for _, field := range fields {
		if !identifier.MatchString(field.Key) {
			err = errors.Errorf("field key %q is not a valid column name", field.Key)
			return
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open duck at %q", path)
		return
	}

	name := path
	if name == "" {
		name = "memory"
	}

	columns := []string{"id", "createdAt"}
	for _, field := range fields {
		if !nt.Managed(field.Key) {
			columns = append(columns, field.Key)
		}
	}

	dk = &Duck{
		db:      db,
		logger:  lgr,
		fields:  fields,
		columns: columns,
		name:    name,
	}

	err = dk.createTable()
	if err != nil {
		db.Close()
		dk = nil
	}
	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the data source
func (dk *Duck) Name() string {
	return dk.name
}

// SetView search, sort and filters for subsequent queries
func (dk *Duck) SetView(view nt.View) (err error) {

	if view.Sort.Field != "" && !dk.known(view.Sort.Field) {
		err = errors.Errorf("cannot sort by unknown field %q", view.Sort.Field)
		return
	}

	dk.mu.Lock()
	dk.view = view
	dk.mu.Unlock()
	return
}

// Count rows matching the view
func (dk *Duck) Count(ctx context.Context) (count int, err error) {

	where, args := dk.buildWhereClause()
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", table, where)

	err = dk.db.QueryRowContext(ctx, query, args...).Scan(&count)
	err = errors.Wrapf(err, "failed to count %s", table)
	return
}

// GetPage of rows matching the view
func (dk *Duck) GetPage(ctx context.Context, offset, size int) (page []nt.Row, err error) {

	where, args := dk.buildWhereClause()
	query := fmt.Sprintf("SELECT %s FROM %s %s %s LIMIT ? OFFSET ?",
		dk.selectList(), table, where, dk.buildOrderClause())
	args = append(args, size, offset)

	rows, err := dk.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query %s", table)
		return
	}
	defer rows.Close()

	page, err = scanRows(rows)
	return
}

// Create a row from user values, assigning id and creation time
func (dk *Duck) Create(ctx context.Context, values map[string]any) (row nt.Row, err error) {

	id := uuid.NewString()
	cols, args := dk.assignments(values)

	cols = append([]string{"id"}, cols...)
	args = append([]any{id}, args...)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, quoteAll(cols), placeholders(len(cols)))

	_, err = dk.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to insert into %s", table)
		return
	}

	dk.logger.Info(ctx, "created item", "id", id)
	row, err = dk.get(ctx, id)
	return
}

// Update a row's user values
func (dk *Duck) Update(ctx context.Context, id string, values map[string]any) (err error) {

	cols, args := dk.assignments(values)
	if len(cols) == 0 {
		return
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = quote(col) + " = ?"
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	result, err := dk.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		err = errors.Wrapf(err, "failed to update %s", id)
		return
	}

	err = affected(result, id)
	return
}

// Delete a row
func (dk *Duck) Delete(ctx context.Context, id string) (err error) {

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	result, err := dk.db.ExecContext(ctx, query, id)
	if err != nil {
		err = errors.Wrapf(err, "failed to delete %s", id)
		return
	}

	err = affected(result, id)
	return
}

// Seed inserts count demo rows, newest first.
func (dk *Duck) Seed(ctx context.Context, count int) (err error) {

	statuses := []string{"active", "inactive", "pending"}
	now := time.Now()

	for i := range count {
		values := map[string]any{}
		for _, field := range dk.fields {
			values[field.Key] = demoValue(field, i, statuses)
		}

		cols, args := dk.assignments(values)
		cols = append([]string{"id", "createdAt"}, cols...)
		args = append([]any{uuid.NewString(), now.AddDate(0, 0, -i)}, args...)

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, quoteAll(cols), placeholders(len(cols)))

		_, err = dk.db.ExecContext(ctx, query, args...)
		if err != nil {
			err = errors.Wrapf(err, "failed to seed row %d", i)
			return
		}
	}

	dk.logger.Info(ctx, "seeded items", "count", count)
	return
}

// unexported

func (dk *Duck) createTable() (err error) {

	defs := []string{
		`"id" VARCHAR PRIMARY KEY`,
		`"createdAt" TIMESTAMP DEFAULT current_timestamp`,
	}
	for _, field := range dk.fields {
		if nt.Managed(field.Key) {
			continue
		}
		defs = append(defs, fmt.Sprintf("%s %s", quote(field.Key), sqlType(field.Kind)))
	}

	_, err = dk.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", ")))
	err = errors.Wrapf(err, "failed to create table")
	return
}

func (dk *Duck) get(ctx context.Context, id string) (row nt.Row, err error) {

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", dk.selectList(), table)
	rows, err := dk.db.QueryContext(ctx, query, id)
	if err != nil {
		err = errors.Wrapf(err, "failed to query %s", id)
		return
	}
	defer rows.Close()

	found, err := scanRows(rows)
	if err != nil {
		return
	}
	if len(found) == 0 {
		err = errors.Wrapf(ErrNotFound, "id %s", id)
		return
	}

	row = found[0]
	return
}

func (dk *Duck) known(field string) bool {
	return slices.Contains(dk.columns, field)
}

func (dk *Duck) selectList() string {
	return quoteAll(dk.columns)
}

// assignments returns the known, unmanaged columns in values with their values
func (dk *Duck) assignments(values map[string]any) (cols []string, args []any) {

	for _, col := range dk.columns {
		if nt.Managed(col) {
			continue
		}
		val, ok := values[col]
		if !ok {
			continue
		}
		cols = append(cols, col)
		args = append(args, val)
	}
	return
}

// buildWhereClause combines search and filters into a WHERE clause with bound args
func (dk *Duck) buildWhereClause() (clause string, args []any) {

	dk.mu.Lock()
	view := dk.view
	dk.mu.Unlock()

	var clauses []string

	if view.Search != "" {
		var likes []string
		for _, col := range dk.textColumns() {
			likes = append(likes, fmt.Sprintf(`CAST(%s AS VARCHAR) ILIKE ? ESCAPE '\'`, quote(col)))
			args = append(args, containing(view.Search))
		}
		clauses = append(clauses, "("+strings.Join(likes, " OR ")+")")
	}

	expr, filterArgs := dk.buildFilterExpr(view.Combined())
	if expr != "" {
		clauses = append(clauses, expr)
		args = append(args, filterArgs...)
	}

	if len(clauses) == 0 {
		return
	}
	clause = "WHERE " + strings.Join(clauses, " AND ")
	return
}

// buildFilterExpr recursively builds filter expression (without WHERE prefix)
func (dk *Duck) buildFilterExpr(f nt.Filter) (string, []any) {

	switch f.Op {
	case nt.And, nt.Or:
		joiner := " AND "
		if f.Op == nt.Or {
			joiner = " OR "
		}

		var clauses []string
		var args []any
		for _, child := range f.Children {
			expr, childArgs := dk.buildFilterExpr(child)
			if expr != "" {
				clauses = append(clauses, expr)
				args = append(args, childArgs...)
			}
		}
		if len(clauses) == 0 {
			return "", nil
		}
		return "(" + strings.Join(clauses, joiner) + ")", args

	case nt.Not:
		if len(f.Children) > 0 {
			expr, args := dk.buildFilterExpr(f.Children[0])
			if expr != "" {
				return "NOT (" + expr + ")", args
			}
		}
		return "", nil
	}

	if !dk.known(f.Field) {
		dk.logger.Info(context.Background(), "ignoring filter on unknown field", "field", f.Field)
		return "", nil
	}
	col := quote(f.Field)

	switch f.Op {
	case nt.Eq:
		return col + " = ?", []any{f.Value}
	case nt.Ne:
		return col + " != ?", []any{f.Value}
	case nt.Gt:
		return col + " > ?", []any{f.Value}
	case nt.Gte:
		return col + " >= ?", []any{f.Value}
	case nt.Lt:
		return col + " < ?", []any{f.Value}
	case nt.Lte:
		return col + " <= ?", []any{f.Value}
	case nt.Contains:
		return fmt.Sprintf(`CAST(%s AS VARCHAR) ILIKE ? ESCAPE '\'`, col), []any{containing(fmt.Sprintf("%v", f.Value))}
	case nt.Match:
		return fmt.Sprintf("regexp_matches(CAST(%s AS VARCHAR), ?)", col), []any{fmt.Sprintf("%v", f.Value)}
	}
	return "", nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containing is a LIKE pattern matching text anywhere, wildcards in text taken literally
func containing(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

func (dk *Duck) buildOrderClause() string {

	dk.mu.Lock()
	sort := dk.view.Sort
	dk.mu.Unlock()

	if sort.Field == "" {
		return `ORDER BY "createdAt" DESC, "id"`
	}

	dir := "ASC"
	if sort.Direction == nt.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(`ORDER BY %s %s, "id"`, quote(sort.Field), dir)
}

// textColumns are searched by the search box
func (dk *Duck) textColumns() (cols []string) {

	cols = []string{"id"}
	for _, field := range dk.fields {
		if nt.Managed(field.Key) {
			continue
		}
		switch field.Kind {
		case nt.NumberInput, nt.BoolInput, nt.PasswordInput:
			continue
		}
		cols = append(cols, field.Key)
	}
	return
}

func sqlType(kind nt.InputKind) string {
	switch kind {
	case nt.NumberInput:
		return "DOUBLE"
	case nt.BoolInput:
		return "BOOLEAN"
	}
	return "VARCHAR"
}

func demoValue(field nt.Field, i int, statuses []string) any {

	switch {
	case field.Key == "name":
		return fmt.Sprintf("Item %d", i+1)
	case field.Key == "status":
		return statuses[i%len(statuses)]
	case field.Kind == nt.ChoiceInput && len(field.Options) > 0:
		return field.Options[i%len(field.Options)]
	case field.Kind == nt.NumberInput:
		return float64(i+1) * 10.5
	case field.Kind == nt.BoolInput:
		return i%2 == 0
	}
	return fmt.Sprintf("%s %d", field.Label, i+1)
}

func affected(result sql.Result, id string) (err error) {

	count, err := result.RowsAffected()
	if err != nil {
		err = errors.Wrapf(err, "failed to get rows affected")
		return
	}
	if count == 0 {
		err = errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return
}

func scanRows(rows *sql.Rows) (page []nt.Row, err error) {

	cols, err := rows.Columns()
	if err != nil {
		err = errors.Wrapf(err, "failed to get cols from query rows")
		return
	}

	for rows.Next() {
		var vals []any
		vals, err = scanRow(rows, len(cols))
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		row := nt.Row{}
		for i, col := range cols {
			row[col] = vals[i]
		}
		page = append(page, row)
	}

	err = errors.Wrapf(rows.Err(), "error iterating rows")
	return
}

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}

func quote(col string) string {
	return `"` + col + `"`
}

func quoteAll(cols []string) string {
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = quote(col)
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
