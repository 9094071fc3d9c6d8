// ABOUTME: Parameterized SQL construction for the SQLite cache table
// ABOUTME: Identifiers are whitelisted and every value travels as a bind parameter

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the slice of the application logger the cache needs
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	allowedOperators = map[string]struct{}{
		"=": {}, "!=": {}, ">": {}, "<": {}, ">=": {}, "<=": {},
	}

	// Content keys embed full article URLs, which can run long.
	maxKeyLength   = 2048
	maxValueLength = 4 << 20

	suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}
)

// QueryBuilder assembles a single statement. Invalid identifiers leave the
// statement unchanged rather than splicing untrusted text into it.
type QueryBuilder struct {
	query  string
	params []interface{}
	where  bool
}

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{params: make([]interface{}, 0)}
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	return nil
}

// Select starts a SELECT; any invalid column collapses it to SELECT *
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if validateName(col) != nil {
			columns = nil
			break
		}
	}
	if len(columns) == 0 {
		qb.query = "SELECT * "
	} else {
		qb.query = "SELECT " + strings.Join(columns, ", ") + " "
	}
	return qb
}

// SelectCount starts a SELECT COUNT(*)
func (qb *QueryBuilder) SelectCount() *QueryBuilder {
	qb.query = "SELECT COUNT(*) "
	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if validateName(table) == nil {
		qb.query += "FROM " + table + " "
	}
	return qb
}

func (qb *QueryBuilder) conjunction() {
	if qb.where {
		qb.query += "AND "
		return
	}
	qb.query += "WHERE "
	qb.where = true
}

// Where adds a comparison; unknown operators fall back to equality
func (qb *QueryBuilder) Where(column, operator string, value interface{}) *QueryBuilder {
	if validateName(column) != nil {
		return qb
	}
	if _, ok := allowedOperators[operator]; !ok {
		operator = "="
	}
	qb.conjunction()
	qb.query += column + " " + operator + " ? "
	qb.params = append(qb.params, value)
	return qb
}

// WherePrefix matches rows whose column starts with prefix. substr is used
// instead of LIKE so %, _ and escape characters in keys need no quoting.
func (qb *QueryBuilder) WherePrefix(column string, prefix string) *QueryBuilder {
	if validateName(column) != nil {
		return qb
	}
	qb.conjunction()
	qb.query += "substr(" + column + ", 1, length(?)) = ? "
	qb.params = append(qb.params, prefix, prefix)
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if validateName(table) == nil {
		qb.query = "INSERT OR REPLACE INTO " + table + " "
	}
	return qb
}

// Values adds VALUES clause, silently dropping invalid columns
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		return qb
	}

	cols := make([]string, 0, len(columns))
	marks := make([]string, 0, len(columns))
	for i, col := range columns {
		if validateName(col) != nil {
			continue
		}
		cols = append(cols, col)
		marks = append(marks, "?")
		qb.params = append(qb.params, values[i])
	}
	if len(cols) == 0 {
		return qb
	}

	qb.query += "(" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if validateName(table) == nil {
		qb.query = "DELETE FROM " + table + " "
	}
	return qb
}

// Build returns the built query and parameters
func (qb *QueryBuilder) Build() (string, []interface{}) {
	return strings.TrimSpace(qb.query), qb.params
}

// ValidateKey rejects unusable keys and reports, without rejecting, keys that
// look like injection attempts
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}
	return nil
}

func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}
	return nil
}

// statements are built once; nil placeholders only count parameters
type statements struct {
	get, set, del, cleanup, deletePrefix, count, countExpired string
}

func buildStatements(table string) statements {
	get, _ := NewQueryBuilder().Select("value").From(table).
		Where("key", "=", nil).Where("expiry", ">", nil).Build()
	set, _ := NewQueryBuilder().InsertOrReplace(table).
		Values([]string{"key", "value", "expiry"}, []interface{}{nil, nil, nil}).Build()
	del, _ := NewQueryBuilder().Delete(table).Where("key", "=", nil).Build()
	cleanup, _ := NewQueryBuilder().Delete(table).Where("expiry", "<=", nil).Build()
	deletePrefix, _ := NewQueryBuilder().Delete(table).WherePrefix("key", "").Build()
	count, _ := NewQueryBuilder().SelectCount().From(table).Build()
	countExpired, _ := NewQueryBuilder().SelectCount().From(table).Where("expiry", "<=", nil).Build()

	return statements{
		get:          get,
		set:          set,
		del:          del,
		cleanup:      cleanup,
		deletePrefix: deletePrefix,
		count:        count,
		countExpired: countExpired,
	}
}
