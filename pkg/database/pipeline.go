package database

import (
	"strings"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/errno"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidID   = errno.ParamErr.WithMessage("Invalid identifier")
	ErrInvalidSort = errno.ParamErr.WithMessage("Invalid sort field")
)

type stageKind int

const (
	stageMatch stageKind = iota
	stageJoin
	stageDerive
	stageProject
	stageSort
	stageSortExpr
)

type stage struct {
	kind stageKind
	sql  string
	args []interface{}
	desc bool
}

// Pipeline is an ordered list of match/join/derive/project/sort stages against
// one table. Stages are validated while they are added; Build refuses to produce
// a query once any stage failed.
type Pipeline struct {
	table  string
	stages []stage
	err    error
}

func NewPipeline(table string) *Pipeline {
	return &Pipeline{table: table}
}

func (p *Pipeline) Table() string {
	return p.table
}

func (p *Pipeline) Err() error {
	return p.err
}

func (p *Pipeline) fail(err error) *Pipeline {
	if p.err == nil {
		p.err = err
	}
	return p
}

func (p *Pipeline) push(s stage) *Pipeline {
	p.stages = append(p.stages, s)
	return p
}

// Match adds a WHERE condition.
func (p *Pipeline) Match(cond string, args ...interface{}) *Pipeline {
	return p.push(stage{kind: stageMatch, sql: cond, args: args})
}

// MatchID matches column against an identifier, rejecting malformed ones.
func (p *Pipeline) MatchID(column, id string) *Pipeline {
	if !model.ValidID(id) {
		return p.fail(ErrInvalidID.WithMessagef("Invalid identifier for %s", column))
	}
	return p.Match(column+" = ?", id)
}

// Join left-joins table under alias.
func (p *Pipeline) Join(table, alias, on string, args ...interface{}) *Pipeline {
	return p.push(stage{kind: stageJoin, sql: "LEFT JOIN " + table + " AS " + alias + " ON " + on, args: args})
}

func (p *Pipeline) InnerJoin(table, alias, on string, args ...interface{}) *Pipeline {
	return p.push(stage{kind: stageJoin, sql: "INNER JOIN " + table + " AS " + alias + " ON " + on, args: args})
}

// Derive adds a computed output column.
func (p *Pipeline) Derive(alias, expr string, args ...interface{}) *Pipeline {
	return p.push(stage{kind: stageDerive, sql: "(" + expr + ") AS " + alias, args: args})
}

// CountOf derives the size of the related set in table matching where.
func (p *Pipeline) CountOf(alias, table, where string, args ...interface{}) *Pipeline {
	return p.Derive(alias, "SELECT COUNT(*) FROM "+table+" WHERE "+where, args...)
}

// SumOf derives the sum of expr over the related set, zero when empty.
func (p *Pipeline) SumOf(alias, expr, table, where string, args ...interface{}) *Pipeline {
	return p.Derive(alias, "SELECT COALESCE(SUM("+expr+"), 0) FROM "+table+" WHERE "+where, args...)
}

// ExistsIn derives a boolean flag: whether the related set matching where is non-empty.
// Used for membership of the acting identity (isLiked, isSubscribed).
func (p *Pipeline) ExistsIn(alias, table, where string, args ...interface{}) *Pipeline {
	return p.Derive(alias, "EXISTS(SELECT 1 FROM "+table+" WHERE "+where+")", args...)
}

// Project selects output columns; "owner.username AS owner_username" style is allowed.
func (p *Pipeline) Project(columns ...string) *Pipeline {
	return p.push(stage{kind: stageProject, sql: strings.Join(columns, ", ")})
}

// Sort orders by a trusted column or alias.
func (p *Pipeline) Sort(column string, desc bool) *Pipeline {
	return p.push(stage{kind: stageSort, sql: column, desc: desc})
}

// SortExpr orders by a raw expression with bound args, e.g. FIELD(col, ?).
// It replaces any column sort.
func (p *Pipeline) SortExpr(expr string, args ...interface{}) *Pipeline {
	return p.push(stage{kind: stageSortExpr, sql: expr, args: args})
}

// SortBy orders by a client-supplied field name, resolved through allowed.
// An empty field falls back to fallback; an unknown one fails the pipeline.
func (p *Pipeline) SortBy(field, sortType string, allowed map[string]string, fallback string) *Pipeline {
	if field == "" {
		return p.Sort(fallback, true)
	}
	column, ok := allowed[field]
	if !ok {
		return p.fail(ErrInvalidSort.WithMessagef("Cannot sort by %s", field))
	}
	return p.Sort(column, !strings.EqualFold(sortType, "asc"))
}

// Build composes the full view query.
func (p *Pipeline) Build(db *gorm.DB) (*gorm.DB, error) {
	if p.err != nil {
		return nil, p.err
	}
	q := p.base(db)

	var (
		selects []string
		vars    []interface{}
	)
	for _, s := range p.stages {
		switch s.kind {
		case stageProject, stageDerive:
			selects = append(selects, s.sql)
			vars = append(vars, s.args...)
		case stageSort:
			q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.sql, Raw: true}, Desc: s.desc})
		case stageSortExpr:
			q = q.Clauses(clause.OrderBy{Expression: clause.Expr{SQL: s.sql, Vars: s.args, WithoutParentheses: true}})
		}
	}
	if len(selects) == 0 {
		selects = append(selects, p.table+".*")
	}
	q = q.Clauses(clause.Select{Expression: clause.Expr{SQL: strings.Join(selects, ", "), Vars: vars}})
	return q, nil
}

// BuildCount composes only the match and join stages, for counting.
func (p *Pipeline) BuildCount(db *gorm.DB) (*gorm.DB, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.base(db), nil
}

func (p *Pipeline) base(db *gorm.DB) *gorm.DB {
	q := db.Table(p.table)
	for _, s := range p.stages {
		switch s.kind {
		case stageJoin:
			q = q.Joins(s.sql, s.args...)
		case stageMatch:
			q = q.Where(s.sql, s.args...)
		}
	}
	return q
}
