package database

import (
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"
)

// Excluded references the incoming row in an ON CONFLICT DO UPDATE clause
func Excluded(column string) any {
	return sqlbuilder.Raw(fmt.Sprintf("EXCLUDED.%s", column))
}

type InsertBuilder struct {
	*sqlbuilder.InsertBuilder
}

func NewInsertBuilder() *InsertBuilder {
	return &InsertBuilder{
		sqlbuilder.PostgreSQL.NewInsertBuilder(),
	}
}

// OnConflict turns the insert into an upsert keyed by the given columns. The
// returned update builder holds the DO UPDATE assignments.
func (b *InsertBuilder) OnConflict(columns ...string) *UpdateBuilder {
	ub := NewUpdateBuilder()
	b.SQL(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE %s", strings.Join(columns, ", "), b.Var(ub)))

	return ub
}

func (ib *InsertBuilder) Build() (sql string, args []interface{}) {
	return ib.InsertBuilder.Build()
}

func (ib *InsertBuilder) Cols(col ...string) *InsertBuilder {
	return &InsertBuilder{ib.InsertBuilder.Cols(col...)}
}

func (ib *InsertBuilder) InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{ib.InsertBuilder.InsertInto(table)}
}

func (ib *InsertBuilder) Values(value ...interface{}) *InsertBuilder {
	return &InsertBuilder{ib.InsertBuilder.Values(value...)}
}

func (ib *InsertBuilder) Var(arg interface{}) string {
	return ib.InsertBuilder.Var(arg)
}

type UpdateBuilder struct {
	*sqlbuilder.UpdateBuilder
}

func NewUpdateBuilder() *UpdateBuilder {
	return &UpdateBuilder{sqlbuilder.PostgreSQL.NewUpdateBuilder()}
}

type DeleteBuilder struct {
	*sqlbuilder.DeleteBuilder
}

func NewDeleteBuilder() *DeleteBuilder {
	return &DeleteBuilder{sqlbuilder.PostgreSQL.NewDeleteBuilder()}
}

type SelectBuilder struct {
	*sqlbuilder.SelectBuilder
}

func NewSelectBuilder() *SelectBuilder {
	return &SelectBuilder{sqlbuilder.PostgreSQL.NewSelectBuilder()}
}
