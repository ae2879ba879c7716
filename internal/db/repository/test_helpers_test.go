package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow satisfies pgx.Row from a slice of column values or a fixed error.
type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan expects %d values, got %d", len(dest), len(r.vals))
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *uuid.UUID:
			*target = r.vals[i].(uuid.UUID)
		case *string:
			*target = r.vals[i].(string)
		case *time.Time:
			*target = r.vals[i].(time.Time)
		case **time.Time:
			*target = r.vals[i].(*time.Time)
		default:
			return fmt.Errorf("unsupported scan target %T", d)
		}
	}
	return nil
}

// fakeDB records the statements issued through it and plays back canned rows.
type fakeDB struct {
	row     pgx.Row
	execErr error

	statements []string
	args       [][]any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.statements = append(f.statements, sql)
	f.args = append(f.args, args)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("query not stubbed")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.statements = append(f.statements, sql)
	f.args = append(f.args, args)
	return f.row
}
