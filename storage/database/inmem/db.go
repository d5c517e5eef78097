// Package inmemdb keeps the repositories in maps, for tests and local demos.
// WithTx runs fn directly: writes made before a failure are not rolled back.
package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
	"github.com/trezcool/timetable/core/user"
)

type (
	DB struct {
		mutex sync.RWMutex
		pk    int

		users            table[user.User]
		teachers         table[school.Teacher]
		rooms            table[school.Room]
		subjects         table[school.Subject]
		programs         table[school.Program]
		grades           table[school.GradeLevel]
		timeslots        table[school.Timeslot]
		schedules        table[school.ClassSchedule]
		responsibilities table[school.Responsibility]
		configs          table[school.TableConfig]
	}

	// table maps primary keys to rows; pk points at the ID field of a row.
	table[T any] struct {
		rows map[int]T
		pk   func(*T) *int
	}
)

func NewDB() *DB {
	return &DB{
		users:            newTable(func(r *user.User) *int { return &r.ID }),
		teachers:         newTable(func(r *school.Teacher) *int { return &r.ID }),
		rooms:            newTable(func(r *school.Room) *int { return &r.ID }),
		subjects:         newTable(func(r *school.Subject) *int { return &r.ID }),
		programs:         newTable(func(r *school.Program) *int { return &r.ID }),
		grades:           newTable(func(r *school.GradeLevel) *int { return &r.ID }),
		timeslots:        newTable(func(r *school.Timeslot) *int { return &r.ID }),
		schedules:        newTable(func(r *school.ClassSchedule) *int { return &r.ID }),
		responsibilities: newTable(func(r *school.Responsibility) *int { return &r.ID }),
		configs:          newTable(func(r *school.TableConfig) *int { return &r.ID }),
	}
}

func (db *DB) WithTx(ctx context.Context, fn func(exec core.DBExecutor) error) error {
	return fn(nil)
}

func newTable[T any](pk func(*T) *int) table[T] {
	return table[T]{rows: make(map[int]T), pk: pk}
}

// insert assigns a fresh primary key to each row. Callers hold db.mutex.
func (t table[T]) insert(db *DB, rows ...T) []T {
	created := make([]T, 0, len(rows))
	for _, row := range rows {
		db.pk++
		*t.pk(&row) = db.pk
		t.rows[db.pk] = row
		created = append(created, row)
	}
	return created
}

// update replaces the rows that exist and skips the others.
func (t table[T]) update(rows ...T) int {
	var cnt int
	for _, row := range rows {
		id := *t.pk(&row)
		if _, ok := t.rows[id]; ok {
			t.rows[id] = row
			cnt++
		}
	}
	return cnt
}

func (t table[T]) delete(ids ...int) int {
	var cnt int
	for _, id := range ids {
		if _, ok := t.rows[id]; ok {
			delete(t.rows, id)
			cnt++
		}
	}
	return cnt
}

func (t table[T]) deleteWhere(match func(T) bool) int {
	var cnt int
	for id, row := range t.rows {
		if match(row) {
			delete(t.rows, id)
			cnt++
		}
	}
	return cnt
}

// query returns the matching rows ordered by primary key. A nil match keeps every row.
func (t table[T]) query(match func(T) bool) []T {
	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if match == nil || match(row) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return *t.pk(&rows[i]) < *t.pk(&rows[j]) })
	return rows
}

func (t table[T]) get(id int) (T, error) {
	row, ok := t.rows[id]
	if !ok {
		return row, core.ErrNotFound
	}
	return row, nil
}
