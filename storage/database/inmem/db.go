package inmemdb

import (
	"sync"

	"github.com/darasahq/darasa/core/attendance"
	"github.com/darasahq/darasa/core/marks"
	"github.com/darasahq/darasa/core/student"
	"github.com/darasahq/darasa/core/user"
)

// DB is a mutex-guarded map store backing the repositories in tests.
type (
	DB struct {
		user       *userTable
		student    *studentTable
		attendance *attendanceTable
		mark       *markTable
	}

	userTable struct {
		t     map[string]*user.User
		mutex sync.RWMutex
	}

	studentTable struct {
		t     map[string]*student.Student
		seq   []string // insertion order
		mutex sync.RWMutex
	}

	attendanceTable struct {
		t     map[string]*attendance.Record
		mutex sync.RWMutex
	}

	markTable struct {
		t     map[string]*marks.Mark
		seq   []string
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{t: make(map[string]*user.User)},
		student:    &studentTable{t: make(map[string]*student.Student)},
		attendance: &attendanceTable{t: make(map[string]*attendance.Record)},
		mark:       &markTable{t: make(map[string]*marks.Mark)},
	}
	return db, nil
}
