package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
)

// OpenMySQL connects GORM to the HR directory.
func OpenMySQL(dsn string, log *zap.Logger) (*gorm.DB, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open mysql: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("storage: open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the directory tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Department{}, &Shift{}, &Holiday{})
}

// Directory reads employees, schedules and holidays from MySQL.
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{DB: db}
}

// Employees returns the employees of a department, or everyone when
// departmentID is 0, ordered by id.
func (d *Directory) Employees(ctx context.Context, departmentID uint64) ([]attendance.Employee, error) {
	db := d.DB.WithContext(ctx)

	q := db.Order("id")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	var users []User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("storage: load users: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(users))
	deptIDs := make([]uint64, 0)
	seen := map[uint64]bool{}
	for _, u := range users {
		ids = append(ids, u.Id)
		if !seen[u.DepartmentId] {
			seen[u.DepartmentId] = true
			deptIDs = append(deptIDs, u.DepartmentId)
		}
	}

	var depts []Department
	if err := db.Where("id IN ?", deptIDs).Find(&depts).Error; err != nil {
		return nil, fmt.Errorf("storage: load departments: %w", err)
	}
	var shifts []Shift
	if err := db.Where("employee_id IN ?", ids).Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("storage: load shifts: %w", err)
	}
	return toEmployees(users, depts, shifts), nil
}

// Holidays returns holiday dates between from and to, inclusive.
func (d *Directory) Holidays(ctx context.Context, from, to time.Time) ([]string, error) {
	var rows []Holiday
	err := d.DB.WithContext(ctx).
		Where("date BETWEEN ? AND ?", attendance.FormatDate(from), attendance.FormatDate(to)).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("storage: load holidays: %w", err)
	}
	dates := make([]string, 0, len(rows))
	for _, h := range rows {
		dates = append(dates, attendance.FormatDate(h.Date))
	}
	return dates, nil
}

func toEmployees(users []User, depts []Department, shifts []Shift) []attendance.Employee {
	names := make(map[uint64]string, len(depts))
	for _, d := range depts {
		names[d.Id] = d.Name
	}
	plans := map[uint64]*attendance.WeeklySchedule{}
	for _, s := range shifts {
		if s.Weekday < int(time.Sunday) || s.Weekday > int(time.Saturday) {
			continue
		}
		w, ok := plans[s.EmployeeId]
		if !ok {
			w = &attendance.WeeklySchedule{}
			plans[s.EmployeeId] = w
		}
		w[s.Weekday] = attendance.DaySchedule{
			Working: s.IsWorking,
			In:      baseline(s.InTime),
			Out:     baseline(s.OutTime),
		}
	}

	out := make([]attendance.Employee, 0, len(users))
	for _, u := range users {
		e := attendance.Employee{
			ID:         strconv.FormatUint(u.Id, 10),
			Name:       u.Username,
			Email:      u.Email,
			Department: names[u.DepartmentId],
			Manager:    u.PositionId == ManagerPosition,
		}
		if e.Department == "" {
			e.Department = "department-" + strconv.FormatUint(u.DepartmentId, 10)
		}
		if w, ok := plans[u.Id]; ok {
			e.Schedule = *w
		}
		out = append(out, e)
	}
	return out
}

func baseline(s *string) *attendance.TimeOfDay {
	if s == nil {
		return nil
	}
	t, err := attendance.ParseTimeOfDay(*s)
	if err != nil {
		return nil
	}
	return &t
}
