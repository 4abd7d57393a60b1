package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ManagerPosition is the position id of a department manager.
const ManagerPosition = 1

// User is an employee row of the HR directory.
type User struct {
	Id           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"size:128;not null"`
	Email        string `gorm:"size:255"`
	DepartmentId uint64 `gorm:"index"`
	PositionId   uint64
	ManagerId    uint64
}

type Department struct {
	Id   uint64 `gorm:"primaryKey"`
	Name string `gorm:"size:128;not null"`
}

// Shift is one weekday of an employee's plan. Weekday follows time.Weekday.
// InTime and OutTime are "HH:MM:SS" or NULL; a weekly off keeps its window.
type Shift struct {
	Id         uint64  `gorm:"primaryKey"`
	EmployeeId uint64  `gorm:"uniqueIndex:idx_shift_day"`
	Weekday    int     `gorm:"uniqueIndex:idx_shift_day"`
	IsWorking  bool    `gorm:"not null;default:true"`
	InTime     *string `gorm:"type:time"`
	OutTime    *string `gorm:"type:time"`
}

func (Shift) TableName() string { return "employee_shifts" }

type Holiday struct {
	Id   uint64    `gorm:"primaryKey"`
	Date time.Time `gorm:"type:date;uniqueIndex"`
	Name string    `gorm:"size:128"`
}

// Attendance is a punch document in MongoDB. A zero time means the punch
// was not made.
type Attendance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	DepartmentId uint64             `bson:"department_id"`
	UserId       uint64             `bson:"user_id"`
	TimeCheckIn  time.Time          `bson:"time_checkin"`
	TimeCheckOut time.Time          `bson:"time_checkout"`
}
