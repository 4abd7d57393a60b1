package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

var ErrMissingEnv = errors.New("config: required variable not set")

// DefaultMailTemplate is used when MAIL_CONTENT_TPL is empty.
const DefaultMailTemplate = `<p>Attendance for <b>$DEPT_NAME</b> on $DATE</p>
<ul>
<li>Employees: $TOTAL</li>
<li>Present: $PRESENT</li>
<li>Absent: $ABSENT</li>
<li>Check in late: $CHECK_IN_LATE</li>
<li>Check out soon: $CHECK_OUT_SOON</li>
<li>Same in/out: $SAME_IN_OUT</li>
<li>Weekend: $WEEKEND</li>
<li>Holiday: $HOLIDAY</li>
</ul>`

type Config struct {
	MySQL       MySQLConfig
	Mongo       MongoConfig
	Mail        MailConfig
	Location    *time.Location
	HolidayFile string
	HTTPAddr    string
	Workers     int
	MaxDays     int
	LogLevel    string
}

type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN is the go-sql-driver connection string. parseTime converts DATE and
// DATETIME columns to time.Time; TIME columns still arrive as "HH:MM:SS".
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Subject  string
	Template string
}

// LoadDotEnv reads .env into the process environment if present. It
// reports whether a file was loaded.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	c := &Config{
		MySQL: MySQLConfig{
			Host:     GetEnv("DB_HOST", "127.0.0.1"),
			Port:     GetEnv("DB_PORT", "3306"),
			User:     GetEnv("DB_USER"),
			Password: GetEnv("DB_PASS"),
			Name:     GetEnv("DB_NAME"),
		},
		Mongo: MongoConfig{
			URI:        GetEnv("MONGODB_URI"),
			Database:   GetEnv("MONGODB_NAME", "chamcong"),
			Collection: GetEnv("MONGODB_COLLECTION", "attendance"),
		},
		Mail: MailConfig{
			Host:     GetEnv("MAIL_HOST"),
			User:     GetEnv("MAIL_USER"),
			Password: GetEnv("MAIL_PASS"),
			Subject:  GetEnv("MAIL_SUBJECT", "Attendance report"),
			Template: GetEnv("MAIL_CONTENT_TPL", DefaultMailTemplate),
		},
		HolidayFile: GetEnv("HOLIDAY_FILE"),
		HTTPAddr:    GetEnv("HTTP_ADDR", ":8080"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
	}

	if c.Mongo.URI == "" {
		return nil, fmt.Errorf("%w: MONGODB_URI", ErrMissingEnv)
	}

	var err error
	if c.Mail.Port, err = getInt("MAIL_PORT", 587); err != nil {
		return nil, err
	}
	if c.Workers, err = getInt("REPORT_WORKERS", 4); err != nil {
		return nil, err
	}
	if c.MaxDays, err = getInt("REPORT_MAX_DAYS", 366); err != nil {
		return nil, err
	}

	tz := GetEnv("APP_TIMEZONE", "Asia/Ho_Chi_Minh")
	if c.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("config: APP_TIMEZONE %q: %w", tz, err)
	}
	return c, nil
}

// GetEnv returns the variable or the first default when it is unset or blank.
func GetEnv(key string, defaultValue ...string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return v
}

func getInt(key string, def int) (int, error) {
	raw := GetEnv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
