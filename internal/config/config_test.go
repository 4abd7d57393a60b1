package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MAIL_PORT", "")
	t.Setenv("REPORT_WORKERS", "")
	t.Setenv("REPORT_MAX_DAYS", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("MAIL_CONTENT_TPL", "")
	t.Setenv("DB_PORT", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 366, cfg.MaxDays)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Location.String())
	assert.Equal(t, DefaultMailTemplate, cfg.Mail.Template)
	assert.Equal(t, "attendance", cfg.Mongo.Collection)
	assert.Equal(t, "3306", cfg.MySQL.Port)
}

func TestLoad_Overrides(t *testing.T) {
	setBase(t)
	t.Setenv("MAIL_PORT", "2525")
	t.Setenv("REPORT_WORKERS", "16")
	t.Setenv("REPORT_MAX_DAYS", "31")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("DB_USER", "hr")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "chamcong")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, 31, cfg.MaxDays)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "hr:secret@tcp(db:3306)/chamcong?parseTime=true&charset=utf8mb4", cfg.MySQL.DSN())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing mongo uri", func(t *testing.T) {
		setBase(t)
		t.Setenv("MONGODB_URI", "")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingEnv)
	})

	t.Run("bad mail port", func(t *testing.T) {
		setBase(t)
		t.Setenv("MAIL_PORT", "smtp")
		_, err := Load()
		assert.ErrorContains(t, err, "MAIL_PORT")
	})

	t.Run("bad max days", func(t *testing.T) {
		setBase(t)
		t.Setenv("REPORT_MAX_DAYS", "a year")
		_, err := Load()
		assert.ErrorContains(t, err, "REPORT_MAX_DAYS")
	})

	t.Run("bad timezone", func(t *testing.T) {
		setBase(t)
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.ErrorContains(t, err, "APP_TIMEZONE")
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CHAMCONG_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("CHAMCONG_TEST_VALUE", "")
	os.Unsetenv("CHAMCONG_TEST_VALUE")

	assert.True(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", GetEnv("CHAMCONG_TEST_VALUE"))
	assert.False(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
