package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
)

// HolidayFile is a YAML calendar of extra organisation holidays:
//
//	holidays:
//	  - date: 2024-09-02
//	    name: National Day
type HolidayFile struct {
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

// LoadHolidayFile returns the dates listed in path.
func LoadHolidayFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: read holiday file: %w", err)
	}
	var f HolidayFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("storage: parse holiday file %s: %w", path, err)
	}
	dates := make([]string, 0, len(f.Holidays))
	for i, h := range f.Holidays {
		d, err := attendance.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("storage: holiday %d in %s: %w", i, path, err)
		}
		dates = append(dates, attendance.FormatDate(d))
	}
	return dates, nil
}
