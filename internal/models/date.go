package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date 仅日期类型（到货日、售出日、支付日均不含时分秒）
type Date struct {
	time.Time
}

// Today 当前日期（UTC，截断到日）
func Today() Date {
	return DateOf(time.Now().UTC())
}

// DateOf 从时间截断出日期
func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate 解析 YYYY-MM-DD 格式日期
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// After 日期晚于
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Before 日期早于
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// MarshalJSON 输出 YYYY-MM-DD 字符串
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

// UnmarshalJSON 解析 YYYY-MM-DD 字符串或 null
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

// Value 用于数据库写入
func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Time.Format(dateLayout), nil
}

// Scan 用于数据库读取
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			d.Time = time.Time{}
			return nil
		}
		if len(s) > len(dateLayout) {
			s = s[:len(dateLayout)]
		}
		parsed, err := ParseDate(s)
		if err != nil {
			return err
		}
		d.Time = parsed.Time
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("unsupported date value type %T", value)
	}
}

// GormDataType 指定列类型
func (Date) GormDataType() string {
	return "date"
}

// String 返回 YYYY-MM-DD 格式
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}
