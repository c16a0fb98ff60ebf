package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate возвращается при некорректном формате даты (ожидается YYYY-MM-DD)
var ErrInvalidDate = errors.New("invalid date format")

// Date календарная дата в формате ISO-8601 (YYYY-MM-DD) без времени и часового пояса.
// Строковое представление упорядочивается так же, как сами даты.
type Date string

// NewDate берет календарную дату из wall-clock времени t (в его часовом поясе)
func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate парсит и нормализует строку YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

// Validate проверяет формат даты
func (d Date) Validate() error {
	_, err := d.parse()
	return err
}

func (d Date) parse() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return t, nil
}

// Time возвращает полночь этой даты в часовом поясе loc
func (d Date) Time(loc *time.Location) (time.Time, error) {
	t, err := d.parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// At возвращает момент времени "дата + минуты с полуночи" в часовом поясе loc
func (d Date) At(minutes int, loc *time.Location) (time.Time, error) {
	midnight, err := d.Time(loc)
	if err != nil {
		return time.Time{}, err
	}
	return midnight.Add(time.Duration(minutes) * time.Minute), nil
}

// Weekday возвращает день недели (0=воскресенье..6=суббота)
func (d Date) Weekday() (time.Weekday, error) {
	t, err := d.parse()
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// AddDays сдвигает дату на n календарных дней
func (d Date) AddDays(n int) (Date, error) {
	t, err := d.parse()
	if err != nil {
		return "", err
	}
	return NewDate(t.AddDate(0, 0, n)), nil
}

// Before возвращает true, если d строго раньше other (обе даты должны быть валидными)
func (d Date) Before(other Date) bool {
	return d < other
}

// After возвращает true, если d строго позже other
func (d Date) After(other Date) bool {
	return d > other
}

// Between проверяет start <= d <= end
func (d Date) Between(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}

// Scan реализует sql.Scanner (PostgreSQL DATE приходит как time.Time)
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}
