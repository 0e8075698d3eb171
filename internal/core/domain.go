package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the storage format for expense dates. Lexicographic
// comparison of dates in this layout matches chronological order.
const DateLayout = "2006-01-02"

// CategoryAll is a filter-only pseudo-category. It is never stored.
const CategoryAll = "All"

type (
	Expense struct {
		ID          int64
		Amount      float64
		Category    string
		Date        string // YYYY-MM-DD
		Note        string
		PaymentType string
	}

	User struct {
		ID       int64
		Username string
		Email    string
		Password string // plaintext on registration input, always "" after lookup
		FullName string
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidPaymentType = errors.New("invalid payment type")
	ErrInvalidUsername    = errors.New("username must be at least 4 characters")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmptyFullName      = errors.New("empty full name")
)

var categories = []string{
	"Food", "Transport", "Shopping", "Entertainment",
	"Bills", "Health", "Education", "Others",
}

var paymentTypes = []string{"Cash", "Card", "UPI", "Net Banking"}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Categories returns the storable expense categories, excluding the
// filter-only CategoryAll.
func Categories() []string {
	return append([]string(nil), categories...)
}

// PaymentTypes returns the accepted payment types.
func PaymentTypes() []string {
	return append([]string(nil), paymentTypes...)
}

// ValidCategory reports whether c is a storable category.
func ValidCategory(c string) bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidPaymentType reports whether p is an accepted payment type.
func ValidPaymentType(p string) bool {
	for _, v := range paymentTypes {
		if v == p {
			return true
		}
	}
	return false
}

// ValidDate reports whether s is a real calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// MonthPrefix returns the YYYY-MM prefix of a date string.
func MonthPrefix(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// Validate checks the expense against the domain rules enforced by the
// presentation layer. The stores themselves persist any well-typed value;
// callers are expected to validate before writing.
func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !ValidCategory(e.Category) {
		return ErrInvalidCategory
	}
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	if !ValidPaymentType(e.PaymentType) {
		return ErrInvalidPaymentType
	}
	return nil
}

// Validate checks registration input apart from the password, which is
// checked separately so looked-up users with a scrubbed password stay valid.
func (u User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 4 {
		return ErrInvalidUsername
	}
	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.FullName) == "" {
		return ErrEmptyFullName
	}
	return nil
}
