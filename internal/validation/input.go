package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxTitleLength       = 200
	MaxCategoryLength    = 100
	MaxClientLength      = 200
	MaxDescriptionLength = 5000
	MaxURLLength         = 2048
	MaxNameLength        = 100
	MaxSubjectLength     = 200
	MaxMessageLength     = 5000
	MaxAdminNotesLength  = 5000
	MaxTagsCount         = 50
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._%+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// Errors накапливает ошибки полей одного запроса.
type Errors struct {
	fields []apperror.FieldError
}

// Add добавляет ошибку поля.
func (e *Errors) Add(field, message string) {
	e.fields = append(e.fields, apperror.FieldError{Field: field, Message: message})
}

// Check добавляет ошибку поля, если err != nil.
func (e *Errors) Check(field string, err error) {
	if err != nil {
		e.Add(field, err.Error())
	}
}

// Empty сообщает, что ошибок нет.
func (e *Errors) Empty() bool {
	return len(e.fields) == 0
}

// Fields возвращает накопленные ошибки.
func (e *Errors) Fields() []apperror.FieldError {
	return e.fields
}

// Err возвращает ошибку валидации или nil.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return apperror.Validation(e.fields)
}

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateRequired проверяет, что строка не пустая после обрезки пробелов.
func ValidateRequired(label, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s is required", label)
	}
	return ValidateLength(label, value, 0, max)
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("Valid email is required")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("Valid email is required")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 || len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("Valid email is required")
	}

	if !emailLocalRegex.MatchString(localPart) || !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("Valid email is required")
	}

	return nil
}

// NormalizeEmail приводит email к каноническому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateURL проверяет абсолютную http(s) ссылку.
func ValidateURL(label, link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("Valid %s is required", label)
	}
	if len(link) > MaxURLLength {
		return fmt.Errorf("%s is too long", label)
	}

	parsedURL, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("Valid %s is required", label)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("Valid %s is required", label)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("Valid %s is required", label)
	}
	return nil
}

// ValidateObjectID проверяет формат идентификатора записи.
func ValidateObjectID(id string) error {
	if !models.IsValidID(id) {
		return fmt.Errorf("Valid ID is required")
	}
	return nil
}

// ValidateDisplayOrder проверяет позицию в портфолио.
func ValidateDisplayOrder(order int) error {
	if order < 0 {
		return fmt.Errorf("display_order must be a non-negative integer")
	}
	return nil
}

// ValidateContactStatus проверяет статус заявки.
func ValidateContactStatus(status string) error {
	if _, ok := models.ValidContactStatuses[status]; !ok {
		return fmt.Errorf("Invalid status")
	}
	return nil
}

// ValidateTags проверяет список тегов.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("no more than %d tags allowed", MaxTagsCount)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("tags cannot be empty")
		}
	}
	return nil
}
