package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// Tracks are the competition categories.
var Tracks = []string{"AI", "CyberSec", "IoT", "Blockchain", "Robotics", "Open Innovation"}

// DietPreferences are the accepted diet choices.
var DietPreferences = []string{"Vegetarian", "Non-Vegetarian"}

// Team size bounds, leader included.
const (
	MinTeamSize = 2
	MaxTeamSize = 5
)

// ProofContentTypes are the accepted payment screenshot formats.
// Vector and markup formats such as SVG are excluded since proofs are
// served from the API origin.
var ProofContentTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// MinPhoneDigits is the minimum number of digits in a phone number.
const MinPhoneDigits = 10

// DefaultRejectionReason is sent when an admin rejects without a reason.
const DefaultRejectionReason = "We could not verify your payment. Please re-upload a clear payment screenshot and the correct transaction ID from your dashboard."

// MaxRejectionReasonLength bounds the admin-supplied reason.
const MaxRejectionReasonLength = 1000

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("track", func(fl validator.FieldLevel) bool {
		return contains(Tracks, fl.Field().String())
	})
	_ = v.RegisterValidation("diet", func(fl validator.FieldLevel) bool {
		return contains(DietPreferences, fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return validPhone(fl.Field().String())
	})
	return v
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// validPhone accepts digits with optional separators and a leading plus.
func validPhone(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0, r == ' ', r == '-', r == '(', r == ')':
		default:
			return false
		}
	}
	return digits >= MinPhoneDigits
}

// Validate checks the request and returns a *ValidationError listing every bad field.
func (r *RegisterRequest) Validate() error {
	var fields []FieldError

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ValidationError{Fields: []FieldError{{Field: "data", Message: err.Error()}}}
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
		}
	}

	if strings.TrimSpace(r.Leader.RollNo) == "" {
		fields = append(fields, FieldError{Field: "leader.rollNo", Message: "is required"})
	}
	if size := r.TeamSize(); size < MinTeamSize || size > MaxTeamSize {
		fields = append(fields, FieldError{
			Field:   "members",
			Message: fmt.Sprintf("team size must be between %d and %d, got %d", MinTeamSize, MaxTeamSize, size),
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "phone":
		return fmt.Sprintf("must contain at least %d digits", MinPhoneDigits)
	case "track":
		return "must be one of: " + strings.Join(Tracks, ", ")
	case "diet":
		return "must be one of: " + strings.Join(DietPreferences, ", ")
	default:
		return "is invalid"
	}
}

// ProofInfo is the sniffed type of an accepted proof file.
type ProofInfo struct {
	ContentType string
	Extension   string
}

// ValidateProof checks that the proof is present, a raster image by content and at most maxSize bytes.
func ValidateProof(p *ProofFile, maxSize int64) (ProofInfo, error) {
	if p == nil || len(p.Data) == 0 {
		return ProofInfo{}, NewValidationError("screenshot", "payment screenshot is required")
	}
	if int64(len(p.Data)) > maxSize {
		return ProofInfo{}, NewValidationError("screenshot", fmt.Sprintf("must be at most %d bytes", maxSize))
	}
	mt := mimetype.Detect(p.Data)
	if !mimetype.EqualsAny(mt.String(), ProofContentTypes...) {
		return ProofInfo{}, NewValidationError("screenshot",
			"must be one of "+strings.Join(ProofContentTypes, ", ")+", got "+mt.String())
	}
	contentType := strings.SplitN(mt.String(), ";", 2)[0]
	return ProofInfo{ContentType: contentType, Extension: mt.Extension()}, nil
}

// NormalizeRejectionReason trims reason and substitutes the default when empty.
func NormalizeRejectionReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return DefaultRejectionReason, nil
	}
	if len(reason) > MaxRejectionReasonLength {
		return "", NewValidationError("reason", fmt.Sprintf("must be at most %d characters", MaxRejectionReasonLength))
	}
	return reason, nil
}
