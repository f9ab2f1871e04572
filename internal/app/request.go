package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/beauuks/travelhub-api/internal/domain"
)

// BookingRequest is the create-booking payload. Tag-level rules cover shape;
// the date ordering rules live in Validate because they depend on "today".
type BookingRequest struct {
	HotelID        int64       `json:"hotel_id" validate:"required"`
	CustomerEmail  string      `json:"customer_email" validate:"required,email"`
	CustomerName   string      `json:"customer_name" validate:"required"`
	CheckInDate    domain.Date `json:"check_in_date" validate:"required"`
	CheckOutDate   domain.Date `json:"check_out_date" validate:"required"`
	NumberOfGuests int         `json:"number_of_guests" validate:"required,min=1"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// expose domain.Date to the validator as its underlying time.Time so
	// `required` sees the zero value
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(domain.Date); ok {
			return d.Time
		}
		return nil
	}, domain.Date{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request against now. Check-in must be today or later,
// check-out strictly in the future, and check-out after check-in (the stay
// must cover at least one night).
func (r BookingRequest) Validate(now time.Time) error {
	var errs ValidationErrors

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{Field: fe.Field(), Message: tagMessage(fe)})
		}
	}

	if strings.TrimSpace(r.CustomerName) == "" && r.CustomerName != "" {
		errs = append(errs, FieldError{Field: "customer_name", Message: "must not be blank"})
	}

	today := domain.DateOf(now)
	if !r.CheckInDate.IsZero() && r.CheckInDate.Before(today.Time) {
		errs = append(errs, FieldError{Field: "check_in_date", Message: "must be today or in the future"})
	}
	if !r.CheckOutDate.IsZero() && !r.CheckOutDate.After(today.Time) {
		errs = append(errs, FieldError{Field: "check_out_date", Message: "must be in the future"})
	}
	if !r.CheckInDate.IsZero() && !r.CheckOutDate.IsZero() && !r.CheckOutDate.After(r.CheckInDate.Time) {
		errs = append(errs, FieldError{Field: "check_out_date", Message: "must be after check_in_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
