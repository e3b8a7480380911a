package booking

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"zela/models"
	"zela/utils"

	"github.com/go-playground/validator/v10"
)

// Schedule validation bounds.
const (
	maxAdvanceDays   = 90
	minAdvanceNotice = 2 * time.Hour
	openingHour      = 7
	closingHour      = 20
	scheduleDateForm = "2006-01-02"
	scheduleTimeForm = "15:04"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names as their json tags so errors match the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// applyStep decodes and validates one wizard step payload and writes it
// onto the session. It reports whether the mutation affects pricing,
// so the caller can invalidate a stale quote. All field problems for
// the step are aggregated before returning.
func applyStep(def *models.ServiceDefinition, sess *models.BookingSession, step string, payload json.RawMessage, clock utils.Clock) (bool, error) {
	switch step {
	case models.StepAddress:
		return true, applyAddress(sess, payload)
	case models.StepProperty:
		return true, applyProperty(def, sess, payload)
	case models.StepConfig:
		return true, applyConfig(def, sess, payload)
	case models.StepDuration:
		return true, applyDuration(def, sess, payload)
	case models.StepSchedule:
		return true, applySchedule(sess, payload, clock)
	case models.StepWorker:
		return true, applyWorker(sess, payload)
	case models.StepPayment:
		return false, applyPayment(sess, payload)
	case models.StepReview:
		return false, nil
	}
	return false, models.ValidationErrors{{Step: step, Field: "step", Message: "unknown step"}}
}

func decodeStep(step string, payload json.RawMessage, out interface{}) error {
	if len(payload) == 0 {
		return models.ValidationErrors{{Step: step, Field: "payload", Message: "missing step data"}}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return models.ValidationErrors{{Step: step, Field: "payload", Message: "malformed step data"}}
	}
	return nil
}

// tagErrors converts validator failures into per-field errors.
func tagErrors(step string, err error) models.ValidationErrors {
	var out models.ValidationErrors
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out = append(out, models.FieldError{
				Step:    step,
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		return out
	}
	return models.ValidationErrors{{Step: step, Field: "payload", Message: err.Error()}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func applyAddress(sess *models.BookingSession, payload json.RawMessage) error {
	var addr models.Address
	if err := decodeStep(models.StepAddress, payload, &addr); err != nil {
		return err
	}

	var errs models.ValidationErrors
	if err := validate.Struct(&addr); err != nil {
		errs = append(errs, tagErrors(models.StepAddress, err)...)
	}
	if addr.Street != "" && len(strings.TrimSpace(addr.Street)) < 3 {
		errs = append(errs, models.FieldError{Step: models.StepAddress, Field: "street", Message: "must be at least 3 characters"})
	}
	hasCoords := addr.Latitude != nil && addr.Longitude != nil
	if addr.District == "" && addr.Area == "" && !hasCoords {
		errs = append(errs, models.FieldError{Step: models.StepAddress, Field: "district", Message: "district, area or coordinates required"})
	}
	if len(errs) > 0 {
		return errs
	}

	sess.Address = &addr
	return nil
}

func applyProperty(def *models.ServiceDefinition, sess *models.BookingSession, payload json.RawMessage) error {
	var prop models.PropertyInfo
	if err := decodeStep(models.StepProperty, payload, &prop); err != nil {
		return err
	}

	var errs models.ValidationErrors
	if err := validate.Struct(&prop); err != nil {
		errs = append(errs, tagErrors(models.StepProperty, err)...)
	}
	if prop.Typology != "" && !knownTypology(prop.Typology) {
		errs = append(errs, models.FieldError{Step: models.StepProperty, Field: "typology",
			Message: fmt.Sprintf("unknown typology, expected one of: %s", strings.Join(models.KnownTypologies, ", "))})
	}
	if len(errs) > 0 {
		return errs
	}

	sess.Property = &prop
	return nil
}

func applyConfig(def *models.ServiceDefinition, sess *models.BookingSession, payload json.RawMessage) error {
	var cfg models.ServiceConfigData
	if err := decodeStep(models.StepConfig, payload, &cfg); err != nil {
		return err
	}

	var errs models.ValidationErrors
	switch def.PricingModel {
	case models.PricingPerUnit:
		if cfg.UnitCount < 1 {
			errs = append(errs, models.FieldError{Step: models.StepConfig, Field: "unit_count", Message: "must be at least 1"})
		}
	case models.PricingPackage:
		if cfg.PackageID == "" && !knownPackageType(def, cfg.ServiceType) {
			errs = append(errs, models.FieldError{Step: models.StepConfig, Field: "service_type", Message: "package selection required"})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	sess.Config = &cfg
	return nil
}

func applyDuration(def *models.ServiceDefinition, sess *models.BookingSession, payload json.RawMessage) error {
	var dur models.DurationInfo
	if err := decodeStep(models.StepDuration, payload, &dur); err != nil {
		return err
	}

	var errs models.ValidationErrors
	req := def.Requirements
	if dur.Hours <= 0 {
		errs = append(errs, models.FieldError{Step: models.StepDuration, Field: "hours", Message: "must be positive"})
	} else {
		if req.MinHours > 0 && dur.Hours < req.MinHours {
			errs = append(errs, models.FieldError{Step: models.StepDuration, Field: "hours",
				Message: fmt.Sprintf("must be at least %.1f hours", req.MinHours)})
		}
		if req.MaxHours > 0 && dur.Hours > req.MaxHours {
			errs = append(errs, models.FieldError{Step: models.StepDuration, Field: "hours",
				Message: fmt.Sprintf("must be at most %.1f hours", req.MaxHours)})
		}
	}
	if len(dur.Tasks) > 0 {
		if !req.ShowTasks {
			errs = append(errs, models.FieldError{Step: models.StepDuration, Field: "tasks", Message: "extra tasks not available for this service"})
		} else {
			for _, task := range dur.Tasks {
				if !knownExtraTask(def, task) {
					errs = append(errs, models.FieldError{Step: models.StepDuration, Field: "tasks",
						Message: fmt.Sprintf("unknown task %q", task)})
				}
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}

	sess.Duration = &dur
	return nil
}

func applySchedule(sess *models.BookingSession, payload json.RawMessage, clock utils.Clock) error {
	var sched models.ScheduleInfo
	if err := decodeStep(models.StepSchedule, payload, &sched); err != nil {
		return err
	}

	var errs models.ValidationErrors
	if err := validate.Struct(&sched); err != nil {
		errs = append(errs, tagErrors(models.StepSchedule, err)...)
	}

	var start time.Time
	if sched.Date != "" && sched.Time != "" {
		parsed, err := time.ParseInLocation(scheduleDateForm+" "+scheduleTimeForm, sched.Date+" "+sched.Time, time.UTC)
		if err != nil {
			errs = append(errs, models.FieldError{Step: models.StepSchedule, Field: "date", Message: "invalid date or time format"})
		} else {
			start = parsed
		}
	}
	if !start.IsZero() {
		now := clock.Now().UTC()
		if start.Before(now) {
			errs = append(errs, models.FieldError{Step: models.StepSchedule, Field: "date", Message: "cannot schedule in the past"})
		} else {
			if start.Sub(now) < minAdvanceNotice {
				errs = append(errs, models.FieldError{Step: models.StepSchedule, Field: "time",
					Message: fmt.Sprintf("requires at least %.0f hours notice", minAdvanceNotice.Hours())})
			}
			if start.After(now.AddDate(0, 0, maxAdvanceDays)) {
				errs = append(errs, models.FieldError{Step: models.StepSchedule, Field: "date",
					Message: fmt.Sprintf("cannot schedule more than %d days ahead", maxAdvanceDays)})
			}
		}
		if start.Hour() < openingHour || start.Hour() >= closingHour {
			errs = append(errs, models.FieldError{Step: models.StepSchedule, Field: "time",
				Message: fmt.Sprintf("outside operating hours (%02d:00-%02d:00)", openingHour, closingHour)})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	sess.Schedule = &sched
	return nil
}

func applyWorker(sess *models.BookingSession, payload json.RawMessage) error {
	var choice models.WorkerChoice
	if err := decodeStep(models.StepWorker, payload, &choice); err != nil {
		return err
	}
	if err := validate.Struct(&choice); err != nil {
		return tagErrors(models.StepWorker, err)
	}
	sess.Worker = &choice
	return nil
}

func applyPayment(sess *models.BookingSession, payload json.RawMessage) error {
	var choice models.PaymentChoice
	if err := decodeStep(models.StepPayment, payload, &choice); err != nil {
		return err
	}
	if err := validate.Struct(&choice); err != nil {
		return tagErrors(models.StepPayment, err)
	}
	sess.Payment = &choice
	return nil
}

func knownTypology(typology string) bool {
	for _, t := range models.KnownTypologies {
		if t == typology {
			return true
		}
	}
	return false
}

func knownPackageType(def *models.ServiceDefinition, packageType string) bool {
	for _, opt := range def.Pricing.Packages {
		if opt.Type == packageType {
			return true
		}
	}
	return false
}

func knownExtraTask(def *models.ServiceDefinition, task string) bool {
	for _, t := range def.ExtraTasks {
		if t == task {
			return true
		}
	}
	return false
}
