package config

import "fmt"

// ValidationError represents a single configuration validation failure.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors aggregates every ValidationError found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	msg := e[0].Error()
	for _, ve := range e[1:] {
		msg += "; " + ve.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", msg)
}

// Validate checks the configuration's invalid-value conditions: k, frame,
// time_step and m_pri must be positive, and lp_hp_ratio must lie in (0,1).
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.K <= 0 {
		errs = append(errs, ValidationError{Field: "k", Value: c.K, Message: "must be a positive integer"})
	}
	if c.Frame <= 0 {
		errs = append(errs, ValidationError{Field: "frame", Value: c.Frame, Message: "must be positive"})
	}
	if c.TimeStep <= 0 {
		errs = append(errs, ValidationError{Field: "time_step", Value: c.TimeStep, Message: "must be positive"})
	}
	if c.MPri <= 0 {
		errs = append(errs, ValidationError{Field: "m_pri", Value: c.MPri, Message: "must be a positive integer"})
	}
	if c.LPHPRatio <= 0 || c.LPHPRatio >= 1 {
		errs = append(errs, ValidationError{Field: "lp_hp_ratio", Value: c.LPHPRatio, Message: "must lie strictly between 0 and 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
