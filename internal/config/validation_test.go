package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 0
	cfg.Frame = -1
	cfg.TimeStep = 0
	cfg.MPri = -2

	err := cfg.Validate()
	verrs := err.(ValidationErrors)
	assert.Len(t, verrs, 4)
}

func TestValidateRejectsOutOfRangeLPHPRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LPHPRatio = 1.0
	err := cfg.Validate()
	assert.Error(t, err)

	cfg.LPHPRatio = 0
	err = cfg.Validate()
	assert.Error(t, err)
}
