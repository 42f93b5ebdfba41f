package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	JobType string  `json:"jobType" validate:"required,job_type"`
	Status  *string `json:"status" validate:"omitempty,application_status"`
	Account string  `json:"accountType" validate:"account_type"`
}

func TestCustomTags(t *testing.T) {
	v := New()

	status := "Hired"
	assert.NoError(t, v.Struct(sample{JobType: "Remote", Status: &status, Account: "Recruiter"}))

	bad := "Accepted"
	err := v.Struct(sample{JobType: "Freelance", Status: &bad, Account: "Admin"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{
		"jobType":     "job_type",
		"status":      "application_status",
		"accountType": "account_type",
	}, fields)
}
