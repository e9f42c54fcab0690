package utils

import (
	"testing"

	"recipe-hub/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructRegisterEmpty(t *testing.T) {
	errs, err := ValidateStruct(&domain.RegisterRequest{})
	require.NoError(t, err)

	assert.Equal(t, []domain.FieldError{
		{Field: "handle", Message: "Handle is required"},
		{Field: "email", Message: "Valid email is required"},
		{Field: "password", Message: "Password must be at least 8 characters long"},
		{Field: "confirmPassword", Message: "Confirm Password is required"},
	}, errs)
}

func TestValidateStructPasswordMismatch(t *testing.T) {
	errs, err := ValidateStruct(&domain.RegisterRequest{
		Handle:          "alice",
		Email:           "alice@example.com",
		Password:        "password1",
		ConfirmPassword: "password2",
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.FieldError{{Field: "confirmPassword", Message: "Passwords do not match"}}, errs)
}

func TestValidateStructSanitizes(t *testing.T) {
	req := &domain.RegisterRequest{
		Handle:          "  alice ",
		Email:           " Alice@Example.COM ",
		Password:        "password1",
		ConfirmPassword: "password1",
	}
	errs, err := ValidateStruct(req)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "alice", req.Handle)
	assert.Equal(t, "alice@example.com", req.Email)
}

func TestValidateStructRecipeLists(t *testing.T) {
	tests := []struct {
		name string
		req  domain.RecipeRequest
		want []string
	}{
		{
			name: "valid",
			req: domain.RecipeRequest{
				Title: "Soup", Description: "Warm", Category: "dinner",
				Ingredients: []string{"water"}, Instructions: []string{"boil"},
			},
		},
		{
			name: "empty lists",
			req:  domain.RecipeRequest{Title: "Soup", Description: "Warm", Category: "dinner"},
			want: []string{"ingredients", "instructions"},
		},
		{
			name: "blank entries collapse to one error per field",
			req: domain.RecipeRequest{
				Title: "Soup", Description: "Warm", Category: "dinner",
				Ingredients: []string{" ", ""}, Instructions: []string{"boil"},
			},
			want: []string{"ingredients"},
		},
		{
			name: "whitespace title",
			req: domain.RecipeRequest{
				Title: "   ", Description: "Warm", Category: "dinner",
				Ingredients: []string{"water"}, Instructions: []string{"boil"},
			},
			want: []string{"title"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			errs, err := ValidateStruct(&req)
			require.NoError(t, err)

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.want, fields)
		})
	}
}

func TestValidateID(t *testing.T) {
	_, err := ValidateID("not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = ValidateID("")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	id, err := ValidateID("0b6f2c1e-6a47-4f5e-9f3e-1c2d3e4f5a6b")
	require.NoError(t, err)
	assert.Equal(t, "0b6f2c1e-6a47-4f5e-9f3e-1c2d3e4f5a6b", id.String())
}
