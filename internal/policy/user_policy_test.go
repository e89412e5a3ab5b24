package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	var policy UserPolicy

	confirm := "hunter2hunter2"
	valid := RegistrationInput{
		Firstname:       " Juan ",
		Lastname:        "Dela Cruz",
		Email:           " juan@example.com ",
		Password:        "hunter2hunter2",
		ConfirmPassword: &confirm,
	}

	t.Run("accepts a complete form", func(t *testing.T) {
		t.Parallel()

		got, err := policy.ValidateRegistration(valid)
		require.NoError(t, err)

		assert.Equal(t, "Juan", got.Firstname)
		assert.Equal(t, "Dela Cruz", got.Lastname)
		assert.Equal(t, "juan@example.com", got.Email)
		assert.Equal(t, "hunter2hunter2", got.Password)
	})

	t.Run("confirmation is optional", func(t *testing.T) {
		t.Parallel()

		in := valid
		in.ConfirmPassword = nil

		_, err := policy.ValidateRegistration(in)
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		mutate  func(*RegistrationInput)
		wantMsg string
	}{
		{
			name: "missing fields",
			mutate: func(in *RegistrationInput) {
				in.Firstname = ""
				in.Password = ""
			},
			wantMsg: "Missing fields: firstname, password",
		},
		{
			name:    "firstname with digits",
			mutate:  func(in *RegistrationInput) { in.Firstname = "Juan2" },
			wantMsg: "Firstname must contain letters only, with single spaces between words",
		},
		{
			name:    "invalid email",
			mutate:  func(in *RegistrationInput) { in.Email = "juan@example" },
			wantMsg: "Invalid Email format",
		},
		{
			name:    "short password",
			mutate:  func(in *RegistrationInput) { in.Password = "short12" },
			wantMsg: "Password must be at least 8 characters long",
		},
		{
			name: "mismatched confirmation",
			mutate: func(in *RegistrationInput) {
				other := "different1"
				in.ConfirmPassword = &other
			},
			wantMsg: "Passwords do not match",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("rejects "+tc.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tc.mutate(&in)

			_, err := policy.ValidateRegistration(in)
			require.Error(t, err)
			assert.True(t, IsPolicyError(err))
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	var policy UserPolicy

	t.Run("accepts valid credentials", func(t *testing.T) {
		t.Parallel()

		email, err := policy.ValidateLogin(" juan@example.com ", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "juan@example.com", email)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateLogin("not-an-email", "hunter2hunter2")
		assert.EqualError(t, err, "Invalid Email format")
	})

	t.Run("rejects a short password", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateLogin("juan@example.com", "short")
		assert.EqualError(t, err, "Password must be at least 8 characters long")
	})
}

func TestValidateProfileEdit(t *testing.T) {
	t.Parallel()

	var policy UserPolicy

	t.Run("no fields submitted", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateProfileEdit(ProfileEditInput{})
		assert.EqualError(t, err, "No valid fields provided for update")
	})

	t.Run("accepts a partial edit", func(t *testing.T) {
		t.Parallel()

		firstname := " Maria "
		got, err := policy.ValidateProfileEdit(ProfileEditInput{Firstname: &firstname})
		require.NoError(t, err)

		require.NotNil(t, got.Firstname)
		assert.Equal(t, "Maria", *got.Firstname)
		assert.Nil(t, got.Lastname)
	})

	t.Run("rejects an invalid name", func(t *testing.T) {
		t.Parallel()

		lastname := "X"
		_, err := policy.ValidateProfileEdit(ProfileEditInput{Lastname: &lastname})
		assert.EqualError(t, err, "Lastname must be at least 2 characters long")
	})
}
