package policy

// RegistrationInput is the untrusted registration form shape.
type RegistrationInput struct {
	Firstname       string
	Lastname        string
	Email           string
	Password        string
	ConfirmPassword *string
}

// Registration is the cleaned, validated registration data. The password
// is still plaintext here; hashing is the caller's concern.
type Registration struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// ProfileEditInput is the untrusted profile-edit shape. Nil fields were
// not submitted.
type ProfileEditInput struct {
	Firstname *string
	Lastname  *string
}

// ProfileEdit is the cleaned profile-edit data.
type ProfileEdit struct {
	Firstname *string
	Lastname  *string
}

// UserPolicy validates user registration, login and profile-edit input.
type UserPolicy struct{}

// ValidateRegistration checks the registration form: required fields,
// name shape, email shape, password length and confirmation match.
func (UserPolicy) ValidateRegistration(in RegistrationInput) (Registration, error) {
	if err := requireFields(
		stringField("firstname", in.Firstname),
		stringField("lastname", in.Lastname),
		stringField("email", in.Email),
		stringField("password", in.Password),
	); err != nil {
		return Registration{}, err
	}

	firstname, err := ValidateName(in.Firstname, "Firstname", 2)
	if err != nil {
		return Registration{}, err
	}
	lastname, err := ValidateName(in.Lastname, "Lastname", 2)
	if err != nil {
		return Registration{}, err
	}
	email, err := ValidateEmail(in.Email)
	if err != nil {
		return Registration{}, err
	}
	password, err := ValidatePassword(in.Password, in.ConfirmPassword)
	if err != nil {
		return Registration{}, err
	}

	return Registration{
		Firstname: firstname,
		Lastname:  lastname,
		Email:     email,
		Password:  password,
	}, nil
}

// ValidateLogin checks the credential shapes before any lookup happens.
func (UserPolicy) ValidateLogin(email, password string) (string, error) {
	cleanEmail, err := ValidateEmail(email)
	if err != nil {
		return "", err
	}
	if _, err := ValidatePassword(password, nil); err != nil {
		return "", err
	}
	return cleanEmail, nil
}

// ValidateProfileEdit checks a partial profile update. At least one valid
// field must remain after filtering.
func (UserPolicy) ValidateProfileEdit(in ProfileEditInput) (ProfileEdit, error) {
	if in.Firstname == nil && in.Lastname == nil {
		return ProfileEdit{}, Errorf("No valid fields provided for update")
	}

	var out ProfileEdit
	if in.Firstname != nil {
		clean, err := ValidateName(*in.Firstname, "Firstname", 2)
		if err != nil {
			return ProfileEdit{}, err
		}
		out.Firstname = &clean
	}
	if in.Lastname != nil {
		clean, err := ValidateName(*in.Lastname, "Lastname", 2)
		if err != nil {
			return ProfileEdit{}, err
		}
		out.Lastname = &clean
	}
	return out, nil
}
