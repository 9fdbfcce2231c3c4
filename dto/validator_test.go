package dto

import "testing"

func TestStrongPasswordRule(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all classes", "SecurePass123!", true},
		{"too short", "Ab1!xyz", false},
		{"no upper", "securepass123!", false},
		{"no lower", "SECUREPASS123!", false},
		{"no number", "SecurePass!", false},
		{"no special", "SecurePass123", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := RegisterRequest{
				Email:    "user@example.com",
				Username: "johndoe",
				Password: tc.password,
			}
			err := req.Validate()
			if tc.valid && err != nil {
				t.Errorf("password %q rejected: %v", tc.password, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("password %q accepted", tc.password)
			}
		})
	}
}

func TestFormatValidationErrorsNamesFields(t *testing.T) {
	req := RegisterRequest{Email: "not-an-email", Username: "x", Password: "weak"}
	err := req.Validate()
	if err == nil {
		t.Fatal("invalid request validated")
	}

	fields := make(map[string]string)
	for _, ve := range FormatValidationErrors(err) {
		fields[ve.Field] = ve.Message
	}

	for _, want := range []string{"Email", "Username", "Password"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("no validation error reported for %s (got %v)", want, fields)
		}
	}
}

func TestFormatValidationErrorsIgnoresPlainErrors(t *testing.T) {
	if got := FormatValidationErrors(errDummy{}); len(got) != 0 {
		t.Errorf("plain error produced field errors: %v", got)
	}
}

type errDummy struct{}

func (errDummy) Error() string { return "dummy" }

func TestListRecipesQueryDefaults(t *testing.T) {
	var q ListRecipesQuery
	if q.PageOrDefault() != 1 {
		t.Errorf("default page = %d, want 1", q.PageOrDefault())
	}
	if q.PerPageOrDefault() != 20 {
		t.Errorf("default per_page = %d, want 20", q.PerPageOrDefault())
	}

	q.Page = 3
	q.PerPage = 50
	if q.PageOrDefault() != 3 || q.PerPageOrDefault() != 50 {
		t.Errorf("explicit paging not honored: %d/%d", q.PageOrDefault(), q.PerPageOrDefault())
	}
}
