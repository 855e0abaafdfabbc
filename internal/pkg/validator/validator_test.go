package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidEmployeeNumber(t *testing.T) {
	valid := []string{"100", "100234", "1234567890"}
	invalid := []string{"", "12", "12345678901", "10a234", "10 0234", "-100"}
	for _, num := range valid {
		if !IsValidEmployeeNumber(num) {
			t.Errorf("IsValidEmployeeNumber(%q) = false, want true", num)
		}
	}
	for _, num := range invalid {
		if IsValidEmployeeNumber(num) {
			t.Errorf("IsValidEmployeeNumber(%q) = true, want false", num)
		}
	}
}

func TestHasDomain(t *testing.T) {
	cases := []struct {
		email  string
		domain string
		want   bool
	}{
		{"asha@autorabit.com", "autorabit.com", true},
		{"Asha@AutoRABIT.com", "autorabit.com", true},
		{"asha@autorabit.com", "@autorabit.com", true},
		{"asha@gmail.com", "autorabit.com", false},
		{"asha@autorabit.com.evil.io", "autorabit.com", false},
		{"no-at-sign", "autorabit.com", false},
		{"asha@autorabit.com", "", false},
	}
	for _, c := range cases {
		got := HasDomain(c.email, c.domain)
		if got != c.want {
			t.Errorf("HasDomain(%q, %q) = %v, want %v", c.email, c.domain, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-01-05"); !ok {
		t.Errorf("IsValidDate(%q) = false, want true", "2026-01-05")
	}
	for _, s := range []string{"", "05-01-2026", "2026-13-01", "2026-01-32", "yesterday"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidHexColor(t *testing.T) {
	valid := []string{"#fff", "#FF8800", "#0a0b0c"}
	invalid := []string{"", "fff", "#ff", "#ff88001", "#ggg", "red"}
	for _, c := range valid {
		if !IsValidHexColor(c) {
			t.Errorf("IsValidHexColor(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if IsValidHexColor(c) {
			t.Errorf("IsValidHexColor(%q) = true, want false", c)
		}
	}
}
