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
	invalid := []string{"test@", "@example.com", "test@domain", " ", ""}
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

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("0195f1a2-1111-7abc-8def-0123456789ab") {
		t.Error("rejected a valid UUID")
	}
	for _, bad := range []string{"", "not-a-uuid", "0195f1a2-1111-7abc-8def", "0195F1A2-1111-7ABC-8DEF-0123456789AB"} {
		if IsValidUUID(bad) {
			t.Errorf("IsValidUUID(%q) = true, want false", bad)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if d, ok := IsValidDate("2026-03-10"); !ok || d.Day() != 10 {
		t.Errorf("IsValidDate(2026-03-10) = %v, %v", d, ok)
	}
	for _, bad := range []string{"10/03/2026", "2026-3-10", "2026-03-10T00:00:00Z", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2026-03-10T09:00:00Z", "2026-03-10T09:00:00+02:00"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, bad := range []string{"2026-03-10", "09:00:00", ""} {
		if _, ok := IsValidDateTime(bad); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", bad)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"09:30", "09:30:15", "23:59:59", "00:00"}
	for _, s := range valid {
		if _, ok := IsValidClockTime(s); !ok {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, bad := range []string{"9h30", "25:00", "12:60", ""} {
		if _, ok := IsValidClockTime(bad); ok {
			t.Errorf("IsValidClockTime(%q) = true, want false", bad)
		}
	}
}

func TestHasAllowedExtension(t *testing.T) {
	allowed := []string{"pdf", "jpg", "jpeg", "png"}
	cases := []struct {
		filename string
		want     bool
	}{
		{"scan.pdf", true},
		{"photo.JPG", true},
		{"a.b.jpeg", true},
		{"doc.docx", false},
		{"noextension", false},
		{"", false},
	}
	for _, c := range cases {
		got := HasAllowedExtension(c.filename, allowed)
		if got != c.want {
			t.Errorf("HasAllowedExtension(%q) = %v, want %v", c.filename, got, c.want)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "name", Message: "name is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["email"] != "email is required" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() == "" {
		t.Error("Error() returned empty string")
	}
}
