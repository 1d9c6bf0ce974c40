package logging

import "testing"

func TestFilterFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  []string
		message string
		want    string
	}{
		{
			name:    "single field",
			fields:  []string{"password"},
			message: "name=bob;password=s3cret;",
			want:    "name=bob;password=***;",
		},
		{
			name:    "multiple fields",
			fields:  []string{"email", "password"},
			message: "email=bob@example.com;password=s3cret;ip=127.0.0.1;",
			want:    "email=***;password=***;ip=127.0.0.1;",
		},
		{
			name:    "field absent from message",
			fields:  []string{"reset_token"},
			message: "email=bob@example.com;",
			want:    "email=bob@example.com;",
		},
		{
			name:    "empty value",
			fields:  []string{"email"},
			message: "email=;status=failed;",
			want:    "email=***;status=failed;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFields(tt.fields, Redaction, tt.message, Separator)
			if got != tt.want {
				t.Errorf("FilterFields(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestRedactor_Filter(t *testing.T) {
	r := NewRedactor(PIIFields)

	message := "type=login;email=bob@example.com;session_id=abc-123;ip=127.0.0.1;"
	got := r.Filter(message)
	want := "type=login;email=***;session_id=***;ip=127.0.0.1;"
	if got != want {
		t.Errorf("Filter(%q) = %q, want %q", message, got, want)
	}
}

func TestRedactor_FilterLeavesPlainTextAlone(t *testing.T) {
	r := NewRedactor(PIIFields)

	message := "Failed to log audit event: database is locked"
	if got := r.Filter(message); got != message {
		t.Errorf("Filter(%q) = %q, want unchanged", message, got)
	}
}
