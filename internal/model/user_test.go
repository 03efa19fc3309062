package model_test

import (
	"encoding/json"
	"testing"

	"github.com/jaekwang-park/taskhub/internal/model"
)

func TestRole_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Role
		wantErr bool
	}{
		{"user", `"user"`, model.RoleUser, false},
		{"admin", `"admin"`, model.RoleAdmin, false},
		{"typo", `"admn"`, "", true},
		{"empty", `""`, "", true},
		{"number", `1`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r model.Role
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s, got role %q", tt.input, r)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r != tt.want {
				t.Errorf("got %q, want %q", r, tt.want)
			}
		})
	}
}

func TestUser_Decode(t *testing.T) {
	body := `{"id":4,"email":"a@b.c","username":"alice","first_name":"Alice","last_name":"Liddell",
		"is_active":true,"role":"admin","phone_number":"555"}`

	var u model.User
	if err := json.Unmarshal([]byte(body), &u); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}
	if !u.IsAdmin() {
		t.Error("expected admin user")
	}
	if u.FullName() != "Alice Liddell" {
		t.Errorf("unexpected full name %q", u.FullName())
	}
	if u.Role.Label() != "Administrator" {
		t.Errorf("unexpected label %q", u.Role.Label())
	}
}

func TestUser_IsAdmin_RegularUser(t *testing.T) {
	u := model.User{Role: model.RoleUser}
	if u.IsAdmin() {
		t.Error("regular user reported as admin")
	}
}
