package main

import (
	"strings"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/system/authutil"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
)

func TestNewUser_Password(t *testing.T) {
	u, err := newUser(" maria@example.org ", "Maria Lopez", []string{"Mentor", "bogus"}, "s3cret!", false)
	if err != nil {
		t.Fatalf("newUser: %v", err)
	}
	if u.LoginID != "maria@example.org" || u.FullName != "Maria Lopez" {
		t.Errorf("user = %+v", u)
	}
	if len(u.Roles) != 1 || u.Roles[0] != roles.Mentor {
		t.Errorf("roles = %v, want [mentor]", u.Roles)
	}
	if u.AuthMethod != models.AuthPassword || !authutil.CheckPassword("s3cret!", u.PasswordHash) {
		t.Error("password account not hashed correctly")
	}
}

func TestNewUser_Google(t *testing.T) {
	u, err := newUser("sam@example.org", "", []string{roles.Consultant}, "", true)
	if err != nil {
		t.Fatalf("newUser: %v", err)
	}
	if u.AuthMethod != models.AuthGoogle || u.PasswordHash != "" {
		t.Errorf("user = %+v", u)
	}
	if u.FullName != "sam@example.org" {
		t.Errorf("FullName = %q, want the login id", u.FullName)
	}
}

func TestNewUser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		loginID  string
		roles    []string
		password string
		google   bool
		want     string
	}{
		{"blank login", " ", []string{roles.Mentor}, "s3cret!", false, "login id"},
		{"no valid role", "a@b.c", []string{"admin"}, "s3cret!", false, "no valid role"},
		{"short password", "a@b.c", []string{roles.Mentor}, "x", false, ""},
		{"google with password", "a@b.c", []string{roles.Mentor}, "s3cret!", true, "--google"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUser(tt.loginID, "", tt.roles, tt.password, tt.google)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestRootCommands(t *testing.T) {
	want := map[string]bool{"user": false, "mentors": false, "export": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
