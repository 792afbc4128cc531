package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:           "alice@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Alice",
	}

	tests := []struct {
		name    string
		mutate  func(req *SignupRequest)
		wantErr bool
	}{
		{
			name:    "valid request",
			mutate:  func(req *SignupRequest) {},
			wantErr: false,
		},
		{
			name: "valid with avatar url",
			mutate: func(req *SignupRequest) {
				req.AvatarURL = "https://example.com/alice.png"
			},
			wantErr: false,
		},
		{
			name: "missing email",
			mutate: func(req *SignupRequest) {
				req.Email = ""
			},
			wantErr: true,
		},
		{
			name: "malformed email",
			mutate: func(req *SignupRequest) {
				req.Email = "not-an-email"
			},
			wantErr: true,
		},
		{
			name: "password too short",
			mutate: func(req *SignupRequest) {
				req.Password = "pass1"
				req.ConfirmPassword = "pass1"
			},
			wantErr: true,
		},
		{
			name: "password without digit",
			mutate: func(req *SignupRequest) {
				req.Password = "passwordddd"
				req.ConfirmPassword = "passwordddd"
			},
			wantErr: true,
		},
		{
			name: "password without letter",
			mutate: func(req *SignupRequest) {
				req.Password = "12345678"
				req.ConfirmPassword = "12345678"
			},
			wantErr: true,
		},
		{
			name: "confirm password mismatch",
			mutate: func(req *SignupRequest) {
				req.ConfirmPassword = "password2"
			},
			wantErr: true,
		},
		{
			name: "missing name",
			mutate: func(req *SignupRequest) {
				req.Name = ""
			},
			wantErr: true,
		},
		{
			name: "invalid avatar url",
			mutate: func(req *SignupRequest) {
				req.AvatarURL = "not a url"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
	}{
		{"valid", LoginRequest{Email: "alice@example.com", Password: "password1"}, false},
		{"missing email", LoginRequest{Password: "password1"}, true},
		{"malformed email", LoginRequest{Email: "alice", Password: "password1"}, true},
		{"missing password", LoginRequest{Email: "alice@example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
