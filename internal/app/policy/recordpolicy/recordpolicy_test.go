package recordpolicy_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/testutil"
)

func TestReadWrite(t *testing.T) {
	tests := []struct {
		name      string
		req       *http.Request
		wantRead  bool
		wantWrite bool
	}{
		{"mentor", testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.MentorUser()), true, true},
		{"consultant", testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.ConsultantUser()), true, false},
		{"no role", testutil.NewAuthenticatedRequest(http.MethodGet, "/", testutil.NoRoleUser()), false, false},
		{"signed out", testutil.NewRequest(http.MethodGet, "/"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readErr := recordpolicy.Read(tt.req)
			if (readErr == nil) != tt.wantRead {
				t.Errorf("Read() error = %v, want allowed=%v", readErr, tt.wantRead)
			}
			if readErr != nil && !apperr.IsAuthorization(readErr) {
				t.Errorf("Read() error kind = %T, want AuthorizationError", readErr)
			}

			writeErr := recordpolicy.Write(tt.req)
			if (writeErr == nil) != tt.wantWrite {
				t.Errorf("Write() error = %v, want allowed=%v", writeErr, tt.wantWrite)
			}
			if writeErr != nil && !apperr.IsAuthorization(writeErr) {
				t.Errorf("Write() error kind = %T, want AuthorizationError", writeErr)
			}

			scope := recordpolicy.ForRequest(tt.req)
			if scope.CanView != tt.wantRead || scope.CanEdit != tt.wantWrite {
				t.Errorf("ForRequest() = %+v, want view=%v edit=%v", scope, tt.wantRead, tt.wantWrite)
			}
		})
	}
}
