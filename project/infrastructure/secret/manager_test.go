package secret

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "not_found", err: status.Error(codes.NotFound, "secret missing"), want: true},
		{name: "permission_denied", err: status.Error(codes.PermissionDenied, "nope")},
		{name: "plain_error", err: errors.New("boom")},
		{name: "wrapped_not_found", err: fmt.Errorf("access: %w", status.Error(codes.NotFound, "x")), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFound(tt.err); got != tt.want {
				t.Errorf("isNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersionName(t *testing.T) {
	want := "projects/my-proj/secrets/slack-bot-token/versions/latest"
	if got := versionName("my-proj", "slack-bot-token"); got != want {
		t.Errorf("versionName() = %q, want %q", got, want)
	}
}
