package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidshard/jobgate/internal/mocks/pkg/auth_mock"
	ie "github.com/voidshard/jobgate/pkg/errors"
)

func TestAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := auth_mock.NewMockRegistry(ctrl)
	gate := NewGate(reg)
	ctx := context.Background()

	lookupErr := fmt.Errorf("connection refused")
	reg.EXPECT().Exists(ctx, "good").Return(true, nil)
	reg.EXPECT().Exists(ctx, "bad").Return(false, nil)
	reg.EXPECT().Exists(ctx, "broken").Return(false, lookupErr)

	cases := []struct {
		Name   string
		Given  string
		Expect error
	}{
		{"known", "good", nil},
		{"missing", "", ie.ErrMissingCredential},
		{"unknown", "bad", ie.ErrUnknownCredential},
		{"registry failure", "broken", lookupErr},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			err := gate.Authenticate(ctx, c.Given)

			if c.Expect == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.Expect)
			}
		})
	}
}

func TestAuthenticateDenyIsUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := auth_mock.NewMockRegistry(ctrl)
	reg.EXPECT().Exists(gomock.Any(), "nope").Return(false, nil)
	gate := NewGate(reg)

	assert.ErrorIs(t, gate.Authenticate(context.Background(), ""), ie.ErrUnauthorized)
	assert.ErrorIs(t, gate.Authenticate(context.Background(), "nope"), ie.ErrUnauthorized)
}

func TestAuthenticateRegistryFailureIsNotDeny(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := auth_mock.NewMockRegistry(ctrl)
	reg.EXPECT().Exists(gomock.Any(), "key").Return(false, fmt.Errorf("timeout"))
	gate := NewGate(reg)

	err := gate.Authenticate(context.Background(), "key")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ie.ErrUnauthorized)
}
