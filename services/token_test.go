package services

import (
	"testing"

	"restay/constants"
	apperrors "restay/errors"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")

	token, err := GenerateToken(UserInfo{UserID: 7, Role: constants.RoleManager}, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	info, err := GetUserFromToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 7, info.UserID)
	require.Equal(t, constants.RoleManager, info.Role)
}

func TestTokenRejectsTampering(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")

	token, err := GenerateToken(UserInfo{UserID: 7, Role: constants.RoleManager}, 60)
	require.NoError(t, err)

	_, err = GetUserFromToken(token + "x")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.CodeOf(err))
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")
	token, err := GenerateToken(UserInfo{UserID: 7, Role: constants.RoleAdmin}, 60)
	require.NoError(t, err)

	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "another-secret")
	_, err = GetUserFromToken(token)
	require.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	t.Setenv("SECRET_KEY_ACCESS_TOKEN", "test-secret")

	token, err := GenerateToken(UserInfo{UserID: 7, Role: constants.RoleViewer}, -1)
	require.NoError(t, err)

	_, err = GetUserFromToken(token)
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.CodeOf(err))
}
