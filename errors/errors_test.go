package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassifyGormSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{gorm.ErrRecordNotFound, ErrCodeNotFound},
		{gorm.ErrDuplicatedKey, ErrCodeConstraintViolation},
		{gorm.ErrForeignKeyViolated, ErrCodeReferenceViolation},
	}

	for _, tc := range cases {
		got := Classify(tc.err, "boom")
		require.Equal(t, tc.code, got.Code)
		require.ErrorIs(t, got, tc.err)
	}
}

func TestClassifyDriverMessageFallback(t *testing.T) {
	dup := errors.New(`ERROR: duplicate key value violates unique constraint "idx_properties_name"`)
	require.Equal(t, ErrCodeConstraintViolation, Classify(dup, "boom").Code)

	fk := errors.New(`ERROR: update or delete violates foreign key constraint "fk_rooms_property"`)
	require.Equal(t, ErrCodeReferenceViolation, Classify(fk, "boom").Code)

	other := errors.New("connection reset by peer")
	require.Equal(t, ErrCodeDBError, Classify(other, "boom").Code)
}

func TestClassifyPreservesExistingAppError(t *testing.T) {
	orig := NewAppError(ErrCodeSubmitInFlight, "busy", nil)
	wrapped := fmt.Errorf("create: %w", orig)

	got := Classify(wrapped, "other message")
	require.Equal(t, ErrCodeSubmitInFlight, got.Code)
	require.Equal(t, "busy", got.Message)
}

func TestCodeOfAndIs(t *testing.T) {
	err := NewAppError(ErrCodePartialFailure, "half done", nil)
	wrapped := fmt.Errorf("outer: %w", err)

	require.Equal(t, ErrCodePartialFailure, CodeOf(wrapped))
	require.True(t, Is(wrapped, ErrCodePartialFailure))
	require.False(t, Is(wrapped, ErrCodeNotFound))
	require.Equal(t, ErrCodeDBError, CodeOf(errors.New("plain")))
}

func TestUserMessageByCode(t *testing.T) {
	require.Contains(t, UserMessage(NewAppError(ErrCodeConstraintViolation, "x", nil)), "already exists")
	require.Contains(t, UserMessage(NewAppError(ErrCodeInvalidCredentials, "x", nil)), "Invalid email or password")
	require.Equal(t, "half created", UserMessage(NewAppError(ErrCodePartialFailure, "half created", nil)))
	require.Contains(t, UserMessage(errors.New("untyped")), "Something went wrong")
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewAppError(ErrCodeDBError, "outer", inner)
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "DB_ERROR")
	require.Contains(t, err.Error(), "outer")
}
