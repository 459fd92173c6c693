package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wasteland/internal/errors"
)

func TestError_Error(t *testing.T) {
	err := errors.InvalidInput("difficulty must be non-negative")
	assert.Equal(t, "INVALID_INPUT: difficulty must be non-negative", err.Error())

	wrapped := errors.Wrap(fmt.Errorf("disk full"), "saving state")
	assert.Equal(t, "INTERNAL: saving state: disk full", wrapped.Error())
}

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := errors.NotFoundf("Player not found: %s", "Jake").WithMeta("available_players", []string{"Sarah"})
	wrapped := errors.Wrap(base, "resolving check")

	assert.Equal(t, errors.CodeNotFound, wrapped.Code)
	assert.Equal(t, []string{"Sarah"}, wrapped.Meta["available_players"])
	assert.True(t, errors.IsNotFound(wrapped))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "nothing"))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeBudgetExceeded, errors.GetCode(errors.BudgetExceededf("too many")))
	assert.Equal(t, errors.CodeDeprecated, errors.GetCode(errors.Deprecatedf("gone")))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.InsufficientResourcef("not enough AP"))
	assert.True(t, stderrors.Is(err, errors.New(errors.CodeInsufficientResource, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.CodeNotFound, "")))
}

func TestGetMessageAndMeta(t *testing.T) {
	err := errors.InvalidInput("bad").WithHint("try again")
	require.NotNil(t, errors.GetMeta(err))
	assert.Equal(t, "try again", errors.GetMeta(err)["hint"])
	assert.Equal(t, "bad", errors.GetMessage(err))
	assert.Equal(t, "plain", errors.GetMessage(stderrors.New("plain")))
	assert.Nil(t, errors.GetMeta(stderrors.New("plain")))
}
