package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wasteland/internal/errors"
	"github.com/cory-johannsen/wasteland/internal/game/session"
	"github.com/cory-johannsen/wasteland/internal/storage"
)

func TestEncodeDecode_PreservesDocument(t *testing.T) {
	st := session.New("abc")
	st.Turn = 7
	st.AddFlag("met_overseer")

	data, err := storage.Encode(st)
	require.NoError(t, err)

	got, err := storage.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestDecode_FillsDefaults(t *testing.T) {
	got, err := storage.Decode([]byte(`{"turn": 3}`))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Turn)
	assert.Equal(t, session.Exploration, got.Mode)
	assert.Equal(t, 1, got.Chapter)
	assert.NotNil(t, got.Players)
	assert.NotNil(t, got.Enemies)
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := storage.Decode([]byte(`{not json`))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
}
