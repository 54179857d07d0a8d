package server

import (
	"errors"
	"testing"

	"pawhaven/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPreselection(t *testing.T) {
	t.Run("known pet is preselected", func(t *testing.T) {
		want := &types.Pet{ID: "pet-buddy", Name: "Buddy"}

		pet, err := applyPreselection(want, nil)
		require.NoError(t, err)
		assert.Equal(t, want, pet)
	})

	t.Run("unknown pet falls back to the picker", func(t *testing.T) {
		pet, err := applyPreselection(nil, types.ErrPetNotFound)
		require.NoError(t, err)
		assert.Nil(t, pet)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		storeErr := errors.New("connection refused")

		pet, err := applyPreselection(nil, storeErr)
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, pet)
	})
}
