package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentType(t *testing.T) {
	tests := []struct {
		in      string
		want    ContentType
		wantErr bool
	}{
		{"movie", ContentTypeMovie, false},
		{"series", ContentTypeSeries, false},
		{" Movie ", ContentTypeMovie, false},
		{"SERIES", ContentTypeSeries, false},
		{"anime", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseContentType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRarity_Ordering(t *testing.T) {
	for i := 1; i < len(Rarities); i++ {
		assert.Less(t, Rarities[i-1], Rarities[i])
	}
	assert.Equal(t, "common", RarityCommon.String())
	assert.Equal(t, "mythic", RarityMythic.String())
	assert.False(t, Rarity(42).Valid())
}

func TestParseRarity(t *testing.T) {
	for _, r := range Rarities {
		got, err := ParseRarity(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRarity("shiny")
	assert.Error(t, err)
}

func TestRarity_TextEncoding(t *testing.T) {
	b, err := RarityEpic.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "epic", string(b))

	var r Rarity
	require.NoError(t, r.UnmarshalText([]byte("legendary")))
	assert.Equal(t, RarityLegendary, r)

	_, err = Rarity(-1).MarshalText()
	assert.Error(t, err)
}

func TestDailyLimitError(t *testing.T) {
	resetAt := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	err := fmt.Errorf("spin: %w", DailyLimitError{UserID: "u1", ResetAt: resetAt})

	assert.True(t, errors.Is(err, ErrDailyLimitReached))
	assert.False(t, errors.Is(err, ErrNoContentAvailable))

	var dle DailyLimitError
	require.True(t, errors.As(err, &dle))
	assert.Equal(t, resetAt, dle.ResetAt)
	assert.Equal(t, 0, dle.Remaining())
	assert.Contains(t, err.Error(), ErrMsgDailyLimitReached)
}
