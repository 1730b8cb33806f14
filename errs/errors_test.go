package errs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeSentinels_Chain(t *testing.T) {
	// The refined sentinels must still match the broad one.
	require.ErrorIs(t, ErrTooSmall, ErrOutOfRange)
	require.ErrorIs(t, ErrTooLarge, ErrOutOfRange)

	require.NotErrorIs(t, ErrTooSmall, ErrTooLarge)
	require.NotErrorIs(t, ErrOutOfRange, ErrTooSmall)
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("%w: date before year 1", ErrTooSmall)
	require.ErrorIs(t, err, ErrTooSmall)
	require.ErrorIs(t, err, ErrOutOfRange)

	err = fmt.Errorf("outer context: %w", err)
	require.ErrorIs(t, err, ErrTooSmall)
}

func TestSentinels_Distinct(t *testing.T) {
	require.NotErrorIs(t, ErrParse, ErrOutOfRange)
	require.NotErrorIs(t, ErrNotImplemented, ErrParse)
	require.NotErrorIs(t, ErrInvalidStyle, ErrParse)
}
