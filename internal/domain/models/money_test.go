package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	fifty := MustMoney("50.00")

	require.True(t, fifty.MultiplyInt(3).Equals(MustMoney("150.00")))
	require.True(t, fifty.Add(MustMoney("150.00")).Equals(MustMoney("200.00")))
	require.True(t, fifty.IsPositive())
}

func TestMoneyEqualityByValue(t *testing.T) {
	require.True(t, MustMoney("50.0").Equals(MustMoney("50.00")))
	require.Equal(t, "50.00", MustMoney("50.0").String())
}

func TestMoneyRejectsNegative(t *testing.T) {
	_, err := NewMoneyFromString("-1.00")
	require.Error(t, err)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := MustMoney("199.90")

	bytes, err := m.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"199.90"`, string(bytes))

	var parsed Money
	require.NoError(t, parsed.UnmarshalJSON(bytes))
	require.True(t, m.Equals(parsed))
}
