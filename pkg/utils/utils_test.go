package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *time.Time
		wantErr  bool
	}{
		{name: "Vazio", input: "", expected: nil},
		{name: "Data simples", input: "2024-03-15", expected: ptrTime(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))},
		{name: "RFC3339", input: "2024-03-15T10:30:00Z", expected: ptrTime(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))},
		{name: "Formato inválido", input: "15/03/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got))
		})
	}
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 10.13, RoundWithTwoDecimalPlace(10.125000001))
	assert.Equal(t, 33.33, RoundWithTwoDecimalPlace(100.0/3))
}

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 0.0, SafeDivide(5, 0))
	assert.Equal(t, 0.375, SafeDivide(3, 8))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()

	require.NoError(t, err)
	assert.Len(t, id, 6)
	assert.Regexp(t, "^[A-Za-z0-9]{6}$", id)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestMustGenerateID(t *testing.T) {
	a := MustGenerateID()
	b := MustGenerateID()

	assert.Len(t, a, 6)
	assert.NotEqual(t, a, b)
}
