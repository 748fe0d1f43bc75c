package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	cases := []struct {
		x    float64
		d    int
		want string
	}{
		{2.5, 0, "3"},
		{-2.5, 0, "-3"},
		{1.005, 2, "1.00"},
		{1.255, 2, "1.25"},
		{75, 0, "75"},
		{-50, 1, "-50.0"},
		{0.0001, 2, "0.00"},
		{8.333333, 2, "8.33"},
		{22.2222, 1, "22.2"},
		{0.5, 0, "1"},
		{123456.789, 1, "123456.8"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Fixed(tc.x, tc.d), "Fixed(%v, %d)", tc.x, tc.d)
	}
	assert.Equal(t, "NaN", Fixed(math.NaN(), 2))
	assert.Equal(t, "Infinity", Fixed(math.Inf(1), 2))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1.234,50", Number(1234.5, 2))
	assert.Equal(t, "-1.234.567,89", Number(-1234567.891, 2))
	assert.Equal(t, "12,00", Number(12, 2))
	assert.Equal(t, "999", Number(999, 0))
}

func TestKm(t *testing.T) {
	assert.Equal(t, "1,2M", Km(1234567))
	assert.Equal(t, "12K", Km(12345))
	assert.Equal(t, "1K", Km(1000))
	assert.Equal(t, "999,5", Km(999.5))
	assert.Equal(t, "0", Km(0))
	assert.Equal(t, "42", Km(42))
}
