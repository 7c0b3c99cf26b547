package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "winter"},
		{time.February, "winter"},
		{time.March, "summer"},
		{time.May, "summer"},
		{time.June, "monsoon"},
		{time.September, "monsoon"},
		{time.October, "summer"},
		{time.November, "winter"},
		{time.December, "winter"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, seasonFor(tt.month), "month %s", tt.month)
	}
}

func TestClimateZoneFor(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"North India", "temperate"},
		{"cold hills", "temperate"},
		{"Thar desert", "arid"},
		{"Arid plains", "arid"},
		{"Maharashtra", "tropical"},
		{"", "tropical"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, climateZoneFor(tt.location), "location %q", tt.location)
	}
}
