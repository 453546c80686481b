package palette

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustBrightness(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		percent float64
		want    string
		wantErr bool
	}{
		{name: "no change", hex: "#1A535C", percent: 0, want: "#1a535c"},
		{name: "brighter", hex: "#646464", percent: 10, want: "#6e6e6e"},
		{name: "darker", hex: "#646464", percent: -10, want: "#5a5a5a"},
		{name: "clamps at white", hex: "#FFFFFF", percent: 9.9, want: "#ffffff"},
		{name: "black stays black", hex: "#000000", percent: -10, want: "#000000"},
		{name: "rounds half up", hex: "#050505", percent: 10, want: "#060606"},
		{name: "invalid hex", hex: "not-a-color", percent: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AdjustBrightness(tt.hex, tt.percent)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdjustBrightnessStaysValid(t *testing.T) {
	seeds := []string{"#FF0099", "#00FFFF", "#F7FFF7", "#000000", "#333333", "#FFFFFF"}
	for _, seed := range seeds {
		for percent := -10.0; percent < 10.0; percent += 0.5 {
			got, err := AdjustBrightness(seed, percent)
			require.NoError(t, err)
			assert.True(t, IsHex(got), "AdjustBrightness(%s, %v) = %q", seed, percent, got)
		}
	}
}

func TestJitterPercentRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		p := JitterPercent(rng)
		if p < -JitterRange || p >= JitterRange {
			t.Fatalf("JitterPercent() = %v, outside [-%v, %v)", p, JitterRange, JitterRange)
		}
	}
}

func TestJitter(t *testing.T) {
	seeds := []string{"#1A535C", "#4ECDC4", "#F7FFF7", "#006E90", "#2EC4B6"}

	got, err := Jitter(seeds, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, got, len(seeds))
	for _, c := range got {
		assert.True(t, IsHex(c), "jittered color %q", c)
	}

	again, err := Jitter(seeds, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, got, again, "same seed should reproduce the same palette")

	_, err = Jitter([]string{"#12345"}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestValidateColors(t *testing.T) {
	tests := []struct {
		name    string
		colors  []string
		wantErr bool
	}{
		{name: "valid", colors: []string{"#000000", "#FFFFFF", "#abcdef", "#ABCDEF", "#123456"}},
		{name: "too few", colors: []string{"#000000", "#FFFFFF", "#abcdef"}, wantErr: true},
		{name: "missing hash", colors: []string{"000000", "#FFFFFF", "#abcdef", "#ABCDEF", "#123456"}, wantErr: true},
		{name: "short hex", colors: []string{"#000", "#FFFFFF", "#abcdef", "#ABCDEF", "#123456"}, wantErr: true},
		{name: "non hex digit", colors: []string{"#00000G", "#FFFFFF", "#abcdef", "#ABCDEF", "#123456"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColors(tt.colors, Size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColors() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	colors := []string{"#000000", "#111111"}
	now := time.UnixMilli(1700000000123)

	p := New("ocean", colors, now)
	colors[0] = "#ffffff"

	assert.Len(t, p.ID, 8)
	assert.Equal(t, "ocean", p.Prompt)
	assert.Equal(t, "#000000", p.Colors[0], "palette must own its colors")
	assert.Equal(t, int64(1700000000123), p.Timestamp)
	assert.True(t, p.CreatedAt().Equal(now))

	other := New("ocean", colors, now)
	assert.NotEqual(t, p.ID, other.ID)
}

func TestIsLight(t *testing.T) {
	assert.True(t, IsLight("#FFFFFF"))
	assert.True(t, IsLight("#F7FFF7"))
	assert.False(t, IsLight("#000000"))
	assert.False(t, IsLight("#1A535C"))
	assert.False(t, IsLight("garbage"))
}
