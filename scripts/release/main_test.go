package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{arg: "1.2.3", want: "1.2.3"},
		{arg: "v1.2.3", want: "1.2.3"},
		{arg: "v2.0.0-beta.1", want: "2.0.0-beta.1"},
		{arg: "1.2", wantErr: true},
		{arg: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := normalizeVersion(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeVersion(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("normalizeVersion(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestSetVersion(t *testing.T) {
	content := "package constants\n\nvar Version = \"0.0.0\"\n\nconst AppName = \"vibe-palette\"\n"

	updated, err := setVersion(content, "1.4.0")
	require.NoError(t, err)
	assert.Contains(t, updated, `var Version = "1.4.0"`)
	assert.Contains(t, updated, `const AppName = "vibe-palette"`)

	_, err = setVersion("package constants\n", "1.4.0")
	assert.Error(t, err)
}
