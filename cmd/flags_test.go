package cmd

import (
	"strings"
	"testing"

	"github.com/gnames/taxlookup/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBOptions(t *testing.T) {
	cmd := getInfoCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--db", "/tmp/tax.badger"}))

	c := config.New()
	c.Update(dbOptions(cmd))
	assert.Equal(t, "/tmp/tax.badger", c.DB.Dir)
	assert.Zero(t, c.DB.CacheSize, "unchanged flags are ignored")

	cmd = getInfoCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--cache-size", "256"}))
	c.Update(dbOptions(cmd))
	assert.Equal(t, 256, c.DB.CacheSize)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes\n", true},
		{"Y\n", true},
		{"  yes  \n", true},
		{"no\n", false},
		{"\n", false},
		{"y", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cmd := getBuildCmd()
			cmd.SetErr(new(strings.Builder))
			ok, err := confirm(cmd, strings.NewReader(tt.in), "Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
