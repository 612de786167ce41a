package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/location-screen/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.SourceConfig
		want any
	}{
		{"csv", config.SourceConfig{Driver: "csv", Path: "in.csv", KeepOrder: true}, &CSVFile{}},
		{"xlsx", config.SourceConfig{Driver: "xlsx", Path: "in.xlsx"}, &XLSXFile{}},
		{"sqlite", config.SourceConfig{Driver: "sqlite", DatabaseURL: filepath.Join(dir, "x.db")}, &SQLite{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(ctx, tt.cfg)
			require.NoError(t, err)
			defer src.Close() //nolint:errcheck
			assert.IsType(t, tt.want, src)
		})
	}
}

func TestOpen_PassesFileOptions(t *testing.T) {
	src, err := Open(context.Background(), config.SourceConfig{Driver: "csv", Path: "in.csv", KeepOrder: true})
	require.NoError(t, err)
	csvSrc, ok := src.(*CSVFile)
	require.True(t, ok)
	assert.Equal(t, "in.csv", csvSrc.Path)
	assert.True(t, csvSrc.KeepOrder)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.SourceConfig{Driver: "mongo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported source driver: mongo")
}

func TestOpen_PostgresBadURL(t *testing.T) {
	_, err := Open(context.Background(), config.SourceConfig{Driver: "postgres", DatabaseURL: "://bad"})
	require.Error(t, err)
}
