package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whats4dinner"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     whats4dinner.StorageConfig
		want    any
		wantErr string
	}{
		{name: "file backend", cfg: whats4dinner.StorageConfig{Backend: "file", Dir: t.TempDir()}, want: &FileStore{}},
		{name: "default is file", cfg: whats4dinner.StorageConfig{Dir: t.TempDir()}, want: &FileStore{}},
		{name: "memory backend", cfg: whats4dinner.StorageConfig{Backend: "memory"}, want: &MemoryStore{}},
		{name: "s3 without bucket", cfg: whats4dinner.StorageConfig{Backend: "s3"}, wantErr: "STORAGE_S3_BUCKET"},
		{name: "unknown backend", cfg: whats4dinner.StorageConfig{Backend: "floppy"}, wantErr: `unknown storage backend "floppy"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeFn, err := Open(ctx, tt.cfg)
			require.NotNil(t, closeFn)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
			assert.NoError(t, closeFn())
		})
	}
}
