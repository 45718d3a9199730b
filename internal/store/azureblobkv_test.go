package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockBlobAPI is an in-memory stand-in for the Azure container so the
// backend logic is testable without a storage account.
type mockBlobAPI struct {
	blobs    map[string][]byte
	failNext bool
}

func newMockBlobAPI() *mockBlobAPI {
	return &mockBlobAPI{blobs: make(map[string][]byte)}
}

func (m *mockBlobAPI) Upload(_ context.Context, blobName string, data []byte) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("simulated upload failure")
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[blobName] = stored
	return nil
}

func (m *mockBlobAPI) Download(_ context.Context, blobName string) ([]byte, bool, error) {
	if m.failNext {
		m.failNext = false
		return nil, false, fmt.Errorf("simulated download failure")
	}
	data, ok := m.blobs[blobName]
	if !ok {
		return nil, false, nil
	}
	return data, true, nil
}

func (m *mockBlobAPI) Delete(_ context.Context, blobName string) error {
	delete(m.blobs, blobName)
	return nil
}

func TestAzureBlobKV_RoundTrip(t *testing.T) {
	api := newMockBlobAPI()
	kv := newAzureBlobKVWithAPI(api, zap.NewNop())
	ctx := context.Background()

	_, found, err := kv.Get(ctx, DefaultPatientsKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, DefaultPatientsKey, []byte(`[]`)))
	assert.Contains(t, api.blobs, DefaultPatientsKey+".json")

	data, found, err := kv.Get(ctx, DefaultPatientsKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, kv.Delete(ctx, DefaultPatientsKey))
	_, found, err = kv.Get(ctx, DefaultPatientsKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAzureBlobKV_PropagatesFailures(t *testing.T) {
	api := newMockBlobAPI()
	kv := newAzureBlobKVWithAPI(api, zap.NewNop())
	ctx := context.Background()

	api.failNext = true
	assert.Error(t, kv.Set(ctx, "k", []byte("v")))

	api.failNext = true
	_, _, err := kv.Get(ctx, "k")
	assert.Error(t, err)
}

func TestNewAzureBlobKV_RequiresCredentials(t *testing.T) {
	_, err := NewAzureBlobKV("", "key", "container", zap.NewNop())
	assert.Error(t, err)
	_, err = NewAzureBlobKV("account", "", "container", zap.NewNop())
	assert.Error(t, err)
	_, err = NewAzureBlobKV("account", "key", "", zap.NewNop())
	assert.Error(t, err)
}
