package store

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// blobAPI is the slice of Azure Blob Storage this backend needs. The
// indirection allows tests to run against an in-memory implementation.
type blobAPI interface {
	Upload(ctx context.Context, blobName string, data []byte) error
	Download(ctx context.Context, blobName string) ([]byte, bool, error)
	Delete(ctx context.Context, blobName string) error
}

// AzureBlobKV keeps each key as one block blob in a container. It is the
// off-site option: the record set rides on the clinic's existing Azure
// storage account.
type AzureBlobKV struct {
	api    blobAPI
	logger *zap.Logger
}

// NewAzureBlobKV builds a backend over a shared-key Azure storage account.
func NewAzureBlobKV(accountName, accountKey, containerName string, logger *zap.Logger) (*AzureBlobKV, error) {
	if accountName == "" || accountKey == "" || containerName == "" {
		return nil, fmt.Errorf("accountName, accountKey, and containerName are required")
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &AzureBlobKV{
		api:    &azureBlobAPI{client: client, container: containerName},
		logger: logger,
	}, nil
}

// newAzureBlobKVWithAPI wires an arbitrary blobAPI; used by tests.
func newAzureBlobKVWithAPI(api blobAPI, logger *zap.Logger) *AzureBlobKV {
	return &AzureBlobKV{api: api, logger: logger}
}

func blobName(key string) string {
	return key + ".json"
}

// Get implements KV.
func (a *AzureBlobKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, found, err := a.api.Download(ctx, blobName(key))
	if err != nil {
		a.logger.Error("failed to download blob", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("failed to download blob %q: %w", key, err)
	}
	return data, found, nil
}

// Set implements KV.
func (a *AzureBlobKV) Set(ctx context.Context, key string, value []byte) error {
	if err := a.api.Upload(ctx, blobName(key), value); err != nil {
		a.logger.Error("failed to upload blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload blob %q: %w", key, err)
	}
	a.logger.Debug("blob uploaded", zap.String("key", key), zap.Int("size_bytes", len(value)))
	return nil
}

// Delete implements KV.
func (a *AzureBlobKV) Delete(ctx context.Context, key string) error {
	if err := a.api.Delete(ctx, blobName(key)); err != nil {
		a.logger.Error("failed to delete blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}

var _ KV = (*AzureBlobKV)(nil)

// azureBlobAPI is the real Azure implementation of blobAPI.
type azureBlobAPI struct {
	client    *azblob.Client
	container string
}

func (a *azureBlobAPI) Upload(ctx context.Context, blobName string, data []byte) error {
	_, err := a.client.UploadBuffer(ctx, a.container, blobName, data, &azblob.UploadBufferOptions{})
	return err
}

func (a *azureBlobAPI) Download(ctx context.Context, blobName string) ([]byte, bool, error) {
	resp, err := a.client.DownloadStream(ctx, a.container, blobName, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (a *azureBlobAPI) Delete(ctx context.Context, blobName string) error {
	_, err := a.client.DeleteBlob(ctx, a.container, blobName, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil
	}
	return err
}
