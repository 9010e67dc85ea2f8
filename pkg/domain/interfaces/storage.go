package interfaces

import "context"

// AssetStorage stores uploaded images and returns their public URL
type AssetStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
