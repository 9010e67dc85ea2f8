package model

import (
	"path"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// MaxAssetSize is the upper bound for an uploaded image
const MaxAssetSize = 10 * 1024 * 1024

// DefaultAssetFolder is used when an upload names no folder
const DefaultAssetFolder = "images"

// AssetContentTypes lists accepted image media types with their file extension
var AssetContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Asset is an image submitted for upload
type Asset struct {
	Folder      string
	Filename    string
	ContentType string
	Data        []byte
}

// Validate checks size and media type limits before the asset is handed to storage
func (a *Asset) Validate() error {
	if len(a.Data) == 0 {
		return goerr.Wrap(ErrEmptyAsset, "asset has no content")
	}
	if len(a.Data) > MaxAssetSize {
		return goerr.Wrap(ErrAssetTooLarge, "asset exceeds size limit",
			goerr.V(SizeKey, len(a.Data)))
	}
	if _, ok := AssetContentTypes[a.ContentType]; !ok {
		return goerr.Wrap(ErrUnsupportedMediaType, "asset media type is not accepted",
			goerr.V(ContentTypeKey, a.ContentType),
			goerr.V(AcceptedTypesKey, AcceptedContentTypes()))
	}
	return nil
}

// ObjectKey builds the storage key for the asset below its folder using a unique name
func (a *Asset) ObjectKey(name string) string {
	folder := strings.Trim(a.Folder, "/")
	if folder == "" {
		folder = DefaultAssetFolder
	}
	return path.Join(folder, name+AssetContentTypes[a.ContentType])
}

// AcceptedContentTypes returns the accepted media types in stable order
func AcceptedContentTypes() []string {
	types := make([]string, 0, len(AssetContentTypes))
	for t := range AssetContentTypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
