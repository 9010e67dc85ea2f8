package model_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/domain/model"
)

func TestAssetValidate(t *testing.T) {
	testCases := []struct {
		name  string
		asset model.Asset
		want  error
	}{
		{
			name:  "png within limit",
			asset: model.Asset{ContentType: "image/png", Data: []byte("png")},
		},
		{
			name:  "exactly at limit",
			asset: model.Asset{ContentType: "image/webp", Data: bytes.Repeat([]byte{1}, model.MaxAssetSize)},
		},
		{
			name:  "over limit",
			asset: model.Asset{ContentType: "image/jpeg", Data: bytes.Repeat([]byte{1}, model.MaxAssetSize+1)},
			want:  model.ErrAssetTooLarge,
		},
		{
			name:  "unsupported type",
			asset: model.Asset{ContentType: "application/pdf", Data: []byte("pdf")},
			want:  model.ErrUnsupportedMediaType,
		},
		{
			name:  "empty",
			asset: model.Asset{ContentType: "image/gif"},
			want:  model.ErrEmptyAsset,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.asset.Validate()
			if tc.want == nil {
				gt.NoError(t, err)
				return
			}
			gt.Error(t, err).Is(tc.want)
		})
	}
}

func TestAssetAlert(t *testing.T) {
	a := model.Asset{ContentType: "image/jpeg", Data: bytes.Repeat([]byte{1}, model.MaxAssetSize+1)}
	gt.Value(t, model.Alert(a.Validate())).Equal("File size must be less than 10MB")
}

func TestAssetObjectKey(t *testing.T) {
	a := model.Asset{Folder: "/risk-categories/", ContentType: "image/png"}
	gt.Value(t, a.ObjectKey("abc")).Equal("risk-categories/abc.png")

	a = model.Asset{ContentType: "image/jpeg"}
	gt.Value(t, a.ObjectKey("abc")).Equal("images/abc.jpg")
}

func TestAcceptedContentTypes(t *testing.T) {
	accepted := []string{"image/gif", "image/jpeg", "image/png", "image/webp"}
	gt.Array(t, model.AcceptedContentTypes()).Equal(accepted)

	a := &model.Asset{ContentType: "application/pdf", Data: []byte("%PDF")}
	err := a.Validate()
	gt.Error(t, err).Is(model.ErrUnsupportedMediaType)

	var ge *goerr.Error
	gt.Bool(t, errors.As(err, &ge)).True()
	gt.Value(t, ge.Values()[model.AcceptedTypesKey]).Equal(any(accepted))
}
