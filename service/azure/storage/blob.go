package azurestorage

import (
	"context"
	"fmt"
	"iter"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/elC0mpa/storage-doctor/model"
)

// blobSource streams the blobs of one container page by page
type blobSource struct {
	client    *azblob.Client
	container string
}

func (b *blobSource) Objects(ctx context.Context) iter.Seq2[model.ObjectRecord, error] {
	return func(yield func(model.ObjectRecord, error) bool) {
		pager := b.client.NewListBlobsFlatPager(b.container, nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				yield(model.ObjectRecord{}, fmt.Errorf("failed to list blobs in %s: %w", b.container, err))
				return
			}
			if page.Segment == nil {
				continue
			}
			for _, item := range page.Segment.BlobItems {
				if item == nil {
					continue
				}
				if !yield(blobRecord(item), nil) {
					return
				}
			}
		}
	}
}

func blobRecord(item *container.BlobItem) model.ObjectRecord {
	record := model.ObjectRecord{}
	if item.Name != nil {
		record.Name = *item.Name
	}
	if item.Properties != nil {
		if item.Properties.ContentLength != nil {
			record.Size = *item.Properties.ContentLength
		}
		if item.Properties.LastModified != nil {
			record.LastModified = *item.Properties.LastModified
		}
	}
	return record
}
