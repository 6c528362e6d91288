package azurestorage

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/directory"
	fileservice "github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/service"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/share"
	"github.com/elC0mpa/storage-doctor/model"
)

// shareSource walks a file share depth first. Share details are captured
// during discovery from the share listing.
type shareSource struct {
	client  *share.Client
	name    string
	details model.ShareDetails
}

func (s *shareSource) Objects(ctx context.Context) iter.Seq2[model.ObjectRecord, error] {
	return func(yield func(model.ObjectRecord, error) bool) {
		type pending struct {
			client *directory.Client
			path   string
		}
		stack := []pending{{client: s.client.NewRootDirectoryClient()}}

		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			pager := dir.client.NewListFilesAndDirectoriesPager(&directory.ListFilesAndDirectoriesOptions{
				Include: directory.ListFilesInclude{Timestamps: true},
			})
			for pager.More() {
				page, err := pager.NextPage(ctx)
				if err != nil {
					yield(model.ObjectRecord{}, fmt.Errorf("failed to list %s/%s: %w", s.name, dir.path, err))
					return
				}
				if page.Segment == nil {
					continue
				}

				for _, d := range page.Segment.Directories {
					if d == nil || d.Name == nil {
						continue
					}
					childPath := joinPath(dir.path, *d.Name)
					if !yield(model.ObjectRecord{Name: childPath, IsDirectory: true}, nil) {
						return
					}
					stack = append(stack, pending{client: dir.client.NewSubdirectoryClient(*d.Name), path: childPath})
				}
				for _, f := range page.Segment.Files {
					if f == nil {
						continue
					}
					if !yield(fileRecord(dir.path, f), nil) {
						return
					}
				}
			}
		}
	}
}

func (s *shareSource) ShareDetails(context.Context) (*model.ShareDetails, error) {
	details := s.details
	return &details, nil
}

func fileRecord(parent string, f *directory.File) model.ObjectRecord {
	record := model.ObjectRecord{}
	if f.Name != nil {
		record.Name = joinPath(parent, *f.Name)
	}
	if f.Properties != nil {
		if f.Properties.ContentLength != nil {
			record.Size = *f.Properties.ContentLength
		}
		switch {
		case f.Properties.LastModified != nil:
			record.LastModified = *f.Properties.LastModified
		case f.Properties.LastWriteTime != nil:
			record.LastModified = *f.Properties.LastWriteTime
		}
	}
	return record
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// collectShares folds a share listing that includes snapshots into one
// details entry per live share, returned with the names sorted.
func collectShares(items []*fileservice.Share) ([]string, map[string]model.ShareDetails) {
	details := make(map[string]model.ShareDetails)
	snapshots := make(map[string]int)

	for _, item := range items {
		if item == nil || item.Name == nil {
			continue
		}
		if item.Deleted != nil && *item.Deleted {
			continue
		}
		if item.Snapshot != nil && *item.Snapshot != "" {
			snapshots[*item.Name]++
			continue
		}

		d := model.ShareDetails{AccessTier: "TransactionOptimized"}
		if item.Properties != nil {
			if item.Properties.Quota != nil {
				d.QuotaGiB = int64(*item.Properties.Quota)
			}
			if item.Properties.AccessTier != nil && *item.Properties.AccessTier != "" {
				d.AccessTier = *item.Properties.AccessTier
			}
		}
		details[*item.Name] = d
	}

	names := make([]string, 0, len(details))
	for name, d := range details {
		d.SnapshotCount = snapshots[name]
		details[name] = d
		names = append(names, name)
	}
	slices.Sort(names)

	return names, details
}
