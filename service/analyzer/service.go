package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/costmodel"
)

func NewService(logger *slog.Logger) *service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{logger: logger}
}

// ClassifySize puts an object in exactly one size class
func ClassifySize(size int64) SizeClass {
	if size <= SmallObjectLimit {
		return SizeSmall
	}
	return SizeLarge
}

// ClassifyAge puts an object in exactly one age class relative to now.
// Objects modified in the future count as hot.
func ClassifyAge(lastModified, now time.Time) AgeClass {
	age := now.Sub(lastModified)
	switch {
	case age < HotAge:
		return AgeHot
	case age < WarmAge:
		return AgeWarm
	case age < ColdAge:
		return AgeCold
	default:
		return AgeArchive
	}
}

// Analyze folds the object stream of one unit into a UnitResult.
// A failing stream yields a *UnitError and never a partial result.
func (s *service) Analyze(ctx context.Context, target model.ScanTarget, now time.Time) (result *model.UnitResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = newUnitError(target, fmt.Errorf("panic during scan: %v", r))
		}
	}()

	if target.Source == nil {
		return nil, newUnitError(target, errors.New("no object source"))
	}

	acc := accumulator{now: now}
	for obj, iterErr := range target.Source.Objects(ctx) {
		if iterErr != nil {
			return nil, newUnitError(target, iterErr)
		}
		acc.add(obj)
	}

	result = acc.result(target)

	if detailer, ok := target.Source.(model.ShareDetailer); ok {
		details, detailErr := detailer.ShareDetails(ctx)
		if detailErr != nil {
			return nil, newUnitError(target, fmt.Errorf("failed to get share properties: %w", detailErr))
		}
		if details == nil {
			details = &model.ShareDetails{}
		}
		details.HugeFileCount = acc.hugeCount
		result.Share = details
	}

	s.logger.Info("unit scanned",
		"kind", target.Kind,
		"account", target.AccountName,
		"unit", target.UnitName,
		"objects", result.TotalCount,
		"size", humanize.IBytes(uint64(result.TotalSize)),
		"small", result.SmallCount,
		"large", result.LargeCount,
		"over_90d_pct", fmt.Sprintf("%.1f", result.Over90Pct),
		"over_180d_pct", fmt.Sprintf("%.1f", result.Over180Pct),
	)

	return result, nil
}

type accumulator struct {
	now time.Time

	totalCount int64
	totalSize  int64
	dirCount   int64
	hugeCount  int64

	sizeCount [2]int64
	sizeBytes [2]int64
	ageCount  [4]int64
	ageBytes  [4]int64

	tiers model.TierBreakdown
}

func (a *accumulator) add(obj model.ObjectRecord) {
	if obj.IsDirectory {
		a.dirCount++
		return
	}

	size := obj.Size
	if size < 0 {
		size = 0
	}

	a.totalCount++
	a.totalSize += size

	sc := ClassifySize(size)
	a.sizeCount[sc]++
	a.sizeBytes[sc] += size

	ac := ClassifyAge(obj.LastModified, a.now)
	a.ageCount[ac]++
	a.ageBytes[ac] += size

	if size > HugeFileLimit {
		a.hugeCount++
	}

	a.tiers.Add(costmodel.RecommendTier(size, ageDays(obj.LastModified, a.now)), size)
}

// ageDays counts whole days since lastModified. Future timestamps count as 0.
func ageDays(lastModified, now time.Time) int {
	age := now.Sub(lastModified)
	if age < 0 {
		return 0
	}
	return int(age / (24 * time.Hour))
}

func (a *accumulator) result(target model.ScanTarget) *model.UnitResult {
	r := &model.UnitResult{
		Kind:           target.Kind,
		SubscriptionID: target.SubscriptionID,
		AccountName:    target.AccountName,
		UnitName:       target.UnitName,
		ScannedAt:      a.now,

		TotalCount:     a.totalCount,
		TotalSize:      a.totalSize,
		DirectoryCount: a.dirCount,

		SmallCount: a.sizeCount[SizeSmall],
		SmallSize:  a.sizeBytes[SizeSmall],
		LargeCount: a.sizeCount[SizeLarge],
		LargeSize:  a.sizeBytes[SizeLarge],

		HotCount:     a.ageCount[AgeHot],
		HotSize:      a.ageBytes[AgeHot],
		WarmCount:    a.ageCount[AgeWarm],
		WarmSize:     a.ageBytes[AgeWarm],
		ColdCount:    a.ageCount[AgeCold],
		ColdSize:     a.ageBytes[AgeCold],
		ArchiveCount: a.ageCount[AgeArchive],
		ArchiveSize:  a.ageBytes[AgeArchive],

		RecommendedTiers: a.tiers,
	}

	r.Over90Count = r.ColdCount + r.ArchiveCount
	r.Over180Count = r.ArchiveCount

	r.HotPct = model.Percent(r.HotCount, r.TotalCount)
	r.WarmPct = model.Percent(r.WarmCount, r.TotalCount)
	r.ColdPct = model.Percent(r.ColdCount, r.TotalCount)
	r.ArchivePct = model.Percent(r.ArchiveCount, r.TotalCount)
	r.Over90Pct = model.Percent(r.Over90Count, r.TotalCount)
	r.Over180Pct = model.Percent(r.Over180Count, r.TotalCount)

	r.HotSizePct = model.Percent(r.HotSize, r.TotalSize)
	r.WarmSizePct = model.Percent(r.WarmSize, r.TotalSize)
	r.ColdSizePct = model.Percent(r.ColdSize, r.TotalSize)
	r.ArchiveSizePct = model.Percent(r.ArchiveSize, r.TotalSize)

	r.SmallPct = model.Percent(r.SmallCount, r.TotalCount)
	r.LargePct = model.Percent(r.LargeCount, r.TotalCount)

	return r
}
