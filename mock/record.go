package mock

import (
	"context"

	"github.com/nbsatlas/nbsharvest"
)

var _ nbsharvest.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of nbsharvest.RecordService.
type RecordService struct {
	CreateRecordFn func(ctx context.Context, rec *nbsharvest.Record) error
	FindRecordsFn  func(ctx context.Context, filter nbsharvest.RecordFilter) ([]*nbsharvest.Record, error)
	SourceURLsFn   func(ctx context.Context) (map[string]bool, error)
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *nbsharvest.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecords(ctx context.Context, filter nbsharvest.RecordFilter) ([]*nbsharvest.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) SourceURLs(ctx context.Context) (map[string]bool, error) {
	return s.SourceURLsFn(ctx)
}

// NewMemoryRecordService returns a RecordService mock backed by an
// in-memory slice, enough store behavior for pipeline tests.
func NewMemoryRecordService() (*RecordService, *[]*nbsharvest.Record) {
	records := &[]*nbsharvest.Record{}

	svc := &RecordService{
		CreateRecordFn: func(_ context.Context, rec *nbsharvest.Record) error {
			if rec.SourceURL != nbsharvest.Unknown {
				for _, existing := range *records {
					if existing.SourceURL == rec.SourceURL {
						return nbsharvest.Errorf(nbsharvest.ECONFLICT, "record for %q already exists", rec.SourceURL)
					}
				}
			}
			*records = append(*records, rec)
			return nil
		},
		FindRecordsFn: func(_ context.Context, _ nbsharvest.RecordFilter) ([]*nbsharvest.Record, error) {
			return append([]*nbsharvest.Record{}, *records...), nil
		},
		SourceURLsFn: func(_ context.Context) (map[string]bool, error) {
			urls := make(map[string]bool, len(*records))
			for _, rec := range *records {
				if rec.SourceURL != nbsharvest.Unknown {
					urls[rec.SourceURL] = true
				}
			}
			return urls, nil
		},
	}

	return svc, records
}
