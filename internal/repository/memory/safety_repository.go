package memory

import (
	"context"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
)

type blockRepository struct {
	s *Store
}

func NewBlockRepository(s *Store) repository.BlockRepository {
	return &blockRepository{s: s}
}

func (r *blockRepository) Create(ctx context.Context, block *domain.Block) error {
	defer r.s.lockWrite(ctx)()

	key := pairKey{block.BlockerID, block.BlockedID}
	if existing, ok := r.s.t.blocks[key]; ok {
		*block = *existing
		return nil
	}
	block.ID = newID()
	block.CreatedAt = r.s.now()
	c := *block
	r.s.t.blocks[key] = &c
	return nil
}

func (r *blockRepository) IsBlocked(_ context.Context, user1ID, user2ID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.blockedLocked(user1ID, user2ID), nil
}

type reportRepository struct {
	s *Store
}

func NewReportRepository(s *Store) repository.ReportRepository {
	return &reportRepository{s: s}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	defer r.s.lockWrite(ctx)()

	report.ID = newID()
	report.CreatedAt = r.s.now()
	if report.Status == "" {
		report.Status = "pending"
	}
	c := *report
	r.s.t.reports = append(r.s.t.reports, &c)
	return nil
}

// Reports returns a copy of every stored report.
func (s *Store) Reports() []*domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := make([]*domain.Report, 0, len(s.t.reports))
	for _, r := range s.t.reports {
		c := *r
		reports = append(reports, &c)
	}
	return reports
}
