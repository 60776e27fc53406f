package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Update is conditional on the status the aggregate was loaded with: the
// WHERE clause matches both id and the persisted status, so of two racing
// transitions exactly one changes a row. The loser gets
// *errs.StateConflictError carrying the status the winner left behind.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database together with any history entries
// already recorded on the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err = r.insertPendingHistory(ctx, aggregate); err != nil {
		return err
	}

	aggregate.ClearUncommittedHistory()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the aggregate's pending transition atomically: the status
// write is conditional on the loaded status, and the new history entries are
// inserted in the same transaction scope the repository is bound to.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(aggregate.PersistedStatus())).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflictError(ctx, aggregate)
	}

	if err = r.insertPendingHistory(ctx, aggregate); err != nil {
		return err
	}

	aggregate.ClearUncommittedHistory()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including its full status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var historyDTOs []StatusHistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", id.Bytes()).
		Order("created_at, id").
		Find(&historyDTOs).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}

// GetAllInStatus retrieves all orders currently in the given status.
// History is not loaded; callers needing the audit trail use Get.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto, nil)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// insertPendingHistory writes the aggregate's uncommitted history entries.
func (r *GormOrderRepository) insertPendingHistory(ctx context.Context, aggregate *order.Order) error {
	pending := aggregate.UncommittedHistory()
	if len(pending) == 0 {
		return nil
	}

	historyDTOs := make([]StatusHistoryDTO, 0, len(pending))
	for _, entry := range pending {
		historyDTOs = append(historyDTOs, historyFromDomain(entry))
	}

	return r.db.WithContext(ctx).Create(&historyDTOs).Error
}

// conflictError distinguishes a lost optimistic-concurrency race from a
// missing row after a conditional update matched nothing.
func (r *GormOrderRepository) conflictError(ctx context.Context, aggregate *order.Order) error {
	var actual int
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status").
		Where("id = ?", aggregate.ID().Bytes()).
		Take(&actual).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if err != nil {
		return err
	}

	return errs.NewStateConflictError(
		aggregate.ID().String(),
		aggregate.PersistedStatus().String(),
		order.Status(actual).String(),
	)
}
