package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/mailpress"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ mailpress.DeliveryService = (*DeliveryService)(nil)

// DeliveryService implements mailpress.DeliveryService using SQLite.
type DeliveryService struct {
	db *DB
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(db *DB) *DeliveryService {
	return &DeliveryService{db: db}
}

// CreateDelivery creates a new delivery record.
func (s *DeliveryService) CreateDelivery(ctx context.Context, delivery *mailpress.Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	delivery.ID = uuid.New().String()
	delivery.CreatedAt = time.Now().UTC()
	delivery.UpdatedAt = delivery.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deliveries (id, campaign_id, campaign_title, content_hash, post_id, post_url, status, error, images_uploaded, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, delivery.ID, delivery.CampaignID, delivery.CampaignTitle, delivery.ContentHash,
		delivery.PostID, delivery.PostURL, string(delivery.Status), delivery.Error, delivery.ImagesUploaded,
		delivery.CreatedAt.Format(time.RFC3339), delivery.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindDeliveryByID retrieves a delivery by ID.
func (s *DeliveryService) FindDeliveryByID(ctx context.Context, id string) (*mailpress.Delivery, error) {
	var delivery mailpress.Delivery
	var status, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, campaign_title, content_hash, post_id, post_url, status, error, images_uploaded, created_at, updated_at
		FROM deliveries
		WHERE id = ?
	`, id).Scan(&delivery.ID, &delivery.CampaignID, &delivery.CampaignTitle, &delivery.ContentHash,
		&delivery.PostID, &delivery.PostURL, &status, &delivery.Error, &delivery.ImagesUploaded,
		&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, mailpress.Errorf(mailpress.ENOTFOUND, "delivery not found")
	}
	if err != nil {
		return nil, err
	}

	delivery.Status = mailpress.DeliveryStatus(status)
	if delivery.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if delivery.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &delivery, nil
}

// FindDeliveries retrieves deliveries matching the filter, newest first.
func (s *DeliveryService) FindDeliveries(ctx context.Context, filter mailpress.DeliveryFilter) ([]*mailpress.Delivery, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, campaign_id, campaign_title, content_hash, post_id, post_url, status, error, images_uploaded, created_at, updated_at FROM deliveries WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CampaignID != nil {
		query.WriteString(" AND campaign_id = ?")
		args = append(args, *filter.CampaignID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	// rowid breaks ties between rows created within the same second.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*mailpress.Delivery
	for rows.Next() {
		var delivery mailpress.Delivery
		var status, createdAt, updatedAt string

		if err := rows.Scan(&delivery.ID, &delivery.CampaignID, &delivery.CampaignTitle, &delivery.ContentHash,
			&delivery.PostID, &delivery.PostURL, &status, &delivery.Error, &delivery.ImagesUploaded,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}

		delivery.Status = mailpress.DeliveryStatus(status)
		if delivery.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if delivery.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, &delivery)
	}

	return deliveries, rows.Err()
}

// UpdateDelivery updates an existing delivery.
func (s *DeliveryService) UpdateDelivery(ctx context.Context, id string, upd mailpress.DeliveryUpdate) (*mailpress.Delivery, error) {
	delivery, err := s.FindDeliveryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.Status != nil {
		delivery.Status = *upd.Status
	}
	if upd.PostID != nil {
		delivery.PostID = *upd.PostID
	}
	if upd.PostURL != nil {
		delivery.PostURL = *upd.PostURL
	}
	if upd.Error != nil {
		delivery.Error = *upd.Error
	}
	if upd.ImagesUploaded != nil {
		delivery.ImagesUploaded = *upd.ImagesUploaded
	}
	delivery.UpdatedAt = time.Now().UTC()

	if err := delivery.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE deliveries
		SET status = ?, post_id = ?, post_url = ?, error = ?, images_uploaded = ?, updated_at = ?
		WHERE id = ?
	`, string(delivery.Status), delivery.PostID, delivery.PostURL, delivery.Error,
		delivery.ImagesUploaded, delivery.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return delivery, nil
}
