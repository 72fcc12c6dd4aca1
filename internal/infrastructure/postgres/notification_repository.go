package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/approval-hub/approval-hub/internal/domain/notification"
)

const notificationColumns = `
	id, notification_id, workflow_id, tenant_id, type, recipient_id, recipient_role,
	title, message, urgency, channels,
	email_sent, email_error, sms_sent, sms_error, in_app_delivered, in_app_read,
	retry_count, max_retries, last_error, created_at, sent_at`

// NotificationRepository implements notification.Repository.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO approval_notifications
		(notification_id, workflow_id, tenant_id, type, recipient_id, recipient_role,
		 title, message, urgency, channels, retry_count, max_retries, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, n.NotificationID, n.WorkflowID, n.TenantID, n.Type, n.RecipientID, n.RecipientRole,
		n.Title, n.Message, n.Urgency, channelStrings(n.Channels), n.RetryCount, n.MaxRetries, n.CreatedAt)
	return err
}

func (r *NotificationRepository) GetByID(ctx context.Context, notificationID uuid.UUID) (*notification.Notification, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+`
		FROM approval_notifications
		WHERE notification_id=$1
	`, notificationID)
	return scanNotification(row)
}

func (r *NotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE approval_notifications
		SET email_sent=$1, email_error=$2, sms_sent=$3, sms_error=$4,
		    in_app_delivered=$5, in_app_read=$6,
		    retry_count=$7, last_error=$8, sent_at=$9
		WHERE notification_id=$10
	`, n.EmailSent, n.EmailError, n.SMSSent, n.SMSError,
		n.InAppDelivered, n.InAppRead,
		n.RetryCount, n.LastError, n.SentAt, n.NotificationID)
	return err
}

func (r *NotificationRepository) List(ctx context.Context, filter notification.Filter, limit, offset int) ([]*notification.Notification, error) {
	sql := `SELECT ` + notificationColumns + ` FROM approval_notifications WHERE 1=1`
	args := []interface{}{}
	if filter.WorkflowID != nil {
		args = append(args, *filter.WorkflowID)
		sql += ` AND workflow_id=$` + itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		sql += ` AND type=$` + itoa(len(args))
	}
	if filter.RecipientID != nil {
		args = append(args, *filter.RecipientID)
		sql += ` AND recipient_id=$` + itoa(len(args))
	}
	args = append(args, limit)
	sql += ` ORDER BY created_at DESC LIMIT $` + itoa(len(args))
	args = append(args, offset)
	sql += ` OFFSET $` + itoa(len(args))
	return r.list(ctx, sql, args...)
}

func (r *NotificationRepository) ListFailed(ctx context.Context, limit int) ([]*notification.Notification, error) {
	return r.list(ctx, `
		SELECT `+notificationColumns+`
		FROM approval_notifications
		WHERE (email_error IS NOT NULL OR sms_error IS NOT NULL)
		  AND retry_count < max_retries
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE approval_notifications SET in_app_read=TRUE WHERE notification_id=$1
	`, notificationID)
	return err
}

func (r *NotificationRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*notification.Notification, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ns []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	var channels []string
	if err := row.Scan(
		&n.ID, &n.NotificationID, &n.WorkflowID, &n.TenantID, &n.Type, &n.RecipientID, &n.RecipientRole,
		&n.Title, &n.Message, &n.Urgency, &channels,
		&n.EmailSent, &n.EmailError, &n.SMSSent, &n.SMSError, &n.InAppDelivered, &n.InAppRead,
		&n.RetryCount, &n.MaxRetries, &n.LastError, &n.CreatedAt, &n.SentAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	n.Channels = make([]notification.Channel, 0, len(channels))
	for _, c := range channels {
		n.Channels = append(n.Channels, notification.Channel(c))
	}
	return &n, nil
}

func channelStrings(channels []notification.Channel) []string {
	out := make([]string, 0, len(channels))
	for _, c := range channels {
		out = append(out, string(c))
	}
	return out
}
