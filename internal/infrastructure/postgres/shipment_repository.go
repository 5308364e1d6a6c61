package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/entity"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación de ShipmentRepository.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `
	id, tracking_code, customer_id, customer_name, customer_email, customer_phone,
	origin, destination, weight, description, status, current_route_stage,
	registered_date, last_updated, estimated_delivery, actual_delivery_date, admin_notes`

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TrackingCode, nullIfEmpty(s.CustomerID), s.CustomerName,
		nullIfEmpty(s.CustomerEmail), nullIfEmpty(s.CustomerPhone),
		s.Origin, s.Destination, s.Weight, nullIfEmpty(s.Description),
		s.Status, s.CurrentRouteStage,
		s.RegisteredDate, s.LastUpdated, s.EstimatedDelivery, s.ActualDeliveryDate, nullIfEmpty(s.AdminNotes),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tracking code already exists: %w: %w", domain.ErrDuplicate, err)
		}
		return wrapErr("insert shipment", err)
	}
	return nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get shipment", `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
}

func (r *ShipmentRepo) GetByTrackingCode(ctx context.Context, code string) (*entity.Shipment, error) {
	return r.getOne(ctx, "get shipment by tracking code", `SELECT `+shipmentColumns+` FROM shipments WHERE tracking_code = $1`, code)
}

// GetForUpdate obtiene el envío con bloqueo de fila (SELECT FOR UPDATE).
func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shipment, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get shipment for update", `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1 FOR UPDATE`, id)
}

func (r *ShipmentRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.Shipment, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return s, nil
}

// Update persiste los campos mutables; tracking_code y registered_date no cambian.
func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	query := `
		UPDATE shipments
		SET status               = $2,
		    current_route_stage  = $3,
		    last_updated         = $4,
		    estimated_delivery   = $5,
		    actual_delivery_date = $6,
		    admin_notes          = $7,
		    description          = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Status, s.CurrentRouteStage, s.LastUpdated,
		s.EstimatedDelivery, s.ActualDeliveryDate, nullIfEmpty(s.AdminNotes), nullIfEmpty(s.Description),
	)
	if err != nil {
		return wrapErr("update shipment", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// List lista envíos, registrados más recientemente primero.
func (r *ShipmentRepo) List(ctx context.Context, f repository.ShipmentFilter) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE ($1 = '' OR customer_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY registered_date DESC, tracking_code DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.CustomerID, string(f.Status), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, wrapErr("list shipments", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, wrapErr("scan shipment", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	var customerID, email, phone, description, notes *string
	err := row.Scan(
		&s.ID, &s.TrackingCode, &customerID, &s.CustomerName, &email, &phone,
		&s.Origin, &s.Destination, &s.Weight, &description, &s.Status, &s.CurrentRouteStage,
		&s.RegisteredDate, &s.LastUpdated, &s.EstimatedDelivery, &s.ActualDeliveryDate, &notes,
	)
	if err != nil {
		return nil, err
	}
	s.CustomerID = derefStr(customerID)
	s.CustomerEmail = derefStr(email)
	s.CustomerPhone = derefStr(phone)
	s.Description = derefStr(description)
	s.AdminNotes = derefStr(notes)
	return &s, nil
}
