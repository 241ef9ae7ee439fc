package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. Every lifecycle
// transition is a single conditional UPDATE; the boolean result reports whether
// the guard matched a row.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListUnassigned(ctx context.Context) ([]domain.Complaint, error)
	ListByAdminEmail(ctx context.Context, email string) ([]domain.Complaint, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]domain.Complaint, error)
	ListByTechnicianEmail(ctx context.Context, email string) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)

	Claim(ctx context.Context, id string, assignment domain.AdminAssignment) (bool, error)
	AssignTechnician(ctx context.Context, id string, assignment domain.TechnicianAssignment) (bool, error)
	HasActiveAssignment(ctx context.Context, technicianID string) (bool, error)
	AdvanceStatus(ctx context.Context, id string, from []domain.ComplaintStatus, to domain.ComplaintStatus) (bool, error)
	CompletePayment(ctx context.Context, id string, payment domain.Payment) (bool, error)
	SetTechnicianPayment(ctx context.Context, id string, payment domain.TechnicianPayment) error

	CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int64, error)
	RevenueTotal(ctx context.Context) (float64, error)
	ActiveCountByTechnician(ctx context.Context) (map[string]int64, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, customer_id, customer_email, customer_name, customer_phone, customer_city,
        title, description, category, priority, status, total_amount,
        admin_id, admin_email, admin_name, taken_at,
        technician_id, technician_email, technician_name, technician_phone, assigned_at,
        payment_status, payment_amount, payment_txn_id, payment_method, payment_paid_at, payment_details,
        tech_pay_status, tech_pay_amount, tech_pay_paid_at, tech_pay_paid_by, tech_pay_notes,
        created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (customer_id, customer_email, customer_name, customer_phone, customer_city,
            title, description, category, priority, status, total_amount, payment_amount)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)
        RETURNING id, payment_status, tech_pay_status, tech_pay_amount, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		complaint.CustomerID,
		complaint.CustomerEmail,
		complaint.CustomerName,
		complaint.CustomerPhone,
		complaint.CustomerCity,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Priority,
		complaint.Status,
		complaint.TotalAmount,
	).Scan(
		&complaint.ID,
		&complaint.Payment.Status,
		&complaint.TechPayment.Status,
		&complaint.TechPayment.Amount,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanComplaintRow(row)
}

func (r *complaintRepository) ListUnassigned(ctx context.Context) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints
        WHERE status=$1
        ORDER BY CASE priority WHEN 'URGENT' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END,
                 created_at DESC`
	return r.list(ctx, query, domain.ComplaintStatusOpen)
}

func (r *complaintRepository) ListByAdminEmail(ctx context.Context, email string) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE admin_email=$1 ORDER BY taken_at DESC`
	return r.list(ctx, query, email)
}

func (r *complaintRepository) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE customer_email=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, email)
}

func (r *complaintRepository) ListByTechnicianEmail(ctx context.Context, email string) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE technician_email=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, email)
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// Claim atomically moves an OPEN complaint to TAKEN, recording the admin.
// Returns false without error when another admin already claimed it.
func (r *complaintRepository) Claim(ctx context.Context, id string, assignment domain.AdminAssignment) (bool, error) {
	const query = `
        UPDATE complaints
        SET status=$1, admin_id=$2, admin_email=$3, admin_name=$4, taken_at=$5, updated_at=NOW()
        WHERE id=$6 AND status=$7`

	cmd, err := r.pool.Exec(ctx, query,
		domain.ComplaintStatusTaken,
		assignment.AdminID,
		assignment.AdminEmail,
		assignment.AdminName,
		assignment.TakenAt,
		id,
		domain.ComplaintStatusOpen,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// AssignTechnician atomically moves a TAKEN complaint to ASSIGNED, provided the
// technician holds no other complaint in ASSIGNED or IN_PROGRESS. The NOT EXISTS
// guard and the partial unique index on technician_id make the one-active-job
// rule hold under concurrent assignment calls.
func (r *complaintRepository) AssignTechnician(ctx context.Context, id string, assignment domain.TechnicianAssignment) (bool, error) {
	const query = `
        UPDATE complaints
        SET status=$1, technician_id=$2, technician_email=$3, technician_name=$4,
            technician_phone=$5, assigned_at=$6, updated_at=NOW()
        WHERE id=$7 AND status=$8
          AND NOT EXISTS (
              SELECT 1 FROM complaints
              WHERE technician_id=$2 AND status IN ($9,$10)
          )`

	cmd, err := r.pool.Exec(ctx, query,
		domain.ComplaintStatusAssigned,
		assignment.TechnicianID,
		assignment.TechnicianEmail,
		assignment.TechnicianName,
		assignment.TechnicianPhone,
		assignment.AssignedAt,
		id,
		domain.ComplaintStatusTaken,
		domain.ComplaintStatusAssigned,
		domain.ComplaintStatusInProgress,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *complaintRepository) HasActiveAssignment(ctx context.Context, technicianID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM complaints WHERE technician_id=$1 AND status IN ($2,$3)
        )`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, technicianID,
		domain.ComplaintStatusAssigned, domain.ComplaintStatusInProgress).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AdvanceStatus conditionally moves a complaint from any of the listed states to the next one.
func (r *complaintRepository) AdvanceStatus(ctx context.Context, id string, from []domain.ComplaintStatus, to domain.ComplaintStatus) (bool, error) {
	query := `UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2 AND status = ANY($3)`

	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}

	cmd, err := r.pool.Exec(ctx, query, to, id, states)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// CompletePayment closes a RESOLVED complaint and records the confirmed charge.
func (r *complaintRepository) CompletePayment(ctx context.Context, id string, payment domain.Payment) (bool, error) {
	const query = `
        UPDATE complaints
        SET status=$1, payment_status=$2, payment_amount=$3, payment_txn_id=$4,
            payment_method=$5, payment_paid_at=$6, payment_details=$7, updated_at=NOW()
        WHERE id=$8 AND status=$9`

	cmd, err := r.pool.Exec(ctx, query,
		domain.ComplaintStatusClosed,
		payment.Status,
		payment.Amount,
		payment.TransactionID,
		payment.Method,
		payment.PaidAt,
		payment.Details,
		id,
		domain.ComplaintStatusResolved,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *complaintRepository) SetTechnicianPayment(ctx context.Context, id string, payment domain.TechnicianPayment) error {
	const query = `
        UPDATE complaints
        SET tech_pay_status=$1, tech_pay_amount=$2, tech_pay_paid_at=$3, tech_pay_paid_by=$4,
            tech_pay_notes=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		payment.Status,
		payment.Amount,
		payment.PaidAt,
		payment.PaidBy,
		payment.Notes,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM complaints GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ComplaintStatus]int64)
	for rows.Next() {
		var status domain.ComplaintStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *complaintRepository) RevenueTotal(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(SUM(payment_amount), 0) FROM complaints WHERE payment_status=$1`
	var total float64
	if err := r.pool.QueryRow(ctx, query, domain.PaymentStatusCompleted).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *complaintRepository) ActiveCountByTechnician(ctx context.Context) (map[string]int64, error) {
	const query = `
        SELECT technician_id, COUNT(*) FROM complaints
        WHERE technician_id IS NOT NULL AND status IN ($1,$2)
        GROUP BY technician_id`
	rows, err := r.pool.Query(ctx, query, domain.ComplaintStatusAssigned, domain.ComplaintStatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var technicianID string
		var count int64
		if err := rows.Scan(&technicianID, &count); err != nil {
			return nil, err
		}
		counts[technicianID] = count
	}
	return counts, rows.Err()
}

func (r *complaintRepository) list(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		complaint, err := scanComplaintRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *complaint)
	}
	return result, rows.Err()
}

func scanComplaintRow(row pgx.Row) (*domain.Complaint, error) {
	var (
		c          domain.Complaint
		adminID    *string
		adminEmail *string
		adminName  *string
		takenAt    *time.Time
		techID     *string
		techEmail  *string
		techName   *string
		techPhone  *string
		assignedAt *time.Time
	)

	if err := row.Scan(
		&c.ID,
		&c.CustomerID,
		&c.CustomerEmail,
		&c.CustomerName,
		&c.CustomerPhone,
		&c.CustomerCity,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Priority,
		&c.Status,
		&c.TotalAmount,
		&adminID,
		&adminEmail,
		&adminName,
		&takenAt,
		&techID,
		&techEmail,
		&techName,
		&techPhone,
		&assignedAt,
		&c.Payment.Status,
		&c.Payment.Amount,
		&c.Payment.TransactionID,
		&c.Payment.Method,
		&c.Payment.PaidAt,
		&c.Payment.Details,
		&c.TechPayment.Status,
		&c.TechPayment.Amount,
		&c.TechPayment.PaidAt,
		&c.TechPayment.PaidBy,
		&c.TechPayment.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if adminID != nil {
		c.AssignedTo = &domain.AdminAssignment{
			AdminID:    *adminID,
			AdminEmail: deref(adminEmail),
			AdminName:  deref(adminName),
		}
		if takenAt != nil {
			c.AssignedTo.TakenAt = *takenAt
		}
	}
	if techID != nil {
		c.Technician = &domain.TechnicianAssignment{
			TechnicianID:    *techID,
			TechnicianEmail: deref(techEmail),
			TechnicianName:  deref(techName),
			TechnicianPhone: deref(techPhone),
		}
		if assignedAt != nil {
			c.Technician.AssignedAt = *assignedAt
		}
	}
	return &c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
