package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"flexvry/internal/config"
	"flexvry/internal/domain"
	"flexvry/internal/domain/models"
	"flexvry/internal/utils"
)

// ReservationRepository wraps DB access for reservations with key-presence
// PATCH semantics.
type ReservationRepository struct {
	DB *sqlx.DB
}

func (r ReservationRepository) db() *sqlx.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// selectCols keeps `date` as its stored YYYY-MM-DD form; parseTime=true would
// otherwise surface DATE columns as midnight timestamps.
const selectCols = "id, COALESCE(name,'') AS name, COALESCE(last_name,'') AS last_name, " +
	"COALESCE(email,'') AS email, COALESCE(driver_license,'') AS driver_license, " +
	"COALESCE(phone,'') AS phone, COALESCE(trailer_number,'') AS trailer_number, " +
	"COALESCE(truck_number,'') AS truck_number, COALESCE(`references`,'') AS `references`, " +
	"DATE_FORMAT(`date`,'%Y-%m-%d') AS `date`, COALESCE(`time`,'') AS `time`, " +
	"COALESCE(status,'pending') AS status, created_at, updated_at"

type reservationRow struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	LastName      string    `db:"last_name"`
	Email         string    `db:"email"`
	DriverLicense string    `db:"driver_license"`
	Phone         string    `db:"phone"`
	TrailerNumber string    `db:"trailer_number"`
	TruckNumber   string    `db:"truck_number"`
	References    string    `db:"references"`
	Date          string    `db:"date"`
	Time          string    `db:"time"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row reservationRow) toModel() models.Reservation {
	return models.Reservation{
		ID:            row.ID,
		Name:          row.Name,
		LastName:      row.LastName,
		Email:         row.Email,
		DriverLicense: row.DriverLicense,
		Phone:         row.Phone,
		TrailerNumber: row.TrailerNumber,
		TruckNumber:   row.TruckNumber,
		References:    utils.SplitReferences(row.References),
		Date:          row.Date,
		Time:          row.Time,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// Create inserts a validated reservation, assigning id, default status and
// server timestamps. Client-supplied values for those fields are ignored.
func (r ReservationRepository) Create(res models.Reservation) (models.Reservation, error) {
	now := time.Now()
	res.ID = uuid.NewString()
	res.Status = models.StatusPending
	res.References = models.CleanReferences(res.References)
	res.CreatedAt = now
	res.UpdatedAt = now

	_, err := r.db().Exec(`
		INSERT INTO reservations
			(id, name, last_name, email, driver_license, phone,
			 trailer_number, truck_number, `+"`references`"+`, `+"`date`"+`, `+"`time`"+`,
			 status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		strings.TrimSpace(res.Name),
		strings.TrimSpace(res.LastName),
		strings.TrimSpace(res.Email),
		strings.TrimSpace(res.DriverLicense),
		strings.TrimSpace(res.Phone),
		strings.TrimSpace(res.TrailerNumber),
		strings.TrimSpace(res.TruckNumber),
		utils.JoinReferences(res.References),
		res.Date,
		strings.TrimSpace(res.Time),
		res.Status,
		now,
		now,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	return res, nil
}

// GetByID loads one reservation; sql.ErrNoRows when absent.
func (r ReservationRepository) GetByID(id string) (models.Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return models.Reservation{}, sql.ErrNoRows
	}
	var row reservationRow
	err := r.db().Get(&row, `SELECT `+selectCols+` FROM reservations WHERE id=? LIMIT 1`, id)
	if err != nil {
		return models.Reservation{}, err
	}
	return row.toModel(), nil
}

// ListParams carries the already-coerced listing filters.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Date   string
}

// List returns one page of reservations plus the pre-pagination total.
// Search predicates OR together; the date filter narrows the result as a
// separate AND condition.
func (r ReservationRepository) List(p ListParams) ([]models.Reservation, int, error) {
	where := []string{}
	args := []any{}

	if s := strings.TrimSpace(p.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(trailer_number) LIKE ?"+
			" OR LOWER(truck_number) LIKE ? OR LOWER(`references`) LIKE ?)")
		args = append(args, like, like, like, like, like)
	}
	if d := strings.TrimSpace(p.Date); d != "" {
		where = append(where, "`date` = ?")
		args = append(args, d)
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db().Get(&total, `SELECT COUNT(*) FROM reservations`+cond, args...); err != nil {
		return nil, 0, err
	}

	offset := (p.Page - 1) * p.Limit
	rows := []reservationRow{}
	err := r.db().Select(&rows,
		`SELECT `+selectCols+` FROM reservations`+cond+` ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		append(args, p.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, total, nil
}

// ListByEmail returns every reservation for one email, newest first.
func (r ReservationRepository) ListByEmail(email string) ([]models.Reservation, error) {
	rows := []reservationRow{}
	err := r.db().Select(&rows,
		`SELECT `+selectCols+` FROM reservations WHERE email=? ORDER BY created_at DESC`,
		strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// UpdateStatus writes the new status unconditionally and refreshes updated_at.
func (r ReservationRepository) UpdateStatus(id, status string) error {
	res, err := r.db().Exec(
		`UPDATE reservations SET status=?, updated_at=? WHERE id=?`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the row; sql.ErrNoRows when nothing was deleted.
func (r ReservationRepository) Delete(id string) error {
	res, err := r.db().Exec(`DELETE FROM reservations WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePartial applies only fields present in the raw JSON payload (key
// presence), validates what was supplied and returns the merged record.
func (r ReservationRepository) UpdatePartial(id string, rawJSON []byte) (models.Reservation, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return models.Reservation{}, err
	}

	merged, presence, err := buildReservationPatch(existing, rawJSON)
	if err != nil {
		return models.Reservation{}, domain.ValidationError{Msg: "payload tidak valid", Err: err}
	}
	if err := validatePatch(merged, presence); err != nil {
		return models.Reservation{}, err
	}

	sets := []string{}
	args := []any{}
	add := func(cond bool, column string, val any) {
		if cond {
			sets = append(sets, column+"=?")
			args = append(args, val)
		}
	}

	add(presence.Name, "name", strings.TrimSpace(merged.Name))
	add(presence.LastName, "last_name", strings.TrimSpace(merged.LastName))
	add(presence.Email, "email", strings.TrimSpace(merged.Email))
	add(presence.DriverLicense, "driver_license", strings.TrimSpace(merged.DriverLicense))
	add(presence.Phone, "phone", strings.TrimSpace(merged.Phone))
	add(presence.TrailerNumber, "trailer_number", strings.TrimSpace(merged.TrailerNumber))
	add(presence.TruckNumber, "truck_number", strings.TrimSpace(merged.TruckNumber))
	add(presence.References, "`references`", utils.JoinReferences(merged.References))
	add(presence.Date, "`date`", merged.Date)
	add(presence.Time, "`time`", strings.TrimSpace(merged.Time))

	if len(sets) == 0 {
		return existing, nil
	}

	sets = append(sets, "updated_at=?")
	args = append(args, time.Now(), id)
	if _, err := r.db().Exec(`UPDATE reservations SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...); err != nil {
		return models.Reservation{}, err
	}

	return r.GetByID(id)
}

type reservationFieldPresence struct {
	Name          bool
	LastName      bool
	Email         bool
	DriverLicense bool
	Phone         bool
	TrailerNumber bool
	TruckNumber   bool
	References    bool
	Date          bool
	Time          bool
}

// buildReservationPatch merges the payload into the existing record while
// respecting key presence. Status and timestamps are never patched here;
// status moves only through the status workflow.
func buildReservationPatch(existing models.Reservation, rawJSON []byte) (models.Reservation, reservationFieldPresence, error) {
	payloadKeys := map[string]bool{}
	var payloadMap map[string]any
	if err := json.Unmarshal(rawJSON, &payloadMap); err != nil {
		return existing, reservationFieldPresence{}, err
	}
	for k := range payloadMap {
		payloadKeys[strings.ToLower(k)] = true
	}
	hasField := func(names ...string) bool {
		for _, n := range names {
			if payloadKeys[strings.ToLower(n)] {
				return true
			}
		}
		return false
	}

	var input models.Reservation
	if err := json.Unmarshal(rawJSON, &input); err != nil {
		return existing, reservationFieldPresence{}, err
	}

	// key names mirror the JSON tags; the decoder matches them
	// case-insensitively, so presence has to as well
	presence := reservationFieldPresence{
		Name:          hasField("name"),
		LastName:      hasField("lastname"),
		Email:         hasField("email"),
		DriverLicense: hasField("driverlicense"),
		Phone:         hasField("phone"),
		TrailerNumber: hasField("trailernumber"),
		TruckNumber:   hasField("trucknumber"),
		References:    hasField("references"),
		Date:          hasField("date"),
		Time:          hasField("time"),
	}

	merged := existing
	if presence.Name && strings.TrimSpace(input.Name) != "" {
		merged.Name = input.Name
	}
	if presence.LastName && strings.TrimSpace(input.LastName) != "" {
		merged.LastName = input.LastName
	}
	if presence.Email && strings.TrimSpace(input.Email) != "" {
		merged.Email = input.Email
	}
	if presence.DriverLicense && strings.TrimSpace(input.DriverLicense) != "" {
		merged.DriverLicense = input.DriverLicense
	}
	if presence.Phone && strings.TrimSpace(input.Phone) != "" {
		merged.Phone = input.Phone
	}
	if presence.TrailerNumber && strings.TrimSpace(input.TrailerNumber) != "" {
		merged.TrailerNumber = input.TrailerNumber
	}
	if presence.TruckNumber && strings.TrimSpace(input.TruckNumber) != "" {
		merged.TruckNumber = input.TruckNumber
	}
	if presence.References {
		refs := models.CleanReferences(input.References)
		if len(refs) > 0 {
			merged.References = refs
		} else {
			// jangan mengosongkan references jika payload kosong
			presence.References = false
		}
	}
	if presence.Date && strings.TrimSpace(input.Date) != "" {
		merged.Date = strings.TrimSpace(input.Date)
	}
	if presence.Time && strings.TrimSpace(input.Time) != "" {
		merged.Time = input.Time
	}

	return merged, presence, nil
}

// validatePatch re-checks only the fields the payload supplied.
func validatePatch(merged models.Reservation, presence reservationFieldPresence) error {
	if presence.Email && !models.IsValidEmail(merged.Email) {
		return domain.ValidationError{Field: "email", Msg: "format email tidak valid"}
	}
	if presence.Phone && !models.IsValidPhone(merged.Phone) {
		return domain.ValidationError{Field: "phone", Msg: "format nomor telepon tidak valid"}
	}
	if presence.Date {
		if _, err := utils.ParseDate(merged.Date); err != nil {
			return domain.ValidationError{Field: "date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
		}
	}
	return nil
}
