package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"escapelog-backend/lib/timezone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("escapelog.services.catalog")

var ErrRoomNotFound = errors.New("room not found")

type Vendor struct {
	ID     int64
	Name   string
	Region string
}

type NewVendor struct {
	Name   string
	Region string
}

type Room struct {
	ID         int64
	VendorID   int64
	ThemeName  string
	PosterPath string
}

type NewRoom struct {
	VendorID  int64
	ThemeName string
}

// Store owns all SQL against the vendor/room catalog. every merge
// operation is conflict-ignoring on the natural key so concurrent
// crawl runs against the same database cannot create duplicates.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func (s Store) SelectVendorsByNames(ctx context.Context, names []string) ([]Vendor, error) {
	ctx, span := tracer.Start(ctx, "SelectVendorsByNames")
	defer span.End()

	if len(names) == 0 {
		return nil, nil
	}

	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	rows, err := s.db.QueryContext(
		ctx,
		fmt.Sprintf(
			"SELECT id, name, region FROM vendors WHERE name IN (%s)",
			placeholders(len(names)),
		),
		args...,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		var v Vendor
		err = rows.Scan(&v.ID, &v.Name, &v.Region)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// inserts the given vendors, silently keeping existing rows on a
// (name, region) collision, and returns only the rows it actually
// created.
func (s Store) CreateVendors(ctx context.Context, vendors []NewVendor) ([]Vendor, error) {
	ctx, span := tracer.Start(ctx, "CreateVendors")
	defer span.End()

	if len(vendors) == 0 {
		return nil, nil
	}

	now := timezone.Now().Unix()
	values := make([]string, len(vendors))
	args := make([]any, 0, len(vendors)*3)
	for i, v := range vendors {
		values[i] = "(?, ?, ?)"
		args = append(args, v.Name, v.Region, now)
	}

	rows, err := s.db.QueryContext(
		ctx,
		fmt.Sprintf(
			`INSERT INTO vendors (name, region, created_at)
			 VALUES %s
			 ON CONFLICT (name, region) DO NOTHING
			 RETURNING id, name, region`,
			strings.Join(values, ", "),
		),
		args...,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var created []Vendor
	for rows.Next() {
		var v Vendor
		err = rows.Scan(&v.ID, &v.Name, &v.Region)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		created = append(created, v)
	}
	return created, rows.Err()
}

// conflict-ignoring bulk upsert on (vendor_id, theme_name). returns the
// count of rows that were newly inserted; rows that already existed are
// left untouched and not counted.
func (s Store) UpsertRooms(ctx context.Context, rooms []NewRoom) (int, error) {
	ctx, span := tracer.Start(ctx, "UpsertRooms")
	defer span.End()

	if len(rooms) == 0 {
		return 0, nil
	}

	now := timezone.Now().Unix()
	values := make([]string, len(rooms))
	args := make([]any, 0, len(rooms)*3)
	for i, r := range rooms {
		values[i] = "(?, ?, ?)"
		args = append(args, r.VendorID, r.ThemeName, now)
	}

	rows, err := s.db.QueryContext(
		ctx,
		fmt.Sprintf(
			`INSERT INTO rooms (vendor_id, theme_name, created_at)
			 VALUES %s
			 ON CONFLICT (vendor_id, theme_name) DO NOTHING
			 RETURNING id`,
			strings.Join(values, ", "),
		),
		args...,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	defer rows.Close()

	inserted := 0
	for rows.Next() {
		var id int64
		err = rows.Scan(&id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return inserted, err
		}
		inserted++
	}
	return inserted, rows.Err()
}

func (s Store) GetRoomByTheme(ctx context.Context, vendorID int64, themeName string) (Room, error) {
	ctx, span := tracer.Start(ctx, "GetRoomByTheme")
	defer span.End()

	var room Room
	var posterPath sql.NullString
	err := s.db.QueryRowContext(
		ctx,
		"SELECT id, vendor_id, theme_name, poster_path FROM rooms WHERE vendor_id = ? AND theme_name = ?",
		vendorID, themeName,
	).Scan(&room.ID, &room.VendorID, &room.ThemeName, &posterPath)
	if errors.Is(err, sql.ErrNoRows) {
		return Room{}, ErrRoomNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Room{}, err
	}
	room.PosterPath = posterPath.String
	return room, nil
}

// sets the poster path of a room that does not have one yet. reports
// whether the row was updated; a room that already carries a poster is
// left untouched (first write wins).
func (s Store) SetRoomPoster(ctx context.Context, roomID int64, path string) (bool, error) {
	ctx, span := tracer.Start(ctx, "SetRoomPoster")
	defer span.End()

	res, err := s.db.ExecContext(
		ctx,
		"UPDATE rooms SET poster_path = ? WHERE id = ? AND poster_path IS NULL",
		path, roomID,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return n > 0, nil
}

// administrative deletion; rooms cascade via the schema's foreign key.
func (s Store) DeleteVendor(ctx context.Context, vendorID int64) error {
	ctx, span := tracer.Start(ctx, "DeleteVendor")
	defer span.End()

	_, err := s.db.ExecContext(ctx, "DELETE FROM vendors WHERE id = ?", vendorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s Store) ListRegions(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "ListRegions")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT region FROM vendors ORDER BY region")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var regions []string
	for rows.Next() {
		var r string
		err = rows.Scan(&r)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, rows.Err()
}
