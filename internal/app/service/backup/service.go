package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
)

// dumpTable describes one table in the admin backup archive. Conflict
// columns drive the insert-or-update matching on restore; tables with a
// natural key override the id default.
type dumpTable struct {
	name     string
	conflict []clause.Column
}

var dumpTables = []dumpTable{
	{name: "app_user"},
	{name: "drive_log"},
	{name: "maintenance_item"},
	{name: "maintenance_record"},
	{name: "appointment"},
	{name: "config_entry", conflict: []clause.Column{{Name: "user_id"}, {Name: "key"}}},
	{name: "fixed_cost"},
	{name: "notification"},
	{name: "support_ticket"},
	{name: "ticket_message"},
	{name: "achievement"},
	{name: "user_achievement", conflict: []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}}},
	{name: "subscriber_snapshot"},
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// DumpAll writes every table as a CSV file into one zip archive.
func (s *Service) DumpAll(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, t := range dumpTables {
		f, err := zw.Create(t.name + ".csv")
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", t.name, err)
		}
		if err := s.dumpTable(ctx, t.name, f); err != nil {
			return nil, fmt.Errorf("dump %s: %w", t.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) dumpTable(ctx context.Context, table string, w io.Writer) error {
	rows, err := s.db.WithContext(ctx).Table(table).Order("id").Rows()
	if err != nil {
		// achievement and the composite-key tables have no id column
		rows, err = s.db.WithContext(ctx).Table(table).Rows()
		if err != nil {
			return err
		}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	raw := make([][]byte, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	record := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		for i, v := range raw {
			record[i] = string(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return rows.Err()
}

// RestoreReport is the per-table row count applied by RestoreAll.
type RestoreReport struct {
	Tables map[string]int `json:"tables"`
}

// RestoreAll replays a DumpAll archive. Rows are matched by primary key
// (or the table's natural key) and inserted or updated in one transaction.
// Tables absent from the archive are left untouched.
func (s *Service) RestoreAll(ctx context.Context, archive []byte) (*RestoreReport, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	files := map[string]*zip.File{}
	for _, f := range zr.File {
		files[f.Name] = f
	}

	report := &RestoreReport{Tables: map[string]int{}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// parent tables first so foreign rows land on existing users
		for _, t := range dumpTables {
			f, ok := files[t.name+".csv"]
			if !ok {
				continue
			}
			n, err := s.restoreTable(tx, t, f)
			if err != nil {
				return fmt.Errorf("restore %s: %w", t.name, err)
			}
			report.Tables[t.name] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) restoreTable(tx *gorm.DB, t dumpTable, f *zip.File) (int, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	header, err := cr.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	conflict := t.conflict
	if len(conflict) == 0 {
		conflict = []clause.Column{{Name: "id"}}
	}
	upsert := clause.OnConflict{Columns: conflict, UpdateAll: true}

	count := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i >= len(record) {
				break
			}
			// empty cells come back as NULL, not empty string, so date
			// and uuid columns restore cleanly
			if record[i] == "" {
				row[col] = nil
				continue
			}
			row[col] = record[i]
		}
		if err := tx.Table(t.name).Clauses(upsert).Create(row).Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// UserExport is one driver's personal records, credential hash excluded.
type UserExport struct {
	Profile            models.User                `json:"profile"`
	DriveLogs          []models.DriveLog          `json:"drive_logs"`
	MaintenanceItems   []models.MaintenanceItem   `json:"maintenance_items"`
	MaintenanceRecords []models.MaintenanceRecord `json:"maintenance_records"`
	Appointments       []models.Appointment       `json:"appointments"`
	Configs            []models.ConfigEntry       `json:"configs"`
	FixedCosts         []models.FixedCost         `json:"fixed_costs"`
}

// ExportUser collects everything a driver owns into one JSON-serializable
// document.
func (s *Service) ExportUser(ctx context.Context, userID string) (*UserExport, error) {
	out := &UserExport{}
	db := s.db.WithContext(ctx)
	if err := db.First(&out.Profile, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	out.Profile.PasswordHash = ""
	steps := []error{
		db.Where("user_id = ?", userID).Order("log_date").Find(&out.DriveLogs).Error,
		db.Where("user_id = ?", userID).Find(&out.MaintenanceItems).Error,
		db.Where("user_id = ?", userID).Order("service_date").Find(&out.MaintenanceRecords).Error,
		db.Where("user_id = ?", userID).Order("scheduled_at").Find(&out.Appointments).Error,
		db.Where("user_id = ?", userID).Find(&out.Configs).Error,
		db.Where("user_id = ?", userID).Find(&out.FixedCosts).Error,
	}
	for _, err := range steps {
		if err != nil {
			return nil, fmt.Errorf("export user data: %w", err)
		}
	}
	return out, nil
}

// ImportUser replaces the caller's own records with the ones in the export.
// Ownership is forced to the caller regardless of what the document claims,
// and the profile row itself is never touched.
func (s *Service) ImportUser(ctx context.Context, userID string, data *UserExport) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&models.DriveLog{},
			&models.MaintenanceRecord{},
			&models.MaintenanceItem{},
			&models.Appointment{},
			&models.ConfigEntry{},
			&models.FixedCost{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return fmt.Errorf("clear existing records: %w", err)
			}
		}
		for i := range data.DriveLogs {
			data.DriveLogs[i].UserID = userID
		}
		for i := range data.MaintenanceItems {
			data.MaintenanceItems[i].UserID = userID
		}
		for i := range data.MaintenanceRecords {
			data.MaintenanceRecords[i].UserID = userID
		}
		for i := range data.Appointments {
			data.Appointments[i].UserID = userID
		}
		for i := range data.Configs {
			data.Configs[i].UserID = userID
		}
		for i := range data.FixedCosts {
			data.FixedCosts[i].UserID = userID
		}
		inserts := []struct {
			name string
			rows any
			n    int
		}{
			{"drive logs", &data.DriveLogs, len(data.DriveLogs)},
			{"maintenance items", &data.MaintenanceItems, len(data.MaintenanceItems)},
			{"maintenance records", &data.MaintenanceRecords, len(data.MaintenanceRecords)},
			{"appointments", &data.Appointments, len(data.Appointments)},
			{"configs", &data.Configs, len(data.Configs)},
			{"fixed costs", &data.FixedCosts, len(data.FixedCosts)},
		}
		for _, ins := range inserts {
			if ins.n == 0 {
				continue
			}
			if err := tx.CreateInBatches(ins.rows, 200).Error; err != nil {
				return fmt.Errorf("import %s: %w", ins.name, err)
			}
		}
		return nil
	})
}
