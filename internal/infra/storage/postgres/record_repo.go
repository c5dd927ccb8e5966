package postgres

import (
	"context"
	"fmt"

	"github.com/vietddude/enricher/internal/core/domain"
)

// RecordRepo implements storage.RecordRepository using PostgreSQL. It
// mirrors the output spreadsheet: ReplaceAll performs the same full
// rewrite the flush does on the artifact.
type RecordRepo struct {
	db *DB
}

// NewRecordRepo creates a new PostgreSQL record repository.
func NewRecordRepo(db *DB) *RecordRepo {
	return &RecordRepo{db: db}
}

type recordRow struct {
	ProductCode  string `db:"product_code"`
	Name         string `db:"name"`
	CAS          string `db:"cas"`
	Synonyms     string `db:"synonyms"`
	Formula      string `db:"formula"`
	Weight       string `db:"weight"`
	Appearance   string `db:"appearance"`
	Storage      string `db:"storage"`
	Shipping     string `db:"shipping"`
	Applications string `db:"applications"`
	Category     string `db:"category"`
}

// ReplaceAll overwrites the stored rows inside one transaction.
func (r *RecordRepo) ReplaceAll(ctx context.Context, records []domain.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	if len(records) > 0 {
		rows := make([]recordRow, len(records))
		for i, rec := range records {
			rows[i] = recordRow{
				ProductCode:  rec.ProductCode,
				Name:         rec.Name,
				CAS:          rec.CAS,
				Synonyms:     rec.Synonyms,
				Formula:      rec.Formula,
				Weight:       rec.Weight,
				Appearance:   rec.Appearance,
				Storage:      rec.Storage,
				Shipping:     rec.Shipping,
				Applications: rec.Applications,
				Category:     rec.Category,
			}
		}
		_, err = tx.NamedExecContext(ctx,
			`INSERT INTO records
			 (product_code, name, cas, synonyms, formula, weight, appearance, storage, shipping, applications, category)
			 VALUES
			 (:product_code, :name, :cas, :synonyms, :formula, :weight, :appearance, :storage, :shipping, :applications, :category)`,
			rows)
		if err != nil {
			return fmt.Errorf("failed to insert records: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// GetAll retrieves all rows in product-code order.
func (r *RecordRepo) GetAll(ctx context.Context) ([]domain.Record, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT product_code, name, cas, synonyms, formula, weight, appearance, storage, shipping, applications, category
		 FROM records ORDER BY product_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = domain.Record{
			ProductCode:  row.ProductCode,
			Name:         row.Name,
			CAS:          row.CAS,
			Synonyms:     row.Synonyms,
			Formula:      row.Formula,
			Weight:       row.Weight,
			Appearance:   row.Appearance,
			Storage:      row.Storage,
			Shipping:     row.Shipping,
			Applications: row.Applications,
			Category:     row.Category,
		}
	}
	return records, nil
}
