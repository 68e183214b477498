package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CharacterRepository reads the personajes table. Its statements carry no
// placeholders, so it is the same for every driver.
type CharacterRepository struct{}

// NewCharacterRepository creates a CharacterRepository.
func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{}
}

// List returns every character with all of its columns.
func (r *CharacterRepository) List(ctx context.Context, q Queryer) ([]Record, error) {
	records, err := listRecords(ctx, q, `SELECT * FROM personajes`)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return records, nil
}

// ChapterRepository reads the capitulos table.
type ChapterRepository struct{}

// NewChapterRepository creates a ChapterRepository.
func NewChapterRepository() *ChapterRepository {
	return &ChapterRepository{}
}

// List returns every chapter with all of its columns.
func (r *ChapterRepository) List(ctx context.Context, q Queryer) ([]Record, error) {
	records, err := listRecords(ctx, q, `SELECT * FROM capitulos`)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return records, nil
}

// listRecords scans every row into a Record keyed by column name.
func listRecords(ctx context.Context, q Queryer, query string) ([]Record, error) {
	rows, err := q.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	records := []Record{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for _, ct := range columnTypes {
			row[ct.Name()] = normalizeValue(row[ct.Name()], ct.DatabaseTypeName())
		}
		records = append(records, Record(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

var (
	integerTypes = map[string]bool{
		"TINYINT": true, "SMALLINT": true, "MEDIUMINT": true, "INT": true,
		"INTEGER": true, "BIGINT": true, "INT2": true, "INT4": true, "INT8": true,
		"YEAR": true,
	}
	decimalTypes = map[string]bool{
		"DECIMAL": true, "NUMERIC": true, "FLOAT": true, "FLOAT4": true,
		"FLOAT8": true, "DOUBLE": true, "REAL": true,
	}
)

// normalizeValue turns driver byte slices into JSON friendly values.
//
// Text protocol drivers report every column as []byte, so numbers are
// parsed back using the column's declared type. Everything else becomes a
// string; values that already arrive typed are returned unchanged.
func normalizeValue(v any, databaseType string) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}

	s := string(b)
	t := strings.TrimPrefix(strings.ToUpper(databaseType), "UNSIGNED ")

	switch {
	case integerTypes[t]:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	case decimalTypes[t]:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
