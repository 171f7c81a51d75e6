package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Language struct {
	Code       string
	Name       string
	ModifiedBy string
	UpdatedAt  int64
}

const upsertLanguage = `
INSERT INTO languages (code, name, modified_by, updated_at)
VALUES (?, '', ?, ?)
ON CONFLICT (code) DO UPDATE SET
    modified_by = excluded.modified_by,
    updated_at = excluded.updated_at
`

type UpsertLanguageParams struct {
	Code       string
	ModifiedBy string
	UpdatedAt  int64
}

func (q *Queries) UpsertLanguage(ctx context.Context, arg UpsertLanguageParams) error {
	_, err := q.db.ExecContext(ctx, upsertLanguage, arg.Code, arg.ModifiedBy, arg.UpdatedAt)
	return err
}

const setLanguageName = `
UPDATE languages SET name = ? WHERE code = ?
`

type SetLanguageNameParams struct {
	Name string
	Code string
}

func (q *Queries) SetLanguageName(ctx context.Context, arg SetLanguageNameParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setLanguageName, arg.Name, arg.Code)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getLanguage = `
SELECT code, name, modified_by, updated_at FROM languages WHERE code = ?
`

func (q *Queries) GetLanguage(ctx context.Context, code string) (Language, error) {
	row := q.db.QueryRowContext(ctx, getLanguage, code)
	var i Language
	err := row.Scan(&i.Code, &i.Name, &i.ModifiedBy, &i.UpdatedAt)
	return i, err
}

const listLanguages = `
SELECT code, name, modified_by, updated_at FROM languages ORDER BY code
`

func (q *Queries) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, listLanguages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Language
	for rows.Next() {
		var i Language
		if err := rows.Scan(&i.Code, &i.Name, &i.ModifiedBy, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countLanguages = `
SELECT COUNT(*) FROM languages
`

func (q *Queries) CountLanguages(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countLanguages)
	var count int64
	err := row.Scan(&count)
	return count, err
}
