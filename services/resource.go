package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cms-backend/models"

	"github.com/go-sql-driver/mysql"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormschema "gorm.io/gorm/schema"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrUnknownResource = errors.New("unknown resource")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrDuplicate       = errors.New("duplicate entry")
)

const maxPageSize = 200

// Schema describes how one table is exposed to the admin console and the
// public site.
type Schema struct {
	Name       string
	Ordered    bool
	Public     bool
	Searchable []string
	Order      string
}

// Descriptor is the JSON view of a registered resource.
type Descriptor struct {
	Name       string   `json:"name"`
	Table      string   `json:"table"`
	Columns    []string `json:"columns"`
	Ordered    bool     `json:"ordered"`
	Public     bool     `json:"public"`
	Searchable []string `json:"searchable"`
}

type ListQuery struct {
	Page       int
	PageSize   int
	Search     string
	ActiveOnly bool
	Filters    map[string]string
}

type Page struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// Resource is the table-agnostic CRUD surface every admin screen uses.
type Resource interface {
	Describe() Descriptor
	List(ctx context.Context, q ListQuery) (Page, error)
	Get(ctx context.Context, id string) (any, error)
	Create(ctx context.Context, body []byte) (any, error)
	Update(ctx context.Context, id string, patch map[string]any) (any, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

// protectedColumns are owned by the server and never written from a payload.
var protectedColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"deleted_at": true,
}

var jsonColumnType = reflect.TypeOf(datatypes.JSON{})

// Editor implements Resource for one model type.
type Editor[T any] struct {
	db      *gorm.DB
	schema  Schema
	table   string
	columns []string
	fields  map[string]*gormschema.Field
}

func NewEditor[T any](db *gorm.DB, s Schema) (*Editor[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", s.Name, err)
	}

	e := &Editor[T]{
		db:     db,
		schema: s,
		table:  stmt.Schema.Table,
		fields: make(map[string]*gormschema.Field),
	}
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		e.columns = append(e.columns, f.DBName)
		if !protectedColumns[f.DBName] {
			e.fields[f.DBName] = f
		}
	}
	for _, col := range s.Searchable {
		if _, ok := e.fields[col]; !ok {
			return nil, fmt.Errorf("%s: searchable column %q does not exist", s.Name, col)
		}
	}
	return e, nil
}

func (e *Editor[T]) Describe() Descriptor {
	return Descriptor{
		Name:       e.schema.Name,
		Table:      e.table,
		Columns:    append([]string(nil), e.columns...),
		Ordered:    e.schema.Ordered,
		Public:     e.schema.Public,
		Searchable: append([]string(nil), e.schema.Searchable...),
	}
}

func (e *Editor[T]) order() string {
	switch {
	case e.schema.Order != "":
		return e.schema.Order
	case e.schema.Ordered:
		return "sort_order ASC, created_at ASC"
	default:
		return "created_at DESC"
	}
}

func (e *Editor[T]) filter(q ListQuery) (func(*gorm.DB) *gorm.DB, error) {
	filters := make(map[string]any, len(q.Filters))
	for col, raw := range q.Filters {
		f, ok := e.fields[col]
		if !ok {
			return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidPayload, col)
		}
		val, err := coerce(f, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %q: %v", ErrInvalidPayload, col, err)
		}
		filters[col] = val
	}

	return func(tx *gorm.DB) *gorm.DB {
		if q.ActiveOnly && e.schema.Ordered {
			tx = tx.Where("is_active = ?", true)
		}
		for col, val := range filters {
			tx = tx.Where(clause.Eq{Column: clause.Column{Name: col}, Value: val})
		}
		if term := strings.TrimSpace(q.Search); term != "" && len(e.schema.Searchable) > 0 {
			like := "%" + strings.ToLower(term) + "%"
			conds := make([]string, 0, len(e.schema.Searchable))
			args := make([]any, 0, len(e.schema.Searchable))
			for _, col := range e.schema.Searchable {
				conds = append(conds, "LOWER("+col+") LIKE ?")
				args = append(args, like)
			}
			tx = tx.Where(strings.Join(conds, " OR "), args...)
		}
		return tx
	}, nil
}

// List returns rows in display order. PageSize <= 0 returns every matching row.
func (e *Editor[T]) List(ctx context.Context, q ListQuery) (Page, error) {
	scope, err := e.filter(q)
	if err != nil {
		return Page{}, err
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	var total int64
	if err := e.db.WithContext(ctx).Model(new(T)).Scopes(scope).Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("count %s: %w", e.table, err)
	}

	items := make([]T, 0)
	tx := e.db.WithContext(ctx).Scopes(scope).Order(e.order())
	if q.PageSize > 0 {
		tx = tx.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}
	if err := tx.Find(&items).Error; err != nil {
		return Page{}, fmt.Errorf("list %s: %w", e.table, err)
	}

	return Page{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

func (e *Editor[T]) Get(ctx context.Context, id string) (any, error) {
	item := new(T)
	if err := e.db.WithContext(ctx).First(item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", e.table, err)
	}
	return item, nil
}

// Create inserts the whole form object. Fields missing from body keep the
// model defaults.
func (e *Editor[T]) Create(ctx context.Context, body []byte) (any, error) {
	item := new(T)
	if d, ok := any(item).(interface{ ApplyDefaults() }); ok {
		d.ApplyDefaults()
	}
	if err := json.Unmarshal(body, item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if r, ok := any(item).(interface{ ResetIdentity() }); ok {
		r.ResetIdentity()
	}

	if err := e.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, translateWriteError(fmt.Sprintf("create %s", e.table), err)
	}
	return item, nil
}

// Update applies the writable columns of patch; unknown and server-owned keys
// are ignored.
func (e *Editor[T]) Update(ctx context.Context, id string, patch map[string]any) (any, error) {
	updates := make(map[string]any, len(patch))
	for key, raw := range patch {
		f, ok := e.fields[key]
		if !ok {
			continue
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, key, err)
		}
		updates[key] = v
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no writable fields", ErrInvalidPayload)
	}

	res := e.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, translateWriteError(fmt.Sprintf("update %s", e.table), res.Error)
	}
	return e.Get(ctx, id)
}

// Delete removes exactly the row with the given id.
func (e *Editor[T]) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	res := e.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", e.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (e *Editor[T]) Clear(ctx context.Context) (int64, error) {
	return ClearTable(e.db.WithContext(ctx), new(T))
}

// ClearTable deletes every row of model's table.
func ClearTable(db *gorm.DB, model any) (int64, error) {
	res := db.Where("id <> ?", models.ZeroID).Delete(model)
	if res.Error != nil {
		return 0, fmt.Errorf("clear table: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func coerce(f *gormschema.Field, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if f.FieldType == jsonColumnType {
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		return datatypes.JSON(b), nil
	}

	switch f.DataType {
	case gormschema.Bool:
		return cast.ToBoolE(raw)
	case gormschema.Int, gormschema.Uint:
		return cast.ToInt64E(raw)
	case gormschema.Float:
		return cast.ToFloat64E(raw)
	case gormschema.String:
		return cast.ToStringE(raw)
	case gormschema.Time:
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return cast.ToTimeE(raw)
	default:
		return raw, nil
	}
}

func translateWriteError(op string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &mysqlErr) && mysqlErr.Number == 1062) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
