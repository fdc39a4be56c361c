package database

import (
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
)

// Scope narrows a query, mirroring gorm's scope idiom.
type Scope func(*gorm.DB) *gorm.DB

// Where builds a predicate scope.
func Where(query interface{}, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// OrderBy builds an ordering scope.
func OrderBy(expr string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(expr)
	}
}

// softDeletable matches entity types embedding models.SoftDelete.
type softDeletable interface {
	SoftDeleted() bool
}

// Repository is the parametric data-access type, one instantiation per
// entity. For soft-deletable entities every default query excludes rows with
// the deleted flag set; the WithDeleted variants bypass the filter for
// admin/restore flows. Mutations issued through a unit-of-work repository
// run on its shared transaction and persist only on Save.
type Repository[T any] struct {
	db         *gorm.DB
	softDelete bool
	inTx       bool
}

// NewRepository creates a repository bound to db. Soft-delete filtering is
// detected from the entity type itself.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	var zero T
	_, soft := any(&zero).(softDeletable)
	return &Repository[T]{db: db, softDelete: soft}
}

// newTxRepository creates a repository over a shared transaction session.
func newTxRepository[T any](tx *gorm.DB) *Repository[T] {
	r := NewRepository[T](tx)
	r.inTx = true
	return r
}

func (r *Repository[T]) query(bypass bool, conds []Scope) *gorm.DB {
	q := r.db.Model(new(T))
	if r.softDelete && !bypass {
		q = q.Where("is_deleted = ?", false)
	}
	for _, scope := range conds {
		q = scope(q)
	}
	return q
}

// Find returns all non-deleted rows matching conds, eagerly loading the
// named associations.
func (r *Repository[T]) Find(conds []Scope, includes ...string) ([]T, error) {
	return r.find(false, conds, includes)
}

// FindWithDeleted is Find without the soft-delete exclusion.
func (r *Repository[T]) FindWithDeleted(conds []Scope, includes ...string) ([]T, error) {
	return r.find(true, conds, includes)
}

func (r *Repository[T]) find(bypass bool, conds []Scope, includes []string) ([]T, error) {
	var entities []T
	q := r.query(bypass, conds)
	for _, include := range includes {
		q = q.Preload(include)
	}
	if err := q.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindOne returns the first non-deleted row matching conds, or
// gorm.ErrRecordNotFound.
func (r *Repository[T]) FindOne(conds []Scope, includes ...string) (*T, error) {
	var entity T
	q := r.query(false, conds)
	for _, include := range includes {
		q = q.Preload(include)
	}
	if err := q.First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindByID fetches a single row by primary key, then loads the named
// associations concurrently.
func (r *Repository[T]) FindByID(id uint, includes ...string) (*T, error) {
	return r.findByID(false, id, includes)
}

// FindByIDWithDeleted is FindByID without the soft-delete exclusion.
func (r *Repository[T]) FindByIDWithDeleted(id uint, includes ...string) (*T, error) {
	return r.findByID(true, id, includes)
}

func (r *Repository[T]) findByID(bypass bool, id uint, includes []string) (*T, error) {
	var entity T
	if err := r.query(bypass, nil).First(&entity, id).Error; err != nil {
		return nil, err
	}
	if len(includes) > 0 {
		if err := r.loadAssociations(&entity, includes); err != nil {
			return nil, err
		}
	}
	return &entity, nil
}

// loadAssociations resolves the named navigation fields of entity. Each load
// targets a distinct field, so outside a transaction they run concurrently on
// separate sessions; inside a transaction the single connection forces
// sequential loads.
func (r *Repository[T]) loadAssociations(entity *T, includes []string) error {
	load := func(name string) error {
		field := reflect.ValueOf(entity).Elem().FieldByName(name)
		if !field.IsValid() {
			return fmt.Errorf("unknown association %q", name)
		}
		dest := field.Addr().Interface()
		session := r.db
		if !r.inTx {
			session = r.db.Session(&gorm.Session{NewDB: true})
		}
		return session.Model(entity).Association(name).Find(dest)
	}

	if r.inTx {
		for _, name := range includes {
			if err := load(name); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(includes))
	for _, name := range includes {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := load(name); err != nil {
				errCh <- err
			}
		}(name)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		return err
	}
	return nil
}

// FindPaged returns one 1-based page of non-deleted rows matching conds plus
// the total match count, counted before skip/take.
func (r *Repository[T]) FindPaged(conds []Scope, page, pageSize int, includes ...string) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.query(false, conds).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []T
	q := r.query(false, conds)
	for _, include := range includes {
		q = q.Preload(include)
	}
	offset := (page - 1) * pageSize
	if err := q.Offset(offset).Limit(pageSize).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// Count returns the number of non-deleted rows matching conds.
func (r *Repository[T]) Count(conds ...Scope) (int64, error) {
	var total int64
	err := r.query(false, conds).Count(&total).Error
	return total, err
}

// Exists reports whether any non-deleted row matches conds.
func (r *Repository[T]) Exists(conds ...Scope) (bool, error) {
	total, err := r.Count(conds...)
	return total > 0, err
}

// Insert stages a new row.
func (r *Repository[T]) Insert(entity *T) error {
	return r.db.Create(entity).Error
}

// InsertMany stages multiple new rows.
func (r *Repository[T]) InsertMany(entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	return r.db.Create(entities).Error
}

// Update stages a full-row update.
func (r *Repository[T]) Update(entity *T) error {
	return r.db.Save(entity).Error
}

// UpdateMany stages full-row updates for each entity.
func (r *Repository[T]) UpdateMany(entities []*T) error {
	for _, entity := range entities {
		if err := r.db.Save(entity).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateFieldsByID stages a partial update of the named columns, including
// soft-deleted rows so restore flows can clear the deleted fields.
func (r *Repository[T]) UpdateFieldsByID(id uint, fields map[string]interface{}) error {
	result := r.db.Model(new(T)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateFields stages a partial update of all rows matching conds, bypassing
// the soft-delete exclusion. Returns the number of rows touched.
func (r *Repository[T]) UpdateFields(conds []Scope, fields map[string]interface{}) (int64, error) {
	result := r.query(true, conds).Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteByID stages a hard delete by primary key; gorm.ErrRecordNotFound is
// returned when no row matches.
func (r *Repository[T]) DeleteByID(id uint) error {
	result := r.db.Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWhere stages a hard delete of all rows matching conds, bypassing the
// soft-delete exclusion.
func (r *Repository[T]) DeleteWhere(conds ...Scope) (int64, error) {
	q := r.db.Model(new(T))
	for _, scope := range conds {
		q = scope(q)
	}
	result := q.Delete(new(T))
	return result.RowsAffected, result.Error
}

// DeleteMany stages hard deletes for an explicit entity list.
func (r *Repository[T]) DeleteMany(entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return r.db.Delete(&entities).Error
}
