package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/car-rental/internal/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Filter selects audit rows. Zero fields are ignored; To is inclusive of
// the whole day.
type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time

	Page  int
	Limit int
}

func (f *Filter) normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}
}

func (f Filter) offset() int {
	return (f.Page - 1) * f.Limit
}

type Page struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// Reader lists stored audit rows, newest first.
type Reader interface {
	List(ctx context.Context, f Filter) (Page, error)
}

func (l *Logger) List(ctx context.Context, f Filter) (Page, error) {
	f.normalize()

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page{}, errors.Wrap(err, "count audit logs")
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.offset()).
		Find(&logs).Error; err != nil {
		return Page{}, errors.Wrap(err, "list audit logs")
	}

	return Page{Page: f.Page, Limit: f.Limit, Total: total, Logs: logs}, nil
}

// Memory keeps audit rows in process; it backs STORAGE_BACKEND=memory.
type Memory struct {
	mu     sync.RWMutex
	rows   []models.AuditLog
	nextID uint
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Log(_ context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.rows = append(m.rows, models.AuditLog{
		ID:        m.nextID,
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *Memory) List(_ context.Context, f Filter) (Page, error) {
	f.normalize()

	m.mu.RLock()
	matched := make([]models.AuditLog, 0, len(m.rows))
	for _, row := range m.rows {
		if f.Action != "" && row.Action != f.Action {
			continue
		}
		if f.Entity != "" && row.Entity != f.Entity {
			continue
		}
		if f.From != nil && row.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !row.CreatedAt.Before(f.To.Add(24*time.Hour)) {
			continue
		}
		matched = append(matched, row)
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	page := Page{Page: f.Page, Limit: f.Limit, Total: int64(len(matched)), Logs: []models.AuditLog{}}
	if start := f.offset(); start < len(matched) {
		end := start + f.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Logs = matched[start:end]
	}
	return page, nil
}

var (
	_ Sink   = (*Logger)(nil)
	_ Reader = (*Logger)(nil)
	_ Sink   = (*Memory)(nil)
	_ Reader = (*Memory)(nil)
)
