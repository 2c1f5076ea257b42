package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/logger"
	"github.com/piwi3910/MillPool/internal/model"
)

const backlogVersion = "1"

// backlogFile is the on-disk layout of the backlog.
type backlogFile struct {
	Version string        `json:"version"`
	SavedAt string        `json:"saved_at"`
	Orders  []model.Order `json:"orders"`
}

// Backlog is the order store behind the milling station. All methods are
// safe for concurrent use. Accepting a pool recomputes and marks it under one
// lock, so two stations never accept overlapping pools.
type Backlog struct {
	mu     sync.Mutex
	path   string // Empty for an in-memory backlog
	orders []model.Order
}

// OpenBacklog loads the backlog stored at path. A missing file yields an
// empty backlog that is created on the first write.
func OpenBacklog(path string) (*Backlog, error) {
	b := &Backlog{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, &model.OpError{Op: "backlog.open", Kind: model.KindIO, Path: path, Err: err}
	}
	var file backlogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &model.OpError{Op: "backlog.open", Kind: model.KindInvalidData, Path: path, Err: err}
	}
	b.orders = file.Orders
	logger.L().Debug("backlog.opened", "path", path, "orders", len(b.orders))
	return b, nil
}

// NewMemoryBacklog returns a backlog that is never written to disk.
func NewMemoryBacklog(orders []model.Order) *Backlog {
	return &Backlog{orders: append([]model.Order(nil), orders...)}
}

// Path returns the backing file, or "" for an in-memory backlog.
func (b *Backlog) Path() string {
	return b.path
}

// Orders returns a snapshot of every order in insertion order.
func (b *Backlog) Orders() []model.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Order(nil), b.orders...)
}

// Get returns the order with the given ID.
func (b *Backlog) Get(id string) (model.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return model.Order{}, notFound("backlog.get", id)
	}
	return b.orders[i], nil
}

// Add appends orders to the backlog. Orders without an ID get one. Duplicate
// IDs are rejected and nothing is added.
func (b *Backlog) Add(orders ...model.Order) ([]model.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]bool, len(b.orders)+len(orders))
	for _, o := range b.orders {
		seen[o.ID] = true
	}

	added := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID == "" {
			o.ID = uuid.New().String()[:8]
		}
		if seen[o.ID] {
			return nil, &model.OpError{
				Op:   "backlog.add",
				Kind: model.KindInvalidData,
				Err:  fmt.Errorf("%w: duplicate id %q", model.ErrInvalidOrder, o.ID),
			}
		}
		seen[o.ID] = true
		added = append(added, o)
	}

	next := append(append([]model.Order(nil), b.orders...), added...)
	if err := b.commit(next); err != nil {
		return nil, err
	}
	logger.L().Info("backlog.added", "orders", len(added))
	return added, nil
}

// Delete removes the order with the given ID.
func (b *Backlog) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return notFound("backlog.delete", id)
	}
	next := make([]model.Order, 0, len(b.orders)-1)
	next = append(next, b.orders[:i]...)
	next = append(next, b.orders[i+1:]...)
	if err := b.commit(next); err != nil {
		return err
	}
	logger.L().Info("backlog.deleted", "id", id)
	return nil
}

// SetStage marks one production stage of an order as done or not done.
func (b *Backlog) SetStage(id string, stage model.Stage, done bool) (model.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return model.Order{}, notFound("backlog.set_stage", id)
	}
	next := append([]model.Order(nil), b.orders...)
	if !next[i].SetStage(stage, done) {
		return model.Order{}, &model.OpError{
			Op:   "backlog.set_stage",
			Kind: model.KindInvalidData,
			Err:  fmt.Errorf("unknown stage %q", stage),
		}
	}
	if err := b.commit(next); err != nil {
		return model.Order{}, err
	}
	logger.L().Info("backlog.stage_updated", "id", id, "stage", string(stage), "done", done)
	return next[i], nil
}

// CurrentPool computes the pool for today from the current backlog.
func (b *Backlog) CurrentPool(sel *engine.Selector, today time.Time) model.Pool {
	return sel.Select(b.Orders(), today)
}

// AcceptPool recomputes the pool and marks every order in it as milled,
// atomically with respect to other callers. It returns the accepted pool,
// which is empty when there was no work.
func (b *Backlog) AcceptPool(sel *engine.Selector, today time.Time) (model.Pool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pool := sel.Select(b.orders, today)
	if pool.Empty() {
		return pool, nil
	}

	next := append([]model.Order(nil), b.orders...)
	for i := range next {
		if pool.Contains(next[i].ID) {
			next[i].MillingDone = true
		}
	}
	if err := b.commit(next); err != nil {
		return model.Pool{}, err
	}
	logger.L().Info("pool.accepted",
		"orders", len(pool.Orders),
		"path", string(pool.Path),
		"strategy", pool.Strategy,
		"area", pool.TotalArea())
	return pool, nil
}

// MillingQueue returns the orders still waiting for milling, earliest deadline first.
func (b *Backlog) MillingQueue() []model.Order {
	return engine.Candidates(b.Orders())
}

// PolishingQueue returns milled, unshipped orders that need polishing.
// Veneer facades skip polishing.
func (b *Backlog) PolishingQueue() []model.Order {
	return b.queue(func(o model.Order) bool {
		return o.MillingDone && !o.Shipped && o.FacadeType != model.FacadeVeneer
	})
}

// MonitorQueue returns milled orders that have not shipped yet.
func (b *Backlog) MonitorQueue() []model.Order {
	return b.queue(func(o model.Order) bool {
		return o.MillingDone && !o.Shipped
	})
}

// Open returns every unshipped order, earliest deadline first.
func (b *Backlog) Open() []model.Order {
	return b.queue(func(o model.Order) bool { return !o.Shipped })
}

func (b *Backlog) queue(keep func(model.Order) bool) []model.Order {
	var out []model.Order
	for _, o := range b.Orders() {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Replace swaps the whole backlog, e.g. when restoring a backup.
func (b *Backlog) Replace(orders []model.Order) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commit(append([]model.Order(nil), orders...))
}

func (b *Backlog) indexOf(id string) int {
	for i, o := range b.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// commit persists next and installs it only when the write succeeded.
// Callers must hold b.mu.
func (b *Backlog) commit(next []model.Order) error {
	if b.path != "" {
		if err := writeBacklog(b.path, next); err != nil {
			return &model.OpError{Op: "backlog.save", Kind: model.KindIO, Path: b.path, Err: err}
		}
	}
	b.orders = next
	return nil
}

// writeBacklog writes orders through a temporary file and renames it into place.
func writeBacklog(path string, orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(backlogFile{
		Version: backlogVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Orders:  orders,
	}, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func notFound(op, id string) error {
	return &model.OpError{
		Op:   op,
		Kind: model.KindNotFound,
		Err:  fmt.Errorf("order %q: %w", id, model.ErrNotFound),
	}
}
