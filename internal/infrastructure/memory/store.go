// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa en modo demo (STORAGE_DRIVER=memory) y en los tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository    = (*Store)(nil)
	_ repository.SupplierRepository   = (*SupplierStore)(nil)
	_ repository.SuggestionRepository = (*Store)(nil)
	_ enrichment.TxRunner             = (*Store)(nil)
)

type state struct {
	products  map[int64]entity.Product
	suppliers map[int64]entity.Supplier
	prices    []entity.PriceSuggestion
	logistics []entity.LogisticsEstimate
	nextID    int64
}

func (s state) clone() state {
	c := state{
		products:  make(map[int64]entity.Product, len(s.products)),
		suppliers: make(map[int64]entity.Supplier, len(s.suppliers)),
		prices:    append([]entity.PriceSuggestion(nil), s.prices...),
		logistics: append([]entity.LogisticsEstimate(nil), s.logistics...),
		nextID:    s.nextID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	return c
}

// db estado compartido entre el almacén y las vistas de transacción.
type db struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   state
}

// Store almacén en memoria seguro para uso concurrente. Las entidades se copian al entrar y salir.
// Las escrituras fuera de transacción esperan a que termine la transacción en curso,
// así un rollback nunca pisa lo escrito por otro llamador.
type Store struct {
	db   *db
	inTx bool
	now  func() time.Time

	// FailOn, si no es nil, se consulta antes de cada escritura; un error aborta la operación.
	FailOn func(op string, productID int64) error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		db: &db{st: state{
			products:  map[int64]entity.Product{},
			suppliers: map[int64]entity.Supplier{},
		}},
		now: time.Now,
	}
}

// lock toma el candado de escritura y devuelve su liberación.
func (s *Store) lock() func() {
	if !s.inTx {
		s.db.txMu.Lock()
	}
	s.db.mu.Lock()
	return func() {
		s.db.mu.Unlock()
		if !s.inTx {
			s.db.txMu.Unlock()
		}
	}
}

func (s *Store) id() int64 {
	s.db.st.nextID++
	return s.db.st.nextID
}

func (s *Store) fail(op string, productID int64) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn(op, productID)
}

// ── Semilla ──────────────────────────────────────────────────────────────────

// AddSupplier inserta un proveedor y completa su ID.
func (s *Store) AddSupplier(sp *entity.Supplier) {
	defer s.lock()()
	sp.ID = s.id()
	s.db.st.suppliers[sp.ID] = *sp
}

// AddProduct inserta un producto y completa ID, unidad y CreatedAt.
func (s *Store) AddProduct(p *entity.Product) {
	defer s.lock()()
	p.ID = s.id()
	p.Unit = p.UnitOrDefault()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.db.st.products[p.ID] = *p
}

// Suppliers vista de proveedores del almacén.
func (s *Store) Suppliers() *SupplierStore {
	return &SupplierStore{s: s}
}

// Stores repositorios del almacén agrupados como los espera el orquestador.
func (s *Store) Stores() enrichment.Stores {
	return enrichment.Stores{Products: s, Suppliers: s.Suppliers(), Suggestions: s}
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// Run ejecuta fn de forma exclusiva respecto a otras transacciones y a las escrituras sueltas.
// fn recibe una vista ligada a la transacción; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(enrichment.Stores) error) error {
	s.db.txMu.Lock()
	defer s.db.txMu.Unlock()

	s.db.mu.RLock()
	snapshot := s.db.st.clone()
	s.db.mu.RUnlock()

	tx := &Store{db: s.db, inTx: true, now: s.now, FailOn: s.FailOn}
	err := fn(tx.Stores())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.db.mu.Lock()
		s.db.st = snapshot
		s.db.mu.Unlock()
		return err
	}
	return nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

// GetByID devuelve (nil, nil) si no existe.
func (s *Store) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	p, ok := s.db.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) filterProducts(keep func(entity.Product) bool, newestFirst bool) []*entity.Product {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var list []*entity.Product
	for _, p := range s.db.st.products {
		if keep(p) {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if newestFirst && !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// ListAll todos los productos ordenados por id.
func (s *Store) ListAll(_ context.Context) ([]*entity.Product, error) {
	return s.filterProducts(func(entity.Product) bool { return true }, false), nil
}

// ListActive productos activos, más recientes primero.
func (s *Store) ListActive(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	list := s.filterProducts(func(p entity.Product) bool { return p.IsActive }, true)
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// ListBySupplier productos de un proveedor, más recientes primero.
func (s *Store) ListBySupplier(_ context.Context, supplierID int64) ([]*entity.Product, error) {
	return s.filterProducts(func(p entity.Product) bool { return p.SupplierID == supplierID }, true), nil
}

// UpdateDescriptions escribe ambas descripciones a la vez.
func (s *Store) UpdateDescriptions(_ context.Context, id int64, en, zh string) error {
	if err := s.fail("update_descriptions", id); err != nil {
		return err
	}
	defer s.lock()()
	p, ok := s.db.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.DescriptionEN, p.DescriptionZH = en, zh
	s.db.st.products[id] = p
	return nil
}

// SetActive publica o retira un producto.
func (s *Store) SetActive(_ context.Context, id int64, active bool) error {
	defer s.lock()()
	p, ok := s.db.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = active
	s.db.st.products[id] = p
	return nil
}

// ── SuggestionRepository ─────────────────────────────────────────────────────

// RecordPriceSuggestion agrega una sugerencia y completa ID y CreatedAt.
func (s *Store) RecordPriceSuggestion(_ context.Context, ps *entity.PriceSuggestion) error {
	if err := s.fail("record_price", ps.ProductID); err != nil {
		return err
	}
	defer s.lock()()
	if _, ok := s.db.st.products[ps.ProductID]; !ok {
		return domain.ErrNotFound
	}
	ps.ID = s.id()
	ps.CreatedAt = s.now()
	s.db.st.prices = append(s.db.st.prices, *ps)
	return nil
}

// RecordLogisticsEstimate agrega una estimación y completa ID y CreatedAt.
func (s *Store) RecordLogisticsEstimate(_ context.Context, e *entity.LogisticsEstimate) error {
	if err := s.fail("record_logistics", e.ProductID); err != nil {
		return err
	}
	defer s.lock()()
	if _, ok := s.db.st.products[e.ProductID]; !ok {
		return domain.ErrNotFound
	}
	e.ID = s.id()
	e.CreatedAt = s.now()
	s.db.st.logistics = append(s.db.st.logistics, *e)
	return nil
}

// ClearSuggestions borra ambos historiales del producto.
func (s *Store) ClearSuggestions(_ context.Context, productID int64) (int64, error) {
	if err := s.fail("clear", productID); err != nil {
		return 0, err
	}
	defer s.lock()()
	var removed int64
	prices := s.db.st.prices[:0:0]
	for _, p := range s.db.st.prices {
		if p.ProductID == productID {
			removed++
			continue
		}
		prices = append(prices, p)
	}
	logistics := s.db.st.logistics[:0:0]
	for _, l := range s.db.st.logistics {
		if l.ProductID == productID {
			removed++
			continue
		}
		logistics = append(logistics, l)
	}
	s.db.st.prices, s.db.st.logistics = prices, logistics
	return removed, nil
}

// ListPriceSuggestions más recientes primero (orden de inserción inverso).
func (s *Store) ListPriceSuggestions(_ context.Context, productID int64, limit int) ([]*entity.PriceSuggestion, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var list []*entity.PriceSuggestion
	for i := len(s.db.st.prices) - 1; i >= 0 && (limit <= 0 || len(list) < limit); i-- {
		if p := s.db.st.prices[i]; p.ProductID == productID {
			list = append(list, &p)
		}
	}
	return list, nil
}

// ListLogisticsEstimates más recientes primero.
func (s *Store) ListLogisticsEstimates(_ context.Context, productID int64, limit int) ([]*entity.LogisticsEstimate, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var list []*entity.LogisticsEstimate
	for i := len(s.db.st.logistics) - 1; i >= 0 && (limit <= 0 || len(list) < limit); i-- {
		if l := s.db.st.logistics[i]; l.ProductID == productID {
			list = append(list, &l)
		}
	}
	return list, nil
}

// LatestLogisticsEstimate la más reciente o (nil, nil).
func (s *Store) LatestLogisticsEstimate(ctx context.Context, productID int64) (*entity.LogisticsEstimate, error) {
	list, _ := s.ListLogisticsEstimates(ctx, productID, 1)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ── SupplierRepository ───────────────────────────────────────────────────────

// SupplierStore adapta Store al puerto SupplierRepository (GetByID choca con el de productos).
type SupplierStore struct {
	s *Store
}

// GetByID devuelve (nil, nil) si no existe.
func (ss *SupplierStore) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	ss.s.db.mu.RLock()
	defer ss.s.db.mu.RUnlock()
	sp, ok := ss.s.db.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}
