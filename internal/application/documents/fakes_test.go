package documents_test

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hbenali/boutique-api/internal/domain"
	"github.com/hbenali/boutique-api/internal/domain/entity"
	"github.com/hbenali/boutique-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doublures en mémoire des ports de persistance. memStore simule la base :
// le fakeTxRunner prend un instantané avant fn et le restaure en cas d'erreur,
// ce qui reproduit le rollback et permet de tester l'atomicité sans PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

var errInjected = errors.New("panne injectée")

type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	docs     map[string]*entity.SalesDocument
	lines    map[string][]*entity.DocumentLine
	clients  map[string]*entity.Client

	// failOn fait échouer la méthode nommée (simulateur de panne BD).
	failOn string
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		docs:     map[string]*entity.SalesDocument{},
		lines:    map[string][]*entity.DocumentLine{},
		clients:  map[string]*entity.Client{},
	}
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := newMemStore()
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.docs {
		d := *v
		cp.docs[k] = &d
	}
	for k, v := range s.lines {
		ls := make([]*entity.DocumentLine, len(v))
		for i, l := range v {
			c := *l
			ls[i] = &c
		}
		cp.lines[k] = ls
	}
	for k, v := range s.clients {
		c := *v
		cp.clients[k] = &c
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = from.products
	s.docs = from.docs
	s.lines = from.lines
	s.clients = from.clients
}

func (s *memStore) fails(method string) bool {
	return s.failOn == method
}

func (s *memStore) stockOf(productID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[productID]; ok {
		return p.StockQuantity
	}
	return 0
}

// ─── DocumentRepository ───────────────────────────────────────────────────────

type memDocRepo struct{ s *memStore }

var _ repository.DocumentRepository = (*memDocRepo)(nil)

func (r *memDocRepo) Create(doc *entity.SalesDocument) error {
	if r.s.fails("Create") {
		return errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := *doc
	r.s.docs[doc.ID] = &d
	return nil
}

func (r *memDocRepo) GetByID(id string) (*entity.SalesDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDocRepo) Update(doc *entity.SalesDocument) error {
	if r.s.fails("Update") {
		return errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.docs[doc.ID]; !ok {
		return domain.ErrNotFound
	}
	d := *doc
	r.s.docs[doc.ID] = &d
	return nil
}

func (r *memDocRepo) UpdateTotals(id string, subtotal, total decimal.Decimal) error {
	if r.s.fails("UpdateTotals") {
		return errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Subtotal = subtotal
	d.Total = total
	return nil
}

func (r *memDocRepo) List(filter repository.DocumentFilter) ([]*entity.SalesDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalesDocument
	for _, d := range r.s.docs {
		if filter.Kind != "" && d.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && d.ClientID != filter.ClientID {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memDocRepo) Delete(id string) error {
	if r.s.fails("Delete") {
		return errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.docs, id)
	return nil
}

func (r *memDocRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	src := r.s.lines[documentID]
	out := make([]*entity.DocumentLine, len(src))
	for i, l := range src {
		cp := *l
		out[i] = &cp
	}
	return out, nil
}

func (r *memDocRepo) CreateLine(line *entity.DocumentLine) error {
	if r.s.fails("CreateLine") {
		return errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *line
	r.s.lines[line.DocumentID] = append(r.s.lines[line.DocumentID], &cp)
	return nil
}

func (r *memDocRepo) DeleteLines(documentID string) error {
	if r.s.fails("DeleteLines") {
		return errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.lines, documentID)
	return nil
}

// ─── ProductRepository ────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error { return nil }

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) Search(q string, limit int) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) AdjustStock(productID string, delta int64) (int64, error) {
	if r.s.fails("AdjustStock") {
		return 0, errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockQuantity += delta
	return p.StockQuantity, nil
}

func (r *memProductRepo) Delete(id string) error { return nil }

// ─── ClientRepository ─────────────────────────────────────────────────────────

type memClientRepo struct{ s *memStore }

var _ repository.ClientRepository = (*memClientRepo)(nil)

func (r *memClientRepo) Create(c *entity.Client) error {
	if r.s.fails("CreateClient") {
		return errInjected
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByTaxID(taxID string) (*entity.Client, error) { return nil, nil }

func (r *memClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }

func (r *memClientRepo) Update(c *entity.Client) error { return nil }

func (r *memClientRepo) Delete(id string) error { return nil }

// ─── MessageRepository ────────────────────────────────────────────────────────

type memMessageRepo struct{ msg *entity.Message }

var _ repository.MessageRepository = (*memMessageRepo)(nil)

func (r *memMessageRepo) GetFirst() (*entity.Message, error) { return r.msg, nil }

// ─── TxRunner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&memDocRepo{t.s}, &memProductRepo{t.s}, &memClientRepo{t.s})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ─── SMSSender ────────────────────────────────────────────────────────────────

type fakeSMS struct {
	mu    sync.Mutex
	sent  []sentSMS
	errTo error // erreur retournée à chaque envoi
}

type sentSMS struct {
	Phone   string
	Message string
}

func (f *fakeSMS) Send(ctx context.Context, phone, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentSMS{Phone: phone, Message: message})
	return f.errTo
}

func (f *fakeSMS) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSMS) last() sentSMS {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}
