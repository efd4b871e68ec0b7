package production_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Implementan los puertos de repositorio sobre mapas para
// ejercitar los casos de uso sin base de datos. El TxRunner fake ejecuta el
// callback contra los mismos fakes: no hay rollback real, los tests verifican
// que los casos de uso no muten nada antes de fallar.
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	locks    int // cuántas veces se pidió la fila con lock
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	r.locks++
	return r.products[id], nil
}

func (r *fakeProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	if p, ok := r.products[id]; ok {
		p.StockActual = stock
	}
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) SoftDelete(id string) error                        { return nil }

type fakeMaterialRepo struct {
	materials map[string]*entity.RawMaterial
	locks     []string // ids bloqueados, en orden de llamada
}

func newFakeMaterialRepo(materials ...*entity.RawMaterial) *fakeMaterialRepo {
	r := &fakeMaterialRepo{materials: make(map[string]*entity.RawMaterial)}
	for _, m := range materials {
		r.materials[m.ID] = m
	}
	return r
}

func (r *fakeMaterialRepo) Create(m *entity.RawMaterial) error {
	r.materials[m.ID] = m
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	return r.materials[id], nil
}

func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	r.locks = append(r.locks, id)
	return r.materials[id], nil
}

func (r *fakeMaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	if m, ok := r.materials[id]; ok {
		m.StockActual = stock
	}
	return nil
}

func (r *fakeMaterialRepo) UpdateStatus(id, status string) error {
	if m, ok := r.materials[id]; ok {
		m.Status = status
	}
	return nil
}

func (r *fakeMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) { return nil, nil }
func (r *fakeMaterialRepo) SoftDelete(id string) error                            { return nil }

type fakeFormulaRepo struct {
	byProduct map[string][]*entity.Formula // en orden de creación ascendente
}

func newFakeFormulaRepo() *fakeFormulaRepo {
	return &fakeFormulaRepo{byProduct: make(map[string][]*entity.Formula)}
}

func (r *fakeFormulaRepo) Create(f *entity.Formula) error {
	r.byProduct[f.ProductID] = append(r.byProduct[f.ProductID], f)
	return nil
}

func (r *fakeFormulaRepo) GetByID(id string) (*entity.Formula, error) {
	for _, list := range r.byProduct {
		for _, f := range list {
			if f.ID == id {
				return f, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeFormulaRepo) ListByProduct(productID string) ([]*entity.Formula, error) {
	return r.byProduct[productID], nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.CustomerOrder
}

func newFakeOrderRepo(orders ...*entity.CustomerOrder) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*entity.CustomerOrder)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(o *entity.CustomerOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) UpdateStatus(orderID, status string) error {
	if o, ok := r.orders[orderID]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) List(limit, offset int) ([]*entity.CustomerOrder, error) { return nil, nil }

type fakeProductionOrderRepo struct {
	orders map[string]*entity.ProductionOrder
}

func newFakeProductionOrderRepo(orders ...*entity.ProductionOrder) *fakeProductionOrderRepo {
	r := &fakeProductionOrderRepo{orders: make(map[string]*entity.ProductionOrder)}
	for _, po := range orders {
		r.orders[po.ID] = po
	}
	return r
}

func (r *fakeProductionOrderRepo) Create(po *entity.ProductionOrder) error {
	r.orders[po.ID] = po
	return nil
}

func (r *fakeProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return r.orders[id], nil
}

func (r *fakeProductionOrderRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	return r.orders[id], nil
}

func (r *fakeProductionOrderRepo) FindActiveByOrder(orderID string) (*entity.ProductionOrder, error) {
	for _, po := range r.orders {
		if po.OrderID == orderID && !po.Status.Terminal() {
			return po, nil
		}
	}
	return nil, nil
}

func (r *fakeProductionOrderRepo) Update(po *entity.ProductionOrder) error {
	r.orders[po.ID] = po
	return nil
}

type fakeMaterialMovementRepo struct {
	movements []*entity.RawMaterialMovement
}

func (r *fakeMaterialMovementRepo) Create(m *entity.RawMaterialMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMaterialMovementRepo) ListByMaterial(materialID string, from, to *time.Time, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	var out []*entity.RawMaterialMovement
	for _, m := range r.movements {
		if m.RawMaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMaterialMovementRepo) ListByProductionOrder(productionOrderID string) ([]*entity.RawMaterialMovement, error) {
	var out []*entity.RawMaterialMovement
	for _, m := range r.movements {
		if m.ProductionOrderID == productionOrderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProductMovementRepo struct {
	movements []*entity.ProductMovement
}

func (r *fakeProductMovementRepo) Create(m *entity.ProductMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeProductMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.ProductMovement, error) {
	var out []*entity.ProductMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeProductMovementRepo) ListByProductionOrder(productionOrderID string) ([]*entity.ProductMovement, error) {
	var out []*entity.ProductMovement
	for _, m := range r.movements {
		if m.ProductionOrderID == productionOrderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeAuditLog struct {
	records []*entity.AuditRecord
	failErr error
}

func (a *fakeAuditLog) Append(record *entity.AuditRecord) error {
	if a.failErr != nil {
		return a.failErr
	}
	a.records = append(a.records, record)
	return nil
}

// fakeTxRunner ejecuta el callback contra los fakes compartidos.
type fakeTxRunner struct {
	repos production.Repos
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(repos production.Repos) error) error {
	return fn(tx.repos)
}

// env agrupa todos los fakes de un escenario de test.
type env struct {
	products    *fakeProductRepo
	materials   *fakeMaterialRepo
	formulas    *fakeFormulaRepo
	orders      *fakeOrderRepo
	prodOrders  *fakeProductionOrderRepo
	matMovs     *fakeMaterialMovementRepo
	prodMovs    *fakeProductMovementRepo
	audit       *fakeAuditLog
	txRunner    *fakeTxRunner
}

func newEnv() *env {
	e := &env{
		products:   newFakeProductRepo(),
		materials:  newFakeMaterialRepo(),
		formulas:   newFakeFormulaRepo(),
		orders:     newFakeOrderRepo(),
		prodOrders: newFakeProductionOrderRepo(),
		matMovs:    &fakeMaterialMovementRepo{},
		prodMovs:   &fakeProductMovementRepo{},
		audit:      &fakeAuditLog{},
	}
	e.txRunner = &fakeTxRunner{repos: production.Repos{
		Products:         e.products,
		RawMaterials:     e.materials,
		Formulas:         e.formulas,
		Orders:           e.orders,
		ProductionOrders: e.prodOrders,
		MaterialMovs:     e.matMovs,
		ProductMovs:      e.prodMovs,
	}}
	return e
}

func (e *env) verifier() *production.VerifyStockUseCase {
	return production.NewVerifyStockUseCase(
		e.orders, e.products, e.materials, e.formulas,
		production.FormulaPolicyOldest, e.audit, testLogger(),
	)
}

func (e *env) starter() *production.StartProductionUseCase {
	return production.NewStartProductionUseCase(
		e.txRunner, e.verifier(), production.FormulaPolicyOldest, e.audit, testLogger(),
	)
}

func (e *env) finalizer() *production.FinalizeProductionUseCase {
	return production.NewFinalizeProductionUseCase(
		e.txRunner, production.FormulaPolicyOldest, e.audit, testLogger(),
	)
}
