package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: Run trabaja sobre una copia y
// solo publica los cambios si fn no falla, igual que Commit/Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items     map[string]*entity.Item
	movements map[string]*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]*entity.Item{},
		movements: map[string]*entity.Movement{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, m := range s.movements {
		cp := *m
		cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
		c.movements[id] = &cp
	}
	return c
}

type memItemRepo struct{ store *memStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) Update(item *entity.Item) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) AdjustAvailable(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	it, ok := r.store.items[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	next := it.AvailableQuantity.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	it.AvailableQuantity = next
	return next, nil
}

func (r *memItemRepo) ForceAdjustAvailable(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	it, ok := r.store.items[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	it.AvailableQuantity = it.AvailableQuantity.Add(delta)
	return it.AvailableQuantity, nil
}

func (r *memItemRepo) AdjustAvailableClamped(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	it, ok := r.store.items[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	next := it.AvailableQuantity.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	it.AvailableQuantity = next
	return next, nil
}

func (r *memItemRepo) List(onlyActive bool, limit, offset int) ([]*entity.Item, error) {
	return nil, nil
}

func (r *memItemRepo) ListBelowReorder() ([]*entity.Item, error) { return nil, nil }

func (r *memItemRepo) Deactivate(id string) error {
	it, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Active = false
	return nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
	return &cp, nil
}

func (r *memMovementRepo) Update(m *entity.Movement) error { return r.Create(m) }

func (r *memMovementRepo) Delete(id string) error {
	delete(r.store.movements, id)
	return nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *memMovementRepo) ClosingSummary(day time.Time) ([]repository.ClosingLine, error) {
	return nil, nil
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	work := r.store.clone()
	if err := fn(&memMovementRepo{store: work}, &memItemRepo{store: work}); err != nil {
		return err
	}
	*r.store = *work
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func newTestUseCase(store *memStore) *UseCase {
	return NewUseCase(
		&memTxRunner{store: store},
		&memMovementRepo{store: store},
		&memItemRepo{store: store},
		logger.Nop(),
	)
}

func seedItem(store *memStore, id string, available, conversion, unitCost, retail string) {
	store.items[id] = &entity.Item{
		ID:                id,
		Name:              "Artículo " + id,
		Unit:              entity.UnitPack,
		ConversionUnit:    dec(conversion),
		UnitCost:          dec(unitCost),
		RetailPrice:       dec(retail),
		AvailableQuantity: dec(available),
		Active:            true,
	}
}

func available(t *testing.T, store *memStore, id string) decimal.Decimal {
	t.Helper()
	it, ok := store.items[id]
	require.True(t, ok, "el artículo debe existir")
	return it.AvailableQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Consumo: stock 100, costo unitario 5, consumo de 10 → stock 90, costo total 50.
func TestCreateConsumo_DescuentaStockYCalculaCosto(t *testing.T) {
	store := newMemStore()
	seedItem(store, "amoxicilina", "100", "1", "5", "8")
	uc := newTestUseCase(store)

	mov, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionPatientTreatment,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "amoxicilina", Quantity: dec("10")}},
	})
	require.NoError(t, err)

	assert.True(t, available(t, store, "amoxicilina").Equal(dec("90")),
		"el consumo debe descontar 10 unidades base")
	require.Len(t, mov.Lines, 1)
	assert.True(t, mov.Lines[0].TotalCost.Equal(dec("50")),
		"el costo total se calcula con la economía unitaria vigente")
	assert.True(t, mov.Lines[0].BaseDelta.Equal(dec("-10")))
}

// Venta de mostrador con stock insuficiente: el error lleva disponible/requerido y
// el stock no se toca.
func TestCreatePOSVenta_StockInsuficiente(t *testing.T) {
	store := newMemStore()
	seedItem(store, "ibuprofeno", "5", "10", "2", "3")
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindPOS,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "ibuprofeno", Quantity: dec("10"), Unit: entity.UnitSingle}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail), "el error debe llevar el detalle")
	assert.True(t, detail.Available.Equal(dec("5")))
	assert.True(t, detail.Required.Equal(dec("10")))

	assert.True(t, available(t, store, "ibuprofeno").Equal(dec("5")),
		"un movimiento rechazado no muta el stock")
	assert.Empty(t, store.movements, "el movimiento no debe persistirse")
}

// Recepción en packs: factor 10, stock 100, 2 packs → 120.
func TestCreateRecepcion_ConversionPack(t *testing.T) {
	store := newMemStore()
	seedItem(store, "paracetamol", "100", "10", "1", "2")
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindReceipt,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "paracetamol", Quantity: dec("2"), Unit: entity.UnitPack}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "paracetamol").Equal(dec("120")))
}

// Recepción con unidades sueltas fuera de packs: 2 packs × 10 + 3 sueltas = +23.
func TestCreateRecepcion_UnidadesSueltas(t *testing.T) {
	store := newMemStore()
	seedItem(store, "jeringas", "0", "10", "1", "2")
	uc := newTestUseCase(store)

	mov, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindReceipt,
		UserID: "u1",
		Lines: []LineInput{{
			ItemID:       "jeringas",
			Quantity:     dec("2"),
			Unit:         entity.UnitPack,
			LooseUnitQty: dec("3"),
		}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "jeringas").Equal(dec("23")))
	assert.True(t, mov.Lines[0].BaseDelta.Equal(dec("23")))
}

// Un factor de conversión vacío degrada a 1 (identidad), no falla.
func TestCreateRecepcion_FactorCeroDegradaA1(t *testing.T) {
	store := newMemStore()
	seedItem(store, "gasa", "10", "0", "1", "2")
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindReceipt,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "gasa", Quantity: dec("5"), Unit: entity.UnitPack}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "gasa").Equal(dec("15")),
		"con factor 0 cada pack cuenta como 1 unidad base")
}

// POS con líneas mixtas venta/devolución: venta 2 packs (−20) + devolución 1 pack (+10).
func TestCreatePOS_VentaYDevolucionMixtas(t *testing.T) {
	store := newMemStore()
	seedItem(store, "omeprazol", "50", "10", "2", "4")
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindPOS,
		UserID: "u1",
		Lines: []LineInput{
			{ItemID: "omeprazol", Quantity: dec("2"), Unit: entity.UnitPack},
			{ItemID: "omeprazol", Quantity: dec("1"), Unit: entity.UnitPack, IsReturn: true},
		},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "omeprazol").Equal(dec("40")))
}

// Atomicidad multi-línea: si la segunda línea no tiene stock, la primera tampoco
// queda aplicada.
func TestCreatePOS_MultilineaAtomica(t *testing.T) {
	store := newMemStore()
	seedItem(store, "a", "100", "1", "1", "2")
	seedItem(store, "b", "3", "1", "1", "2")
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindPOS,
		UserID: "u1",
		Lines: []LineInput{
			{ItemID: "a", Quantity: dec("10"), Unit: entity.UnitSingle},
			{ItemID: "b", Quantity: dec("10"), Unit: entity.UnitSingle},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.True(t, available(t, store, "a").Equal(dec("100")),
		"la línea buena debe revertirse junto con el lote")
	assert.True(t, available(t, store, "b").Equal(dec("3")))
	assert.Empty(t, store.movements)
}

// Ajuste de stock: el delta es stock contado − stock actual, firmado.
func TestCreateAjuste_DeltaFirmado(t *testing.T) {
	store := newMemStore()
	seedItem(store, "alcohol", "100", "1", "1", "2")
	uc := newTestUseCase(store)

	mov, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindAdjustment,
		Reason: entity.AdjustmentPhysicalCount,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "alcohol", AdjustedStock: dec("90")}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "alcohol").Equal(dec("90")))
	assert.True(t, mov.Lines[0].BaseDelta.Equal(dec("-10")))

	// Conteo por encima del stock actual: delta positivo.
	_, err = uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindAdjustment,
		Reason: entity.AdjustmentFoundStock,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "alcohol", AdjustedStock: dec("120")}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "alcohol").Equal(dec("120")))
}

// Venta perdida: sin efecto en stock, pérdida estimada = cantidad × precio de venta.
func TestCreateVentaPerdida_SinEfectoEnStock(t *testing.T) {
	store := newMemStore()
	seedItem(store, "vitamina-c", "30", "1", "2", "6")
	uc := newTestUseCase(store)

	mov, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindMissedSale,
		Reason: entity.MissedSaleOutOfStock,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "vitamina-c", Quantity: dec("4")}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "vitamina-c").Equal(dec("30")),
		"la venta perdida es solo para reporte")
	assert.True(t, mov.Lines[0].EstimatedLoss.Equal(dec("24")))
	assert.True(t, mov.Lines[0].BaseDelta.IsZero())
}

// Artículo inexistente: NotFound y nada persiste.
func TestCreate_ArticuloInexistente(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)

	_, err := uc.Create(context.Background(), MovementInput{
		Kind:   entity.MovementKindReceipt,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "no-existe", Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, store.movements)
}

// Validaciones de entrada.
func TestCreate_Validaciones(t *testing.T) {
	store := newMemStore()
	seedItem(store, "x", "10", "1", "1", "1")
	uc := newTestUseCase(store)
	ctx := context.Background()

	// Sin líneas (ticket POS vacío)
	_, err := uc.Create(ctx, MovementInput{Kind: entity.MovementKindPOS, Lines: nil})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Tipo desconocido
	_, err = uc.Create(ctx, MovementInput{Kind: "OTRO", Lines: []LineInput{{ItemID: "x"}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Consumo sin razón válida
	_, err = uc.Create(ctx, MovementInput{
		Kind:  entity.MovementKindConsumption,
		Lines: []LineInput{{ItemID: "x", Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Cantidad negativa
	_, err = uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindReceipt,
		Lines:  []LineInput{{ItemID: "x", Quantity: dec("-1")}},
		UserID: "u1",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// El consumo no admite varias líneas
	_, err = uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionOther,
		Lines: []LineInput{
			{ItemID: "x", Quantity: dec("1")},
			{ItemID: "x", Quantity: dec("1")},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

// Edición de cantidad: consumo de 20 sobre 100 (→80); editar a 35 debe revertir
// (→100) y aplicar lo nuevo (→65).
func TestUpdateConsumo_RevierteYAplicaContraStockActual(t *testing.T) {
	store := newMemStore()
	seedItem(store, "insulina", "100", "1", "5", "9")
	uc := newTestUseCase(store)
	ctx := context.Background()

	mov, err := uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionPatientTreatment,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "insulina", Quantity: dec("20")}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "insulina").Equal(dec("80")))

	updated, err := uc.Update(ctx, mov.ID, MovementInput{
		Reason: entity.ConsumptionPatientTreatment,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "insulina", Quantity: dec("35")}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "insulina").Equal(dec("65")))
	assert.True(t, updated.Lines[0].BaseDelta.Equal(dec("-35")))
	assert.True(t, updated.Lines[0].TotalCost.Equal(dec("175")))
}

// Edición sin cambios: el stock queda igual.
func TestUpdateSinCambios_Idempotente(t *testing.T) {
	store := newMemStore()
	seedItem(store, "suero", "100", "1", "3", "5")
	uc := newTestUseCase(store)
	ctx := context.Background()

	mov, err := uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionDepartment,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "suero", Quantity: dec("10")}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "suero").Equal(dec("90")))

	_, err = uc.Update(ctx, mov.ID, MovementInput{
		Reason: entity.ConsumptionDepartment,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "suero", Quantity: dec("10")}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "suero").Equal(dec("90")),
		"editar con los mismos campos no debe mover el stock")
}

// Edición que cambia de artículo: se revierte en el viejo y se aplica en el nuevo.
func TestUpdate_CambioDeArticulo(t *testing.T) {
	store := newMemStore()
	seedItem(store, "viejo", "100", "1", "1", "2")
	seedItem(store, "nuevo", "50", "1", "1", "2")
	uc := newTestUseCase(store)
	ctx := context.Background()

	mov, err := uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionOther,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "viejo", Quantity: dec("10")}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "viejo").Equal(dec("90")))

	_, err = uc.Update(ctx, mov.ID, MovementInput{
		Reason: entity.ConsumptionOther,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "nuevo", Quantity: dec("10")}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "viejo").Equal(dec("100")),
		"el artículo original recupera su stock")
	assert.True(t, available(t, store, "nuevo").Equal(dec("40")),
		"el artículo nuevo recibe el débito")
}

// Edición infactible: si lo nuevo no cabe, ni la reversa ni lo nuevo quedan aplicados.
func TestUpdate_InfactibleNoDejaEfectosParciales(t *testing.T) {
	store := newMemStore()
	seedItem(store, "z", "100", "1", "1", "2")
	uc := newTestUseCase(store)
	ctx := context.Background()

	mov, err := uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionOther,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "z", Quantity: dec("20")}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "z").Equal(dec("80")))

	_, err = uc.Update(ctx, mov.ID, MovementInput{
		Reason: entity.ConsumptionOther,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "z", Quantity: dec("500")}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, available(t, store, "z").Equal(dec("80")),
		"el rechazo deja el stock como estaba antes de la edición")
}

// Edición de una recepción con parte de la entrada ya consumida: la reversa de la
// edición es exacta (el piso en cero es solo para eliminar), así que una edición sin
// cambios no fabrica stock.
func TestUpdateRecepcion_SinCambiosNoFabricaStock(t *testing.T) {
	store := newMemStore()
	seedItem(store, "ampicilina", "0", "1", "1", "2")
	uc := newTestUseCase(store)
	ctx := context.Background()

	receipt, err := uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindReceipt,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "ampicilina", Quantity: dec("20"), Unit: entity.UnitSingle}},
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionEmergencyUse,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "ampicilina", Quantity: dec("15")}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "ampicilina").Equal(dec("5")))

	_, err = uc.Update(ctx, receipt.ID, MovementInput{
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "ampicilina", Quantity: dec("20"), Unit: entity.UnitSingle}},
	})
	require.NoError(t, err)
	assert.True(t, available(t, store, "ampicilina").Equal(dec("5")),
		"una edición sin cambios debe dejar el stock en 5")

	// Encoger la recepción por debajo de lo ya consumido no es factible.
	_, err = uc.Update(ctx, receipt.ID, MovementInput{
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "ampicilina", Quantity: dec("10"), Unit: entity.UnitSingle}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, available(t, store, "ampicilina").Equal(dec("5")),
		"el rechazo deja el stock como estaba")
}

// Los movimientos generados por la recepción de una orden de compra se gestionan
// desde la orden; editarlos directo es un conflicto.
func TestUpdate_MovimientoDeOrdenDeCompraEsConflicto(t *testing.T) {
	store := newMemStore()
	seedItem(store, "a", "30", "1", "1", "2")
	seedItem(store, "b", "40", "1", "1", "2")
	store.movements["po-mov"] = &entity.Movement{
		ID:              "po-mov",
		Kind:            entity.MovementKindPOReceipt,
		PurchaseOrderID: "oc-1",
		Lines: []entity.MovementLine{
			{ID: "l1", MovementID: "po-mov", ItemID: "a", Quantity: dec("30"), Unit: entity.UnitSingle, BaseDelta: dec("30")},
			{ID: "l2", MovementID: "po-mov", ItemID: "b", Quantity: dec("40"), Unit: entity.UnitSingle, BaseDelta: dec("40")},
		},
	}
	uc := newTestUseCase(store)

	_, err := uc.Update(context.Background(), "po-mov", MovementInput{
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "a", Quantity: dec("10")}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.True(t, available(t, store, "a").Equal(dec("30")), "el rechazo no toca el stock")
	assert.True(t, available(t, store, "b").Equal(dec("40")))
}

func TestUpdate_MovimientoInexistente(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)
	_, err := uc.Update(context.Background(), "nope", MovementInput{
		Lines: []LineInput{{ItemID: "x", Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar una devolución a proveedor restaura el stock exacto: 50 → 30 → 50.
func TestDeleteDevolucionProveedor_RestauraStock(t *testing.T) {
	store := newMemStore()
	seedItem(store, "captopril", "50", "1", "2", "4")
	uc := newTestUseCase(store)
	ctx := context.Background()

	mov, err := uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindSupplierReturn,
		Reason: "lote vencido",
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "captopril", Quantity: dec("20")}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "captopril").Equal(dec("30")))

	require.NoError(t, uc.Delete(ctx, mov.ID))
	assert.True(t, available(t, store, "captopril").Equal(dec("50")))
	assert.Empty(t, store.movements)
}

// Eliminar una recepción con parte de la entrada ya consumida: la reversa fija
// piso en cero en lugar de dejar stock negativo.
func TestDeleteRecepcion_ClampEnCero(t *testing.T) {
	store := newMemStore()
	seedItem(store, "ampicilina", "0", "1", "1", "2")
	uc := newTestUseCase(store)
	ctx := context.Background()

	receipt, err := uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindReceipt,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "ampicilina", Quantity: dec("20"), Unit: entity.UnitSingle}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "ampicilina").Equal(dec("20")))

	_, err = uc.Create(ctx, MovementInput{
		Kind:   entity.MovementKindConsumption,
		Reason: entity.ConsumptionEmergencyUse,
		UserID: "u1",
		Lines:  []LineInput{{ItemID: "ampicilina", Quantity: dec("15")}},
	})
	require.NoError(t, err)
	require.True(t, available(t, store, "ampicilina").Equal(dec("5")))

	require.NoError(t, uc.Delete(ctx, receipt.ID))
	assert.True(t, available(t, store, "ampicilina").Equal(dec("0")),
		"la reversa de recepción no deja stock negativo")
}

// Crear y eliminar de inmediato deja el stock intacto para todos los tipos con efecto.
func TestCreateMasDelete_Reversible(t *testing.T) {
	store := newMemStore()
	seedItem(store, "r", "100", "10", "2", "4")
	uc := newTestUseCase(store)
	ctx := context.Background()

	inputs := []MovementInput{
		{Kind: entity.MovementKindReceipt, Lines: []LineInput{{ItemID: "r", Quantity: dec("2"), Unit: entity.UnitPack, LooseUnitQty: dec("3")}}},
		{Kind: entity.MovementKindConsumption, Reason: entity.ConsumptionOther, Lines: []LineInput{{ItemID: "r", Quantity: dec("7")}}},
		{Kind: entity.MovementKindPOS, Lines: []LineInput{{ItemID: "r", Quantity: dec("1"), Unit: entity.UnitPack}}},
		{Kind: entity.MovementKindSupplierReturn, Reason: "dañado", Lines: []LineInput{{ItemID: "r", Quantity: dec("5")}}},
		{Kind: entity.MovementKindAdjustment, Reason: entity.AdjustmentPhysicalCount, Lines: []LineInput{{ItemID: "r", AdjustedStock: dec("80")}}},
	}
	for _, in := range inputs {
		in.UserID = "u1"
		mov, err := uc.Create(ctx, in)
		require.NoError(t, err, "tipo %s", in.Kind)
		require.NoError(t, uc.Delete(ctx, mov.ID), "tipo %s", in.Kind)
		assert.True(t, available(t, store, "r").Equal(dec("100")),
			"crear+eliminar %s debe dejar el stock intacto", in.Kind)
	}
}

func TestDelete_MovimientoInexistente(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store)
	err := uc.Delete(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de no-negatividad sobre una secuencia de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestSecuencia_StockNuncaNegativo(t *testing.T) {
	store := newMemStore()
	seedItem(store, "s", "10", "1", "1", "2")
	uc := newTestUseCase(store)
	ctx := context.Background()

	sell := func(qty string) error {
		_, err := uc.Create(ctx, MovementInput{
			Kind:   entity.MovementKindPOS,
			UserID: "u1",
			Lines:  []LineInput{{ItemID: "s", Quantity: dec(qty), Unit: entity.UnitSingle}},
		})
		return err
	}

	require.NoError(t, sell("6"))
	require.NoError(t, sell("4"))
	require.Error(t, sell("1"), "la última unidad ya se vendió")
	assert.True(t, available(t, store, "s").Equal(dec("0")))
	assert.False(t, available(t, store, "s").IsNegative())
}
