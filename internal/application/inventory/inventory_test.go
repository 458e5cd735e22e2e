package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jcardenas-dev/gestion-api/internal/application/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/domain"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	domaininv "github.com/jcardenas-dev/gestion-api/internal/domain/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── fakes en memoria ──────────────────────────────────────────────────────────

// fakeMovementRepo implementa el puerto del libro sobre un slice. Igual que
// el puerto, no ofrece forma alguna de mutar o borrar lo ya escrito.
type fakeMovementRepo struct {
	movs []entity.Movement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	f.movs = append(f.movs, *m)
	return nil
}

func (f *fakeMovementRepo) CreateBatch(ctx context.Context, movs []*entity.Movement) error {
	for _, m := range movs {
		if err := f.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, companyID, productID string, _ repository.MovementFilter) ([]entity.Movement, error) {
	var out []entity.Movement
	for _, m := range f.movs {
		if m.CompanyID == companyID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) SumByProducts(_ context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, id := range productIDs {
		sum := decimal.Zero
		for _, m := range f.movs {
			if m.CompanyID == companyID && m.ProductID == id {
				sum = sum.Add(domaininv.SignedDelta(m))
			}
		}
		out[id] = sum
	}
	return out, nil
}

type fakeLegacyRepo struct {
	sums map[string]decimal.Decimal // productID -> signed sum
}

func (f *fakeLegacyRepo) SumByProduct(_ context.Context, _, productID string) (decimal.Decimal, error) {
	if s, ok := f.sums[productID]; ok {
		return s, nil
	}
	return decimal.Zero, nil
}

func (f *fakeLegacyRepo) SumByProducts(_ context.Context, _ string, productIDs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, id := range productIDs {
		if s, ok := f.sums[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]entity.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListByIDs(_ context.Context, companyID string, ids []string) (map[string]entity.Product, error) {
	out := make(map[string]entity.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok && p.CompanyID == companyID {
			out[id] = p
		}
	}
	return out, nil
}

// fakeDocRepo calcula la reserva escaneando los documentos vivos, igual que
// la implementación SQL.
type fakeDocRepo struct {
	docs map[string]*entity.SalesDocument
}

func (f *fakeDocRepo) Create(_ context.Context, doc *entity.SalesDocument) error {
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocRepo) GetByID(_ context.Context, companyID, id string) (*entity.SalesDocument, error) {
	doc, ok := f.docs[id]
	if !ok || doc.CompanyID != companyID {
		return nil, nil
	}
	return doc, nil
}

func (f *fakeDocRepo) UpdateStatus(_ context.Context, companyID, id, status string) error {
	doc, ok := f.docs[id]
	if !ok || doc.CompanyID != companyID {
		return domain.ErrNotFound
	}
	doc.Status = status
	return nil
}

func (f *fakeDocRepo) ReservedByProducts(_ context.Context, companyID string, productIDs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, doc := range f.docs {
		if doc.CompanyID != companyID || !doc.Reserva() {
			continue
		}
		for _, item := range doc.Items {
			for _, id := range productIDs {
				if item.ProductID == id {
					out[id] = out[id].Add(item.Quantity)
				}
			}
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	movRepo repository.MovementRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error {
	return fn(f.movRepo)
}

const (
	testCompany = "co-1"
	testUser    = "user-1"
)

func newProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]entity.Product{
		"p-1": {ID: "p-1", CompanyID: testCompany, SKU: "SKU-1", Name: "Tornillo", Cost: d("2.50"), MinStock: d("5")},
		"p-2": {ID: "p-2", CompanyID: testCompany, SKU: "SKU-2", Name: "Tuerca", Cost: d("1.00"), MinStock: d("0")},
		"p-x": {ID: "p-x", CompanyID: "otra-empresa", SKU: "SKU-X"},
	}}
}

// ── Append ────────────────────────────────────────────────────────────────────

func TestAppend_RegistraMovimientoInmutable(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	uc := appinventory.NewAppendMovementUseCase(movRepo, newProductRepo())

	cost := d("2.50")
	mov, err := uc.Append(context.Background(), appinventory.MovementInput{
		CompanyID: testCompany,
		UserID:    testUser,
		ProductID: "p-1",
		Type:      entity.MovementTypeIN,
		Quantity:  d("10"),
		UnitCost:  &cost,
		Reference: "compra-001",
	})

	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, testUser, mov.CreatedBy)
	require.Len(t, movRepo.movs, 1)
}

func TestAppend_RechazaCantidadNoPositiva(t *testing.T) {
	uc := appinventory.NewAppendMovementUseCase(&fakeMovementRepo{}, newProductRepo())

	for _, qty := range []string{"0", "-3"} {
		_, err := uc.Append(context.Background(), appinventory.MovementInput{
			CompanyID: testCompany, UserID: testUser, ProductID: "p-1",
			Type: entity.MovementTypeOUT, Quantity: d(qty),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "OUT con cantidad %s debe rechazarse antes de escribir", qty)
	}
}

func TestAppend_RechazaProductoVacio(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	uc := appinventory.NewAppendMovementUseCase(movRepo, newProductRepo())

	_, err := uc.Append(context.Background(), appinventory.MovementInput{
		CompanyID: testCompany, UserID: testUser,
		Type: entity.MovementTypeIN, Quantity: d("1"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movRepo.movs, "un rechazo nunca escribe parcialmente")
}

func TestAppend_AceptaINSinCosto(t *testing.T) {
	// El costo unitario es opcional incluso en entradas: puede no conocerse
	// al momento de recibir la mercancía.
	movRepo := &fakeMovementRepo{}
	uc := appinventory.NewAppendMovementUseCase(movRepo, newProductRepo())

	mov, err := uc.Append(context.Background(), appinventory.MovementInput{
		CompanyID: testCompany, UserID: testUser, ProductID: "p-1",
		Type: entity.MovementTypeIN, Quantity: d("5"),
	})

	require.NoError(t, err)
	assert.Nil(t, mov.UnitCost)
	require.Len(t, movRepo.movs, 1)
}

func TestAppend_RechazaINConCostoNegativo(t *testing.T) {
	uc := appinventory.NewAppendMovementUseCase(&fakeMovementRepo{}, newProductRepo())

	cost := d("-1")
	_, err := uc.Append(context.Background(), appinventory.MovementInput{
		CompanyID: testCompany, UserID: testUser, ProductID: "p-1",
		Type: entity.MovementTypeIN, Quantity: d("5"), UnitCost: &cost,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_DescartaCostoEnSalidas(t *testing.T) {
	// El costo solo aplica a entradas; en OUT/ADJUSTMENT se descarta en vez
	// de almacenarse en silencio.
	movRepo := &fakeMovementRepo{}
	uc := appinventory.NewAppendMovementUseCase(movRepo, newProductRepo())

	cost := d("3.00")
	mov, err := uc.Append(context.Background(), appinventory.MovementInput{
		CompanyID: testCompany, UserID: testUser, ProductID: "p-1",
		Type: entity.MovementTypeOUT, Quantity: d("2"), UnitCost: &cost,
	})

	require.NoError(t, err)
	assert.Nil(t, mov.UnitCost, "el costo en una salida no se persiste")
}

func TestAppend_AjusteNegativoConservaSigno(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	uc := appinventory.NewAppendMovementUseCase(movRepo, newProductRepo())

	mov, err := uc.Append(context.Background(), appinventory.MovementInput{
		CompanyID: testCompany, UserID: testUser, ProductID: "p-1",
		Type: entity.MovementTypeADJUSTMENT, Quantity: d("-4"),
		Notes: "corrección de conteo",
	})

	require.NoError(t, err)
	assert.True(t, d("-4").Equal(mov.Quantity), "el libro almacena lo que recibe")
}

func TestAppend_ProductoDeOtraEmpresaProhibido(t *testing.T) {
	uc := appinventory.NewAppendMovementUseCase(&fakeMovementRepo{}, newProductRepo())

	cost := d("1")
	_, err := uc.Append(context.Background(), appinventory.MovementInput{
		CompanyID: testCompany, UserID: testUser, ProductID: "p-x",
		Type: entity.MovementTypeIN, Quantity: d("1"), UnitCost: &cost,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── Transfer ─────────────────────────────────────────────────────────────────

func TestTransfer_EscribeDosPatasQueNeteanCero(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	uc := appinventory.NewTransferUseCase(&fakeTxRunner{movRepo: movRepo}, newProductRepo())

	err := uc.Transfer(context.Background(), appinventory.TransferInput{
		CompanyID: testCompany, UserID: testUser, ProductID: "p-1",
		Quantity: d("7"), FromRef: "BOD-A", ToRef: "BOD-B",
	})

	require.NoError(t, err)
	require.Len(t, movRepo.movs, 2)
	assert.Equal(t, movRepo.movs[0].TransactionID, movRepo.movs[1].TransactionID, "las patas comparten transacción")
	net := domaininv.SignedDelta(movRepo.movs[0]).Add(domaininv.SignedDelta(movRepo.movs[1]))
	assert.True(t, net.IsZero(), "las patas deben netear cero, netearon %s", net)
}

func TestTransfer_RechazaMismoOrigenYDestino(t *testing.T) {
	uc := appinventory.NewTransferUseCase(&fakeTxRunner{movRepo: &fakeMovementRepo{}}, newProductRepo())

	err := uc.Transfer(context.Background(), appinventory.TransferInput{
		CompanyID: testCompany, UserID: testUser, ProductID: "p-1",
		Quantity: d("1"), FromRef: "BOD-A", ToRef: "BOD-A",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Projector ────────────────────────────────────────────────────────────────

func seedLedger(movRepo *fakeMovementRepo) {
	movRepo.movs = []entity.Movement{
		{CompanyID: testCompany, ProductID: "p-1", Type: entity.MovementTypeIN, Quantity: d("10")},
		{CompanyID: testCompany, ProductID: "p-1", Type: entity.MovementTypeOUT, Quantity: d("3")},
		{CompanyID: testCompany, ProductID: "p-1", Type: entity.MovementTypeADJUSTMENT, Quantity: d("2")},
		{CompanyID: testCompany, ProductID: "p-2", Type: entity.MovementTypeIN, Quantity: d("4")},
	}
}

func TestProject_SumaCanonicoMasHistorico(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	seedLedger(movRepo)
	legacy := &fakeLegacyRepo{sums: map[string]decimal.Decimal{"p-1": d("5")}}
	projector := appinventory.NewProjector(movRepo, legacy)

	balance, err := projector.Project(context.Background(), testCompany, "p-1")

	require.NoError(t, err)
	assert.True(t, d("14").Equal(balance.Balance), "9 canónico + 5 histórico = 14, fue %s", balance.Balance)
}

func TestProject_Idempotente(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	seedLedger(movRepo)
	projector := appinventory.NewProjector(movRepo, &fakeLegacyRepo{})

	a, err := projector.Project(context.Background(), testCompany, "p-1")
	require.NoError(t, err)
	b, err := projector.Project(context.Background(), testCompany, "p-1")
	require.NoError(t, err)

	assert.True(t, a.Balance.Equal(b.Balance), "mismo libro, mismo saldo")
}

func TestProjectBatch_IncluyeProductosSinHistoria(t *testing.T) {
	projector := appinventory.NewProjector(&fakeMovementRepo{}, &fakeLegacyRepo{})

	rows, err := projector.ProjectBatch(context.Background(), testCompany, []string{"p-nuevo"})

	require.NoError(t, err)
	require.Contains(t, rows, "p-nuevo")
	assert.True(t, rows["p-nuevo"].Balance.IsZero())
}

// ── Availability ─────────────────────────────────────────────────────────────

func newAvailability(movRepo *fakeMovementRepo, docRepo *fakeDocRepo) *appinventory.AvailabilityUseCase {
	projector := appinventory.NewProjector(movRepo, &fakeLegacyRepo{})
	return appinventory.NewAvailabilityUseCase(projector, docRepo, newProductRepo())
}

func openOrder(id string, productID string, qty string) *entity.SalesDocument {
	return &entity.SalesDocument{
		ID: id, CompanyID: testCompany,
		Type: entity.DocumentTypeOrder, Status: entity.DocumentStatusOpen,
		Items: []entity.SalesDocumentItem{{ProductID: productID, Quantity: d(qty)}},
	}
}

func TestAvailability_BalanceMenosReserva(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	seedLedger(movRepo)
	docRepo := &fakeDocRepo{docs: map[string]*entity.SalesDocument{"doc-1": openOrder("doc-1", "p-1", "4")}}

	rows, err := newAvailability(movRepo, docRepo).Availability(context.Background(), testCompany, []string{"p-1"})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, d("9").Equal(rows[0].Balance))
	assert.True(t, d("4").Equal(rows[0].Reserved))
	assert.True(t, d("5").Equal(rows[0].Available))
	assert.Equal(t, "SKU-1", rows[0].SKU)
}

func TestAvailability_CotizacionNoReserva(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	seedLedger(movRepo)
	quote := openOrder("doc-q", "p-1", "4")
	quote.Type = entity.DocumentTypeQuote
	docRepo := &fakeDocRepo{docs: map[string]*entity.SalesDocument{"doc-q": quote}}

	rows, err := newAvailability(movRepo, docRepo).Availability(context.Background(), testCompany, []string{"p-1"})

	require.NoError(t, err)
	assert.True(t, rows[0].Reserved.IsZero(), "las cotizaciones no aportan a la reserva")
}

// TestAvailability_ReservaTransitoria: al cancelar el pedido, la siguiente
// lectura ya no incluye su aporte, sin acción compensatoria alguna.
func TestAvailability_ReservaTransitoria(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	seedLedger(movRepo)
	docRepo := &fakeDocRepo{docs: map[string]*entity.SalesDocument{"doc-1": openOrder("doc-1", "p-1", "4")}}
	uc := newAvailability(movRepo, docRepo)

	before, err := uc.Availability(context.Background(), testCompany, []string{"p-1"})
	require.NoError(t, err)
	require.True(t, d("4").Equal(before[0].Reserved))

	docRepo.docs["doc-1"].Status = entity.DocumentStatusCancelled

	after, err := uc.Availability(context.Background(), testCompany, []string{"p-1"})
	require.NoError(t, err)
	assert.True(t, after[0].Reserved.IsZero(), "la reserva debe desaparecer en la misma lectura que ve la transición")
	assert.True(t, d("9").Equal(after[0].Available))
}

// TestAvailability_PuedeSerNegativa: la sobreventa se expone, no se bloquea.
func TestAvailability_PuedeSerNegativa(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	seedLedger(movRepo)
	docRepo := &fakeDocRepo{docs: map[string]*entity.SalesDocument{"doc-1": openOrder("doc-1", "p-1", "20")}}

	rows, err := newAvailability(movRepo, docRepo).Availability(context.Background(), testCompany, []string{"p-1"})

	require.NoError(t, err)
	assert.True(t, d("-11").Equal(rows[0].Available), "available 9-20=-11, fue %s", rows[0].Available)
	assert.True(t, rows[0].LowStock, "available bajo el mínimo debe marcarse")
}

// ── Kardex ───────────────────────────────────────────────────────────────────

func TestKardex_CierraIgualQueLaProyeccion(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	seedLedger(movRepo)
	legacy := &fakeLegacyRepo{sums: map[string]decimal.Decimal{"p-1": d("5")}}
	kardexUC := appinventory.NewKardexUseCase(movRepo, legacy)
	projector := appinventory.NewProjector(movRepo, legacy)

	entries, err := kardexUC.MovementsFor(context.Background(), testCompany, "p-1", repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// apertura 5 → [15, 12, 14]
	assert.True(t, d("15").Equal(entries[0].Running))
	assert.True(t, d("12").Equal(entries[1].Running))
	assert.True(t, d("14").Equal(entries[2].Running))

	balance, err := projector.Project(context.Background(), testCompany, "p-1")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(entries[2].Running), "el kardex debe cerrar en el saldo proyectado")
}
