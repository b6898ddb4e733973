package invite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appinvite "github.com/jhoicas/Condominio-api/internal/application/invite"
	"github.com/jhoicas/Condominio-api/internal/application/dto"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/provision"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/pkg/invitecode"
	"github.com/jhoicas/Condominio-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvites struct {
	byID map[string]*entity.Invite
	// markUsedFails fuerza que MarkUsed pierda la carrera (simula canje concurrente).
	markUsedFails bool
}

func newFakeInvites() *fakeInvites { return &fakeInvites{byID: map[string]*entity.Invite{}} }

func (f *fakeInvites) Create(inv *entity.Invite) error {
	cp := *inv
	f.byID[inv.ID] = &cp
	return nil
}
func (f *fakeInvites) GetByID(id string) (*entity.Invite, error) {
	if inv, ok := f.byID[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeInvites) GetUnusedByCode(code string) (*entity.Invite, error) {
	for _, inv := range f.byID {
		if inv.Code == code && !inv.IsUsed {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeInvites) ListUnusedByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error) {
	var out []*entity.Invite
	for _, inv := range f.byID {
		if inv.TenantID == tenantID && inv.Kind == kind && !inv.IsUsed {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeInvites) ListByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error) {
	var out []*entity.Invite
	for _, inv := range f.byID {
		if inv.TenantID == tenantID && inv.Kind == kind {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeInvites) ListByTenant(tenantID string) ([]*entity.Invite, error) {
	var out []*entity.Invite
	for _, inv := range f.byID {
		if inv.TenantID == tenantID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeInvites) MarkUsed(id, usedBy string, usedAt time.Time) (bool, error) {
	inv, ok := f.byID[id]
	if !ok || inv.IsUsed || f.markUsedFails {
		return false, nil
	}
	inv.IsUsed = true
	inv.UsedByUserID = usedBy
	inv.UsedAt = &usedAt
	return true, nil
}
func (f *fakeInvites) Delete(id string) error { delete(f.byID, id); return nil }

type fakeTenants struct{ byID map[string]*entity.Tenant }

func newFakeTenants() *fakeTenants { return &fakeTenants{byID: map[string]*entity.Tenant{}} }

func (f *fakeTenants) Create(t *entity.Tenant) error { cp := *t; f.byID[t.ID] = &cp; return nil }
func (f *fakeTenants) GetByID(id string) (*entity.Tenant, error) {
	if t, ok := f.byID[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeTenants) ListByAdmin(adminID string, limit, offset int) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range f.byID {
		if t.CreatedByAdminID == adminID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeTenants) Update(t *entity.Tenant) error { cp := *t; f.byID[t.ID] = &cp; return nil }
func (f *fakeTenants) Delete(id string) error        { delete(f.byID, id); return nil }

type fakeProfiles struct{ byID map[string]*entity.Profile }

func newFakeProfiles() *fakeProfiles { return &fakeProfiles{byID: map[string]*entity.Profile{}} }

func (f *fakeProfiles) Create(p *entity.Profile) error { cp := *p; f.byID[p.ID] = &cp; return nil }
func (f *fakeProfiles) GetByID(id string) (*entity.Profile, error) {
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeProfiles) Update(p *entity.Profile) error { cp := *p; f.byID[p.ID] = &cp; return nil }
func (f *fakeProfiles) ListByTenant(tenantID string, limit, offset int) ([]*entity.Profile, error) {
	var out []*entity.Profile
	for _, p := range f.byID {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeProfiles) Delete(id string) error { delete(f.byID, id); return nil }

type fakeIdentity struct {
	emails map[string]string // email -> id
	next   int
}

func newFakeIdentity() *fakeIdentity { return &fakeIdentity{emails: map[string]string{}} }

func (f *fakeIdentity) CreateAccount(_ context.Context, email, password, displayName string) (string, error) {
	if _, ok := f.emails[email]; ok {
		return "", domain.ErrEmailAlreadyExists
	}
	f.next++
	id := fmt.Sprintf("acc-%d", f.next)
	f.emails[email] = id
	return id, nil
}
func (f *fakeIdentity) DeleteAccount(_ context.Context, id string) error {
	for email, accID := range f.emails {
		if accID == id {
			delete(f.emails, email)
			return nil
		}
	}
	return nil // inexistente se tolera
}
func (f *fakeIdentity) VerifyPassword(_ context.Context, email, password string) (string, error) {
	if id, ok := f.emails[email]; ok {
		return id, nil
	}
	return "", domain.ErrUnauthenticated
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	uc       *appinvite.UseCase
	invites  *fakeInvites
	tenants  *fakeTenants
	profiles *fakeProfiles
	identity *fakeIdentity
	now      time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		invites:  newFakeInvites(),
		tenants:  newFakeTenants(),
		profiles: newFakeProfiles(),
		identity: newFakeIdentity(),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	g := guard.New(h.profiles)
	prov := provision.New(h.identity, h.profiles, log)
	h.uc = appinvite.New(h.invites, h.tenants, g, prov, log).
		WithClock(func() time.Time { return h.now })
	return h
}

func (h *harness) addAdmin(id string) {
	h.profiles.byID[id] = &entity.Profile{ID: id, Email: id + "@test", Role: entity.RoleAdmin}
}

func (h *harness) addProfile(id, role, tenantID string) {
	h.profiles.byID[id] = &entity.Profile{ID: id, Email: id + "@test", Role: role, TenantID: tenantID}
}

func (h *harness) addTenant(id, adminID string, registered bool) *entity.Tenant {
	tn := &entity.Tenant{
		ID: id, Name: "Taloyhtiö Koivu", Address: "Koivukatu 3", City: "Oulu",
		PostalCode: "90100", CreatedByAdminID: adminID, IsActive: true,
		IsRegistered: registered, CreatedAt: h.now, UpdatedAt: h.now,
	}
	h.tenants.byID[id] = tn
	return tn
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateTenantInvite_CodigoYExpiracionExacta(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)

	resp, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	assert.Len(t, resp.Code, 8)
	assert.True(t, invitecode.IsPlausible(resp.Code), "código debe ser A-Z0-9")
	assert.Equal(t, h.now.Add(7*24*time.Hour), resp.ExpiresAt, "expira exactamente a los 7 días")

	// Espejo en el tenant.
	tn, _ := h.tenants.GetByID("t1")
	assert.Equal(t, resp.Code, tn.InviteCode)
	require.NotNil(t, tn.InviteCodeExpiresAt)
	assert.Equal(t, resp.ExpiresAt, *tn.InviteCodeExpiresAt)
}

func TestGenerateTenantInvite_SoloElAdminCreador(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addAdmin("admin2")
	h.addTenant("t1", "admin1", false)

	_, err := h.uc.GenerateTenantInvite("admin2", "t1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGenerateTenantInvite_TenantRegistradoRechaza(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", true)

	_, err := h.uc.GenerateTenantInvite("admin1", "t1")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestGenerateResidentInvite_RequiereEdificioYApartamento(t *testing.T) {
	h := newHarness(t)
	h.addProfile("hc1", entity.RoleHousingCompany, "t1")

	_, err := h.uc.GenerateResidentInvite("hc1", dto.GenerateInviteRequest{BuildingID: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := h.uc.GenerateResidentInvite("hc1", dto.GenerateInviteRequest{
		BuildingID: "A", ApartmentNumber: "12",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InviteKindResident, resp.Kind)
	assert.Equal(t, "A", resp.BuildingID)
	assert.Equal(t, "12", resp.ApartmentNumber)
}

func TestGenerateManagementInvite_UnaActivaPorTenant(t *testing.T) {
	h := newHarness(t)
	h.addProfile("hc1", entity.RoleHousingCompany, "t1")

	first, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{BuildingID: "A"})
	require.NoError(t, err)

	// Regenerar con una vigente devuelve la misma, sin crear duplicado.
	second, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{BuildingID: "A"})
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.ExpiresAt, second.ExpiresAt)

	all, _ := h.invites.ListByTenantAndKind("t1", entity.InviteKindManagement)
	assert.Len(t, all, 1)
}

func TestGenerateManagementInvite_NuevaTrasExpirar(t *testing.T) {
	h := newHarness(t)
	h.addProfile("hc1", entity.RoleHousingCompany, "t1")

	first, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{BuildingID: "A"})
	require.NoError(t, err)

	// Avanzar el reloj más allá de la expiración.
	h.now = h.now.Add(8 * 24 * time.Hour)

	second, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{BuildingID: "A"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Code, second.Code, "expirada la anterior, se genera código nuevo")
}

func TestGenerateManagementInvite_PropertyManagerExigeEdificio(t *testing.T) {
	h := newHarness(t)
	h.addProfile("hc1", entity.RoleHousingCompany, "t1")

	// property_manager (rol por defecto) sin edificio: el perfil canjeado
	// quedaría sin edificio asignado, así que se rechaza en la emisión.
	_, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{
		TargetRole: entity.RolePropertyManager,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// maintenance opera sobre todo el tenant: no exige edificio.
	inv, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{
		TargetRole: entity.RoleMaintenance,
	})
	require.NoError(t, err)
	assert.Empty(t, inv.BuildingID)
}

func TestRedeem_PropertyManagerHeredaEdificio(t *testing.T) {
	h := newHarness(t)
	h.addProfile("hc1", entity.RoleHousingCompany, "t1")
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", true)

	inv, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{
		TargetRole: entity.RolePropertyManager,
		BuildingID: "B",
	})
	require.NoError(t, err)

	out, err := h.uc.Redeem(context.Background(), redeemReq(inv.Code))
	require.NoError(t, err)
	assert.Equal(t, entity.RolePropertyManager, out.Role)

	p, _ := h.profiles.GetByID(out.AccountID)
	require.NotNil(t, p)
	assert.Equal(t, "B", p.BuildingID)
}

func TestGenerateServiceInvite_SoloRolesPrivilegiados(t *testing.T) {
	h := newHarness(t)
	h.addProfile("res1", entity.RoleResident, "t1")
	h.profiles.byID["res1"].BuildingID = "A"

	_, err := h.uc.GenerateServiceInvite("res1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_Idempotente(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)
	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	s1, err := h.uc.Validate(inv.Code)
	require.NoError(t, err)
	s2, err := h.uc.Validate(inv.Code)
	require.NoError(t, err)

	assert.Equal(t, s1, s2, "dos validaciones devuelven datos idénticos")
	assert.Equal(t, "Taloyhtiö Koivu", s1.TenantName)
	assert.Equal(t, "Koivukatu 3", s1.TenantAddress)
	assert.Equal(t, "90100", s1.TenantPostal)

	stored, _ := h.invites.GetByID(inv.ID)
	assert.False(t, stored.IsUsed, "validar no muta el código")
}

func TestValidate_NormalizaMayusculas(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)
	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	_, err = h.uc.Validate("  " + lower(inv.Code) + " ")
	assert.NoError(t, err)
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func TestValidate_Errores(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)

	_, err := h.uc.Validate("AB1") // demasiado corto
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.uc.Validate("NOEXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)
	h.now = h.now.Add(7*24*time.Hour + time.Minute)
	_, err = h.uc.Validate(inv.Code)
	assert.ErrorIs(t, err, domain.ErrInviteExpired)
	// Un código expirado es un caso de acceso denegado, no una categoría aparte.
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestValidate_TenantYaRegistrado(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)
	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	// El tenant queda registrado por fuera (otro canje).
	tn, _ := h.tenants.GetByID("t1")
	tn.IsRegistered = true
	require.NoError(t, h.tenants.Update(tn))

	_, err = h.uc.Validate(inv.Code)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Canje
// ──────────────────────────────────────────────────────────────────────────────

func redeemReq(code string) dto.RedeemInviteRequest {
	return dto.RedeemInviteRequest{
		Code: code, Email: "matti@example.fi", Password: "salasana123",
		FirstName: "Matti", LastName: "Meikäläinen",
	}
}

func TestRedeem_FundacionalFinDeExtremo(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)
	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	summary, err := h.uc.Validate(inv.Code)
	require.NoError(t, err)
	assert.Equal(t, "Koivukatu 3", summary.TenantAddress)

	out, err := h.uc.Redeem(context.Background(), redeemReq(inv.Code))
	require.NoError(t, err)
	assert.Equal(t, "t1", out.TenantID)
	assert.Equal(t, entity.RoleHousingCompany, out.Role)

	// Perfil creado con el rol y tenant correctos.
	p, _ := h.profiles.GetByID(out.AccountID)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleHousingCompany, p.Role)
	assert.Equal(t, "t1", p.TenantID)
	assert.Equal(t, "matti@example.fi", p.Email)

	// Tenant registrado exactamente una vez, con dueño y sin código espejo.
	tn, _ := h.tenants.GetByID("t1")
	assert.True(t, tn.IsRegistered)
	assert.Equal(t, out.AccountID, tn.UserID)
	assert.Equal(t, "Matti Meikäläinen", tn.ContactPerson)
	assert.Empty(t, tn.InviteCode)
}

func TestRedeem_MarcaUsadoUnaVez_SegundoCanjeNotFound(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)
	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	_, err = h.uc.Redeem(context.Background(), redeemReq(inv.Code))
	require.NoError(t, err)

	stored, _ := h.invites.GetByID(inv.ID)
	assert.True(t, stored.IsUsed)
	assert.NotNil(t, stored.UsedAt)

	// El código usado ya no aparece en la búsqueda de no usados.
	req := redeemReq(inv.Code)
	req.Email = "otro@example.fi"
	_, err = h.uc.Redeem(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedeem_PerdedorConcurrenteRecibeConflictYSeCompensa(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)
	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	// Simular que otro canje gana la carrera entre validación y escritura.
	h.invites.markUsedFails = true

	_, err = h.uc.Redeem(context.Background(), redeemReq(inv.Code))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// La cuenta y el perfil del perdedor se compensaron (solo queda el admin).
	assert.Empty(t, h.identity.emails, "la cuenta del perdedor debe eliminarse")
	assert.Len(t, h.profiles.byID, 1, "solo debe sobrevivir el perfil del admin")
	assert.Contains(t, h.profiles.byID, "admin1")
}

func TestRedeem_EmailDuplicadoNoConsumeElCodigo(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", false)
	inv, err := h.uc.GenerateTenantInvite("admin1", "t1")
	require.NoError(t, err)

	// Cuenta preexistente con el mismo email.
	_, err = h.identity.CreateAccount(context.Background(), "matti@example.fi", "x", "x")
	require.NoError(t, err)

	_, err = h.uc.Redeem(context.Background(), redeemReq(inv.Code))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	stored, _ := h.invites.GetByID(inv.ID)
	assert.False(t, stored.IsUsed, "un alta fallida no consume el código")
}

func TestRedeem_ResidenteHeredaEdificioYApartamento(t *testing.T) {
	h := newHarness(t)
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", true)
	h.addProfile("hc1", entity.RoleHousingCompany, "t1")

	inv, err := h.uc.GenerateResidentInvite("hc1", dto.GenerateInviteRequest{
		BuildingID: "B", ApartmentNumber: "34",
	})
	require.NoError(t, err)

	out, err := h.uc.Redeem(context.Background(), redeemReq(inv.Code))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleResident, out.Role)

	p, _ := h.profiles.GetByID(out.AccountID)
	require.NotNil(t, p)
	assert.Equal(t, "B", p.BuildingID)
	assert.Equal(t, "34", p.ApartmentNumber)
}

func TestRedeem_ManagementRespetaTargetRole(t *testing.T) {
	h := newHarness(t)
	h.addProfile("hc1", entity.RoleHousingCompany, "t1")
	h.addAdmin("admin1")
	h.addTenant("t1", "admin1", true)

	inv, err := h.uc.GenerateManagementInvite("hc1", dto.GenerateInviteRequest{
		TargetRole: entity.RoleMaintenance,
	})
	require.NoError(t, err)

	out, err := h.uc.Redeem(context.Background(), redeemReq(inv.Code))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMaintenance, out.Role)
}
