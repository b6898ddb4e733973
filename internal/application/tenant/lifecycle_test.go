package tenant_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/ports"
	apptenant "github.com/jhoicas/Condominio-api/internal/application/tenant"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (con mutex: el coordinador abanica goroutines)
// ──────────────────────────────────────────────────────────────────────────────

type memTenants struct {
	mu   sync.Mutex
	byID map[string]*entity.Tenant
}

func (m *memTenants) Create(t *entity.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[t.ID] = t
	return nil
}
func (m *memTenants) GetByID(id string) (*entity.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}
func (m *memTenants) ListByAdmin(adminID string, limit, offset int) ([]*entity.Tenant, error) {
	return nil, nil
}
func (m *memTenants) Update(t *entity.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[t.ID] = t
	return nil
}
func (m *memTenants) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memInvites struct {
	mu   sync.Mutex
	byID map[string]*entity.Invite
}

func (m *memInvites) Create(i *entity.Invite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[i.ID] = i
	return nil
}
func (m *memInvites) GetByID(id string) (*entity.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}
func (m *memInvites) GetUnusedByCode(code string) (*entity.Invite, error) { return nil, nil }
func (m *memInvites) ListUnusedByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Invite
	for _, i := range m.byID {
		if i.TenantID == tenantID && i.Kind == kind && !i.IsUsed {
			out = append(out, i)
		}
	}
	return out, nil
}
func (m *memInvites) ListByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Invite
	for _, i := range m.byID {
		if i.TenantID == tenantID && i.Kind == kind {
			out = append(out, i)
		}
	}
	return out, nil
}
func (m *memInvites) ListByTenant(tenantID string) ([]*entity.Invite, error) { return nil, nil }
func (m *memInvites) MarkUsed(id, usedBy string, usedAt time.Time) (bool, error) {
	return false, nil
}
func (m *memInvites) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memProfiles struct {
	mu   sync.Mutex
	byID map[string]*entity.Profile
}

func (m *memProfiles) Create(p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.ID] = p
	return nil
}
func (m *memProfiles) GetByID(id string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}
func (m *memProfiles) Update(p *entity.Profile) error { return nil }
func (m *memProfiles) ListByTenant(tenantID string, limit, offset int) ([]*entity.Profile, error) {
	return nil, nil
}
func (m *memProfiles) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memReports struct {
	mu   sync.Mutex
	byID map[string]*entity.FaultReport
}

func (m *memReports) Create(r *entity.FaultReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[r.ID] = r
	return nil
}
func (m *memReports) GetByID(id string) (*entity.FaultReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}
func (m *memReports) Update(r *entity.FaultReport) error { return nil }
func (m *memReports) ListByTenant(tenantID string, limit, offset int) ([]*entity.FaultReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.FaultReport
	for _, r := range m.byID {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *memReports) ListByCreator(tenantID, creatorID string, limit, offset int) ([]*entity.FaultReport, error) {
	return nil, nil
}
func (m *memReports) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memAnnouncements struct {
	mu   sync.Mutex
	byID map[string]*entity.Announcement
}

func (m *memAnnouncements) Create(a *entity.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[a.ID] = a
	return nil
}
func (m *memAnnouncements) GetByID(id string) (*entity.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}
func (m *memAnnouncements) Update(a *entity.Announcement) error { return nil }
func (m *memAnnouncements) ListByTenant(tenantID string, limit, offset int) ([]*entity.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Announcement
	for _, a := range m.byID {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m *memAnnouncements) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}
func (m *memAnnouncements) AddAttachment(att *entity.Attachment) error        { return nil }
func (m *memAnnouncements) GetAttachment(id string) (*entity.Attachment, error) { return nil, nil }
func (m *memAnnouncements) DeleteAttachment(id string) error                  { return nil }

type memIdentity struct {
	mu       sync.Mutex
	accounts map[string]bool
	deleted  []string
}

func (m *memIdentity) CreateAccount(_ context.Context, email, password, displayName string) (string, error) {
	return "", errors.New("no usado en estos tests")
}
func (m *memIdentity) DeleteAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// cuenta inexistente se tolera
	delete(m.accounts, id)
	m.deleted = append(m.deleted, id)
	return nil
}
func (m *memIdentity) VerifyPassword(_ context.Context, email, password string) (string, error) {
	return "", domain.ErrUnauthenticated
}

// memBlobs blob store en memoria con fallas forzadas por ruta.
type memBlobs struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failPath map[string]bool
}

func (m *memBlobs) PutObject(_ context.Context, path string, data []byte, contentType string, metadata map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = data
	return nil
}
func (m *memBlobs) ListByPrefix(_ context.Context, prefix string) ([]ports.BlobObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.BlobObject
	for path := range m.objects {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			out = append(out, ports.BlobObject{Path: path})
		}
	}
	return out, nil
}
func (m *memBlobs) DeleteObject(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPath[path] {
		return errors.New("fallo forzado de borrado")
	}
	delete(m.objects, path)
	return nil
}
func (m *memBlobs) MakePublic(_ context.Context, path string) (string, error) {
	return "http://test/" + path, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type world struct {
	lc       *apptenant.Lifecycle
	tenants  *memTenants
	invites  *memInvites
	profiles *memProfiles
	reports  *memReports
	anns     *memAnnouncements
	identity *memIdentity
	blobs    *memBlobs
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		tenants:  &memTenants{byID: map[string]*entity.Tenant{}},
		invites:  &memInvites{byID: map[string]*entity.Invite{}},
		profiles: &memProfiles{byID: map[string]*entity.Profile{}},
		reports:  &memReports{byID: map[string]*entity.FaultReport{}},
		anns:     &memAnnouncements{byID: map[string]*entity.Announcement{}},
		identity: &memIdentity{accounts: map[string]bool{}},
		blobs:    &memBlobs{objects: map[string][]byte{}, failPath: map[string]bool{}},
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	g := guard.New(w.profiles)
	w.lc = apptenant.NewLifecycle(
		w.tenants, w.invites, w.profiles, w.reports, w.anns,
		w.identity, w.blobs, g, log,
	)
	return w
}

func (w *world) seedAdmin(id string) {
	w.profiles.byID[id] = &entity.Profile{ID: id, Role: entity.RoleAdmin}
}

func (w *world) seedTenant(id, adminID string) *entity.Tenant {
	tn := &entity.Tenant{ID: id, Name: "Taloyhtiö", CreatedByAdminID: adminID, IsActive: true}
	w.tenants.byID[id] = tn
	return tn
}

func (w *world) seedUsedResidentInvite(id, tenantID, userID string) {
	now := time.Now()
	w.invites.byID[id] = &entity.Invite{
		ID: id, Kind: entity.InviteKindResident, Code: "AAAA111" + id, TenantID: tenantID,
		IsUsed: true, UsedByUserID: userID, UsedAt: &now, ExpiresAt: now,
	}
	w.profiles.byID[userID] = &entity.Profile{ID: userID, Role: entity.RoleResident, TenantID: tenantID}
	w.identity.accounts[userID] = true
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Escenario central del desmontaje: invitaciones usadas, partes con blobs
// (dos con borrado forzado a fallar) e invitación de administración activa.
func TestDelete_CascadaBestEffort(t *testing.T) {
	w := newWorld(t)
	w.seedAdmin("admin1")
	w.seedTenant("t1", "admin1")

	w.seedUsedResidentInvite("i1", "t1", "res-1")
	w.seedUsedResidentInvite("i2", "t1", "res-2")

	// 3 partes; la primera con 2 blobs cuyo borrado falla y 1 que sí se borra.
	for _, id := range []string{"r1", "r2", "r3"} {
		w.reports.byID[id] = &entity.FaultReport{ID: id, TenantID: "t1", Status: entity.StatusOpen}
	}
	rep := w.reports.byID["r1"]
	bad1 := rep.AttachmentPrefix() + "img1.jpg"
	bad2 := rep.AttachmentPrefix() + "img2.jpg"
	ok1 := rep.AttachmentPrefix() + "img3.jpg"
	for _, p := range []string{bad1, bad2, ok1} {
		w.blobs.objects[p] = []byte("x")
	}
	w.blobs.failPath[bad1] = true
	w.blobs.failPath[bad2] = true

	// Invitación de administración activa (sin usar).
	w.invites.byID["m1"] = &entity.Invite{
		ID: "m1", Kind: entity.InviteKindManagement, TenantID: "t1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	err := w.lc.Delete(context.Background(), "admin1", "t1")
	require.NoError(t, err, "las fallas parciales nunca abortan el desmontaje")

	// Tenant y documentos dependientes desaparecidos.
	tn, _ := w.tenants.GetByID("t1")
	assert.Nil(t, tn)
	assert.Empty(t, w.reports.byID, "las 3 partes deben desaparecer")
	assert.Empty(t, w.invites.byID, "todas las invitaciones deben desaparecer")

	// Cuentas y perfiles de invitaciones usadas eliminados.
	assert.Contains(t, w.identity.deleted, "res-1")
	assert.Contains(t, w.identity.deleted, "res-2")
	assert.Nil(t, w.profiles.byID["res-1"])
	assert.Nil(t, w.profiles.byID["res-2"])

	// Los blobs no forzados a fallar se borraron; los forzados quedan.
	assert.NotContains(t, w.blobs.objects, ok1)
	assert.Contains(t, w.blobs.objects, bad1)
	assert.Contains(t, w.blobs.objects, bad2)
}

func TestDelete_IncluyeCuentaPropietaria(t *testing.T) {
	w := newWorld(t)
	w.seedAdmin("admin1")
	tn := w.seedTenant("t1", "admin1")
	tn.IsRegistered = true
	tn.UserID = "owner-1"
	w.profiles.byID["owner-1"] = &entity.Profile{ID: "owner-1", Role: entity.RoleHousingCompany, TenantID: "t1"}

	require.NoError(t, w.lc.Delete(context.Background(), "admin1", "t1"))

	assert.Contains(t, w.identity.deleted, "owner-1")
	assert.Nil(t, w.profiles.byID["owner-1"])
}

func TestDelete_SoloElAdminCreador(t *testing.T) {
	w := newWorld(t)
	w.seedAdmin("admin1")
	w.seedAdmin("admin2")
	w.seedTenant("t1", "admin1")

	err := w.lc.Delete(context.Background(), "admin2", "t1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	tn, _ := w.tenants.GetByID("t1")
	assert.NotNil(t, tn, "el tenant no debe tocarse")
}

func TestDelete_RolesNoAdminRechazados(t *testing.T) {
	w := newWorld(t)
	w.profiles.byID["hc1"] = &entity.Profile{ID: "hc1", Role: entity.RoleHousingCompany, TenantID: "t1"}
	w.seedTenant("t1", "admin1")

	err := w.lc.Delete(context.Background(), "hc1", "t1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_TenantInexistente(t *testing.T) {
	w := newWorld(t)
	w.seedAdmin("admin1")
	err := w.lc.Delete(context.Background(), "admin1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Reinvocar una cascada parcial es seguro: cada paso re-consulta el estado.
func TestDelete_ReinvocacionIdempotente(t *testing.T) {
	w := newWorld(t)
	w.seedAdmin("admin1")
	w.seedTenant("t1", "admin1")
	w.seedUsedResidentInvite("i1", "t1", "res-1")

	require.NoError(t, w.lc.Delete(context.Background(), "admin1", "t1"))

	// Segunda invocación: el tenant ya no existe.
	err := w.lc.Delete(context.Background(), "admin1", "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
