package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/model"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/repository"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/calendar"
	pkgerrors "github.com/suplidoraindustrial6s-lab/caritas-app/pkg/errors"
)

// mockStore map-backed repositories sharing one dataset
type mockStore struct {
	groups        *mockGroupRepo
	beneficiaries *mockBeneficiaryRepo
	attendances   *mockAttendanceRepo
	serviceDays   *mockServiceDayRepo
	holidays      *mockHolidayRepo
}

func newMockStore() *mockStore {
	groups := newMockGroupRepo()
	beneficiaries := newMockBeneficiaryRepo(groups)
	return &mockStore{
		groups:        groups,
		beneficiaries: beneficiaries,
		attendances:   newMockAttendanceRepo(beneficiaries),
		serviceDays:   newMockServiceDayRepo(groups),
		holidays:      newMockHolidayRepo(),
	}
}

// repository aggregate without a database, BeginTx yields a nil tx
func (m *mockStore) repository() *repository.Repository {
	return &repository.Repository{
		Group:       m.groups,
		Beneficiary: m.beneficiaries,
		Attendance:  m.attendances,
		ServiceDay:  m.serviceDays,
		Holiday:     m.holidays,
	}
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups map[string]*model.Group
	seq    int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.Group)}
}

func (m *mockGroupRepo) add(name string) *model.Group {
	g := &model.Group{Name: name}
	_ = m.Create(context.Background(), g)
	return g
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	for _, g := range m.groups {
		if g.Name == group.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if group.GroupID == "" {
		m.seq++
		group.GroupID = fmt.Sprintf("grp-%d", m.seq)
	}
	cp := *group
	m.groups[group.GroupID] = &cp
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) GetByName(_ context.Context, name string) (*model.Group, error) {
	for _, g := range m.groups {
		if g.Name == name {
			cp := *g
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context) ([]model.Group, error) {
	result := make([]model.Group, 0, len(m.groups))
	for _, g := range m.groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockGroupRepo) ListWithCounts(ctx context.Context) ([]model.GroupWithCount, error) {
	groups, _ := m.List(ctx)
	result := make([]model.GroupWithCount, 0, len(groups))
	for _, g := range groups {
		result = append(result, model.GroupWithCount{Group: g})
	}
	return result, nil
}

func (m *mockGroupRepo) UpsertByName(ctx context.Context, group *model.Group) (*model.Group, error) {
	if g, err := m.GetByName(ctx, group.Name); err == nil {
		return g, nil
	}
	if err := m.Create(ctx, group); err != nil {
		return nil, err
	}
	return m.GetByName(ctx, group.Name)
}

// ── Mock BeneficiaryRepository ──

type mockBeneficiaryRepo struct {
	rows   map[string]*model.Beneficiary
	groups *mockGroupRepo
	seq    int
}

func newMockBeneficiaryRepo(groups *mockGroupRepo) *mockBeneficiaryRepo {
	return &mockBeneficiaryRepo{rows: make(map[string]*model.Beneficiary), groups: groups}
}

// add active beneficiary in group (empty = unassigned)
func (m *mockBeneficiaryRepo) add(name, nationalID, groupID, status string) *model.Beneficiary {
	b := &model.Beneficiary{FullName: name, NationalID: nationalID, Status: status, Gender: "U"}
	if groupID != "" {
		id := groupID
		b.GroupID = &id
	}
	_ = m.Create(context.Background(), b)
	return b
}

func (m *mockBeneficiaryRepo) withGroup(b *model.Beneficiary) *model.Beneficiary {
	cp := *b
	cp.Group = nil
	if cp.GroupID != nil {
		if g, ok := m.groups.groups[*cp.GroupID]; ok {
			gc := *g
			cp.Group = &gc
		}
	}
	return &cp
}

func (m *mockBeneficiaryRepo) Create(_ context.Context, b *model.Beneficiary) error {
	for _, row := range m.rows {
		if row.NationalID == b.NationalID {
			return gorm.ErrDuplicatedKey
		}
	}
	if b.BeneficiaryID == "" {
		m.seq++
		b.BeneficiaryID = fmt.Sprintf("ben-%d", m.seq)
	}
	if b.Status == "" {
		b.Status = model.StatusActive
	}
	if b.Version == 0 {
		b.Version = 1
	}
	cp := *b
	m.rows[b.BeneficiaryID] = &cp
	return nil
}

func (m *mockBeneficiaryRepo) GetByID(_ context.Context, id string) (*model.Beneficiary, error) {
	if b, ok := m.rows[id]; ok {
		return m.withGroup(b), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBeneficiaryRepo) GetByNationalID(_ context.Context, nationalID string) (*model.Beneficiary, error) {
	for _, b := range m.rows {
		if b.NationalID == nationalID {
			return m.withGroup(b), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBeneficiaryRepo) List(_ context.Context, filter repository.BeneficiaryFilter) ([]model.Beneficiary, int64, error) {
	var result []model.Beneficiary
	for _, b := range m.rows {
		switch {
		case filter.GroupID != "" && (b.GroupID == nil || *b.GroupID != filter.GroupID):
			continue
		case filter.Unassigned && b.GroupID != nil:
			continue
		case filter.Status != "" && b.Status != filter.Status:
			continue
		case filter.Search != "" &&
			!strings.Contains(strings.ToLower(b.FullName), strings.ToLower(filter.Search)) &&
			!strings.Contains(b.NationalID, filter.Search):
			continue
		}
		result = append(result, *m.withGroup(b))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })

	total := int64(len(result))
	if filter.Offset >= len(result) {
		return []model.Beneficiary{}, total, nil
	}
	result = result[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, total, nil
}

func (m *mockBeneficiaryRepo) ListActiveByGroup(_ context.Context, groupID string) ([]model.Beneficiary, error) {
	var result []model.Beneficiary
	for _, b := range m.rows {
		if b.GroupID != nil && *b.GroupID == groupID && b.Status == model.StatusActive {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

func (m *mockBeneficiaryRepo) Update(_ context.Context, b *model.Beneficiary) error {
	cur, ok := m.rows[b.BeneficiaryID]
	if !ok || cur.Version != b.Version {
		return pkgerrors.ErrOptimisticLock
	}
	for _, row := range m.rows {
		if row.BeneficiaryID != b.BeneficiaryID && row.NationalID == b.NationalID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *b
	cp.Group = nil
	cp.Children = cur.Children
	cp.Version = cur.Version + 1
	m.rows[b.BeneficiaryID] = &cp
	b.Version = cp.Version
	return nil
}

func (m *mockBeneficiaryRepo) UpdateGroup(_ context.Context, id string, groupID *string) error {
	b, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.GroupID = groupID
	b.Version++
	return nil
}

func (m *mockBeneficiaryRepo) UpdateStatus(_ context.Context, id, status string) error {
	b, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	b.Version++
	return nil
}

func (m *mockBeneficiaryRepo) ReplaceChildren(_ context.Context, id string, children []model.Child) error {
	b, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Children = append([]model.Child(nil), children...)
	return nil
}

func (m *mockBeneficiaryRepo) UpsertByNationalID(ctx context.Context, b *model.Beneficiary) error {
	for _, row := range m.rows {
		if row.NationalID != b.NationalID {
			continue
		}
		row.FullName = b.FullName
		if b.GroupID != nil {
			row.GroupID = b.GroupID
		}
		if b.Zone != "" {
			row.Zone = b.Zone
		}
		if b.Address != "" {
			row.Address = b.Address
		}
		row.Version++
		b.BeneficiaryID = row.BeneficiaryID
		return nil
	}
	return m.Create(ctx, b)
}

func (m *mockBeneficiaryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *mockBeneficiaryRepo) CountByZone(_ context.Context) ([]model.ZoneCount, error) {
	counts := make(map[string]int64)
	for _, b := range m.rows {
		zone := strings.TrimSpace(b.Zone)
		if zone == "" {
			zone = model.ZoneUnknown
		}
		counts[zone]++
	}
	result := make([]model.ZoneCount, 0, len(counts))
	for zone, n := range counts {
		result = append(result, model.ZoneCount{Zone: zone, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Zone < result[j].Zone })
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	rows          []model.Attendance
	beneficiaries *mockBeneficiaryRepo
	seq           int
	batchCalls    int
}

func newMockAttendanceRepo(beneficiaries *mockBeneficiaryRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{beneficiaries: beneficiaries}
}

func (m *mockAttendanceRepo) exists(beneficiaryID string, date time.Time) bool {
	for _, a := range m.rows {
		if a.BeneficiaryID == beneficiaryID && calendar.EpochDay(a.Date) == calendar.EpochDay(date) {
			return true
		}
	}
	return false
}

func (m *mockAttendanceRepo) insert(a *model.Attendance) {
	m.seq++
	a.AttendanceID = fmt.Sprintf("att-%d", m.seq)
	a.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	cp := *a
	cp.Beneficiary = nil
	m.rows = append(m.rows, cp)
}

func (m *mockAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	if m.exists(a.BeneficiaryID, a.Date) {
		return gorm.ErrDuplicatedKey
	}
	m.insert(a)
	return nil
}

func (m *mockAttendanceRepo) BatchCreate(_ context.Context, rows []model.Attendance) (int64, error) {
	m.batchCalls++
	var inserted int64
	for i := range rows {
		if m.exists(rows[i].BeneficiaryID, rows[i].Date) {
			continue
		}
		m.insert(&rows[i])
		inserted++
	}
	return inserted, nil
}

func (m *mockAttendanceRepo) withBeneficiary(a model.Attendance) model.Attendance {
	if b, ok := m.beneficiaries.rows[a.BeneficiaryID]; ok {
		a.Beneficiary = m.beneficiaries.withGroup(b)
	}
	return a
}

func (m *mockAttendanceRepo) ListByGroupAndDateRange(_ context.Context, groupID string, start, end time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.rows {
		b, ok := m.beneficiaries.rows[a.BeneficiaryID]
		if !ok || b.GroupID == nil || *b.GroupID != groupID {
			continue
		}
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		result = append(result, m.withBeneficiary(a))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Beneficiary.FullName < result[j].Beneficiary.FullName
	})
	return result, nil
}

func (m *mockAttendanceRepo) ListRecentByBeneficiary(_ context.Context, beneficiaryID string, limit int) ([]model.Attendance, error) {
	var result []model.Attendance
	for i := len(m.rows) - 1; i >= 0 && len(result) < limit; i-- {
		if m.rows[i].BeneficiaryID == beneficiaryID {
			result = append(result, m.rows[i])
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListRecent(_ context.Context, limit int) ([]model.Attendance, error) {
	var result []model.Attendance
	for i := len(m.rows) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.withBeneficiary(m.rows[i]))
	}
	return result, nil
}

func (m *mockAttendanceRepo) Totals(_ context.Context) (*model.AttendanceTotals, error) {
	t := &model.AttendanceTotals{}
	for _, a := range m.rows {
		if a.ReceivedFood {
			t.FoodCount++
		}
		if a.ReceivedMedical {
			t.MedicalCount++
		}
		t.ClothesItems += int64(a.ClothesQuantity)
	}
	return t, nil
}

func (m *mockAttendanceRepo) TotalsByGroup(_ context.Context) ([]model.GroupAttendanceTotals, error) {
	byGroup := make(map[string]*model.GroupAttendanceTotals)
	for _, g := range m.beneficiaries.groups.groups {
		byGroup[g.GroupID] = &model.GroupAttendanceTotals{GroupID: g.GroupID, Name: g.Name}
	}
	for _, a := range m.rows {
		b, ok := m.beneficiaries.rows[a.BeneficiaryID]
		if !ok || b.GroupID == nil {
			continue
		}
		t := byGroup[*b.GroupID]
		if t == nil {
			continue
		}
		if a.ReceivedFood {
			t.FoodCount++
		}
		if a.ReceivedMedical {
			t.MedicalCount++
		}
		t.ClothesItems += int64(a.ClothesQuantity)
	}
	result := make([]model.GroupAttendanceTotals, 0, len(byGroup))
	for _, t := range byGroup {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ServiceDayRepository ──

type mockServiceDayRepo struct {
	days   map[int64]*model.ServiceDay
	groups *mockGroupRepo
}

func newMockServiceDayRepo(groups *mockGroupRepo) *mockServiceDayRepo {
	return &mockServiceDayRepo{days: make(map[int64]*model.ServiceDay), groups: groups}
}

func (m *mockServiceDayRepo) withGroup(d *model.ServiceDay) model.ServiceDay {
	cp := *d
	cp.Group = nil
	if cp.GroupID != nil {
		if g, ok := m.groups.groups[*cp.GroupID]; ok {
			gc := *g
			cp.Group = &gc
		}
	}
	return cp
}

func (m *mockServiceDayRepo) FindByDate(_ context.Context, date time.Time) (*model.ServiceDay, error) {
	if d, ok := m.days[calendar.EpochDay(date)]; ok {
		cp := m.withGroup(d)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockServiceDayRepo) Upsert(_ context.Context, day *model.ServiceDay) error {
	cp := *day
	cp.Date = calendar.DayKey(day.Date)
	cp.Group = nil
	m.days[calendar.EpochDay(day.Date)] = &cp
	return nil
}

func (m *mockServiceDayRepo) UpsertBatch(ctx context.Context, days []model.ServiceDay, overwrite bool) (int64, error) {
	var written int64
	for i := range days {
		if _, ok := m.days[calendar.EpochDay(days[i].Date)]; ok && !overwrite {
			continue
		}
		_ = m.Upsert(ctx, &days[i])
		written++
	}
	return written, nil
}

func (m *mockServiceDayRepo) ListInRange(_ context.Context, start, end time.Time) ([]model.ServiceDay, error) {
	var result []model.ServiceDay
	for _, d := range m.days {
		if d.Date.Before(calendar.DayKey(start)) || d.Date.After(calendar.DayKey(end)) {
			continue
		}
		result = append(result, m.withGroup(d))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	rows map[string]*model.Holiday
	seq  int
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{rows: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) find(date time.Time) *model.Holiday {
	for _, h := range m.rows {
		if calendar.EpochDay(h.Date) == calendar.EpochDay(date) {
			return h
		}
	}
	return nil
}

func (m *mockHolidayRepo) Create(_ context.Context, h *model.Holiday) error {
	if m.find(h.Date) != nil {
		return gorm.ErrDuplicatedKey
	}
	m.seq++
	h.HolidayID = fmt.Sprintf("hol-%d", m.seq)
	cp := *h
	m.rows[h.HolidayID] = &cp
	return nil
}

func (m *mockHolidayRepo) Upsert(ctx context.Context, h *model.Holiday) error {
	if cur := m.find(h.Date); cur != nil {
		cur.Name = h.Name
		cur.Source = h.Source
		h.HolidayID = cur.HolidayID
		return nil
	}
	return m.Create(ctx, h)
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.rows[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *mockHolidayRepo) ListInRange(_ context.Context, start, end time.Time) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.rows {
		if h.Date.Before(start) || h.Date.After(end) {
			continue
		}
		result = append(result, *h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ── Mock Locker ──

type mockLocker struct {
	held     map[string]string
	acquired int
	released int
}

func newMockLocker() *mockLocker {
	return &mockLocker{held: make(map[string]string)}
}

func (m *mockLocker) AcquireLock(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := m.held[key]; ok {
		return "", pkgerrors.ErrLockNotAcquired
	}
	m.acquired++
	token := fmt.Sprintf("tok-%d", m.acquired)
	m.held[key] = token
	return token, nil
}

func (m *mockLocker) ReleaseLock(_ context.Context, key, token string) error {
	if m.held[key] == token {
		delete(m.held, key)
		m.released++
	}
	return nil
}
