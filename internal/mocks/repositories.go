package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/club-roster-api/internal/models"
)

// MockMemberRepository is a mock implementation of MemberRepository
type MockMemberRepository struct {
	Members map[int]*models.Member

	GetErr       error
	CreateErr    error
	UpdateErr    error
	CreatedCount int
	UpdatedCount int
}

func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{
		Members: make(map[int]*models.Member),
	}
}

func (m *MockMemberRepository) List(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	for _, member := range m.Members {
		members = append(members, member)
	}
	return members, nil
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int) (*models.Member, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Members[id], nil
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, member := range m.Members {
		if member.Email == email {
			return member, nil
		}
	}
	return nil, nil
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if member.ID == 0 {
		member.ID = len(m.Members) + 1
	}
	copied := *member
	m.Members[member.ID] = &copied
	m.CreatedCount++
	return nil
}

func (m *MockMemberRepository) Update(ctx context.Context, member *models.Member) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	copied := *member
	m.Members[member.ID] = &copied
	m.UpdatedCount++
	return nil
}

func (m *MockMemberRepository) Delete(ctx context.Context, id int) error {
	delete(m.Members, id)
	return nil
}

func (m *MockMemberRepository) CountByGroup(ctx context.Context, groupID string) (int, error) {
	count := 0
	for _, member := range m.Members {
		if member.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	Groups map[string]*models.Group

	GetErr      error
	CreateErr   error
	CreateCalls int
}

func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{
		Groups: make(map[string]*models.Group),
	}
}

func (m *MockGroupRepository) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	for _, g := range m.Groups {
		groups = append(groups, g)
	}
	return groups, nil
}

func (m *MockGroupRepository) GetByLetter(ctx context.Context, letter string) (*models.Group, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for id, g := range m.Groups {
		if strings.EqualFold(id, letter) {
			return g, nil
		}
	}
	return nil, nil
}

func (m *MockGroupRepository) Create(ctx context.Context, group *models.Group) error {
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	copied := *group
	m.Groups[group.ID] = &copied
	return nil
}

func (m *MockGroupRepository) Update(ctx context.Context, group *models.Group) error {
	copied := *group
	m.Groups[group.ID] = &copied
	return nil
}

func (m *MockGroupRepository) Delete(ctx context.Context, id string) error {
	delete(m.Groups, id)
	return nil
}

// MockImportRepository is a mock implementation of ImportRepository
type MockImportRepository struct {
	Jobs   map[int64]*models.ImportJob
	Logs   []models.ImportLog
	nextID int64

	CreateErr       error
	UpdateStatusErr error
	AppendLogErr    error
}

func NewMockImportRepository() *MockImportRepository {
	return &MockImportRepository{
		Jobs: make(map[int64]*models.ImportJob),
	}
}

func (m *MockImportRepository) Create(ctx context.Context, job *models.ImportJob) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.nextID++
	job.ID = m.nextID
	copied := *job
	m.Jobs[job.ID] = &copied
	return nil
}

func (m *MockImportRepository) GetByID(ctx context.Context, id int64) (*models.ImportJob, error) {
	return m.Jobs[id], nil
}

func (m *MockImportRepository) ListRecent(ctx context.Context, limit int) ([]*models.ImportJob, error) {
	var jobs []*models.ImportJob
	for id := m.nextID; id > 0 && len(jobs) < limit; id-- {
		if job, ok := m.Jobs[id]; ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (m *MockImportRepository) UpdateStatus(ctx context.Context, id int64, status models.ImportStatus) error {
	if m.UpdateStatusErr != nil {
		return m.UpdateStatusErr
	}
	if job, ok := m.Jobs[id]; ok {
		job.Status = status
	}
	return nil
}

func (m *MockImportRepository) AppendLog(ctx context.Context, id int64, rowNumber int, level models.LogLevel, message string) error {
	if m.AppendLogErr != nil {
		return m.AppendLogErr
	}
	m.Logs = append(m.Logs, models.ImportLog{
		ID:        int64(len(m.Logs) + 1),
		ImportID:  id,
		RowNumber: rowNumber,
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *MockImportRepository) GetLogs(ctx context.Context, id int64) ([]models.ImportLog, error) {
	var logs []models.ImportLog
	for _, l := range m.Logs {
		if l.ImportID == id {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// LogsFor returns the logs recorded for a job, in insertion order.
func (m *MockImportRepository) LogsFor(id int64) []models.ImportLog {
	logs, _ := m.GetLogs(context.Background(), id)
	return logs
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	Settings models.Settings
	GetErr   error
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		Settings: models.Settings{},
	}
}

func (m *MockSettingsRepository) GetAll(ctx context.Context) (models.Settings, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Settings, nil
}

func (m *MockSettingsRepository) SetAll(ctx context.Context, settings models.Settings) error {
	for k, v := range settings {
		m.Settings[k] = v
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.Users[username], nil
}

func (m *MockUserRepository) EnsureUser(ctx context.Context, username, passwordHash string) error {
	if _, ok := m.Users[username]; ok {
		return nil
	}
	m.Users[username] = &models.User{
		ID:           int64(len(m.Users) + 1),
		Username:     username,
		PasswordHash: passwordHash,
	}
	return nil
}
