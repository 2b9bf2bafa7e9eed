package service

import (
	"context"
	"time"

	"ecubot/events"
	"ecubot/models"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, userID int64, initialBalance int64) (*models.Account, error) {
	args := m.Called(ctx, userID, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) Top(ctx context.Context, limit int) ([]*models.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockDailyClaimRepository is a mock implementation of DailyClaimRepository
type MockDailyClaimRepository struct {
	mock.Mock
}

func (m *MockDailyClaimRepository) GetByUserID(ctx context.Context, userID int64) (*models.DailyClaim, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyClaim), args.Error(1)
}

func (m *MockDailyClaimRepository) Upsert(ctx context.Context, userID int64, claimedAt time.Time) error {
	args := m.Called(ctx, userID, claimedAt)
	return args.Error(0)
}

// MockVoiceSessionRepository is a mock implementation of VoiceSessionRepository
type MockVoiceSessionRepository struct {
	mock.Mock
}

func (m *MockVoiceSessionRepository) GetByUserID(ctx context.Context, userID int64) (*models.VoiceSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoiceSession), args.Error(1)
}

func (m *MockVoiceSessionRepository) Upsert(ctx context.Context, session *models.VoiceSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockVoiceSessionRepository) GetOpen(ctx context.Context) ([]*models.VoiceSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VoiceSession), args.Error(1)
}

func (m *MockVoiceSessionRepository) GetAll(ctx context.Context) ([]*models.VoiceSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VoiceSession), args.Error(1)
}

// MockRoleRuleRepository is a mock implementation of RoleRuleRepository
type MockRoleRuleRepository struct {
	mock.Mock
}

func (m *MockRoleRuleRepository) Create(ctx context.Context, rule *models.RoleRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRoleRuleRepository) DeleteByRoleID(ctx context.Context, roleID int64) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleRuleRepository) GetAll(ctx context.Context) ([]*models.RoleRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RoleRule), args.Error(1)
}

// RecordingPublisher captures published events for assertions
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(e events.Event) {
	p.Events = append(p.Events, e)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Begin, Commit and
// Rollback are expectation-driven; repository getters hand back whatever
// SetRepositories installed.
type MockUnitOfWork struct {
	mock.Mock

	accountRepo      AccountRepository
	historyRepo      BalanceHistoryRepository
	dailyClaimRepo   DailyClaimRepository
	voiceSessionRepo VoiceSessionRepository
	roleRuleRepo     RoleRuleRepository
	publisher        *RecordingPublisher
}

// SetRepositories installs the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(
	accountRepo AccountRepository,
	historyRepo BalanceHistoryRepository,
	dailyClaimRepo DailyClaimRepository,
	voiceSessionRepo VoiceSessionRepository,
	roleRuleRepo RoleRuleRepository,
) {
	m.accountRepo = accountRepo
	m.historyRepo = historyRepo
	m.dailyClaimRepo = dailyClaimRepo
	m.voiceSessionRepo = voiceSessionRepo
	m.roleRuleRepo = roleRuleRepo
	m.publisher = &RecordingPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) DailyClaimRepository() DailyClaimRepository {
	return m.dailyClaimRepo
}

func (m *MockUnitOfWork) VoiceSessionRepository() VoiceSessionRepository {
	return m.voiceSessionRepo
}

func (m *MockUnitOfWork) RoleRuleRepository() RoleRuleRepository {
	return m.roleRuleRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.publisher == nil {
		m.publisher = &RecordingPublisher{}
	}
	return m.publisher
}

// PublishedEvents returns events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	if m.publisher == nil {
		return nil
	}
	return m.publisher.Events
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
