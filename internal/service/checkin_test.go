package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"AreYouAlive/internal/model"
	pkgerrors "AreYouAlive/pkg/errors"
	"AreYouAlive/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// fakeStore 内存版 RecordStore
type fakeStore struct {
	records map[string]*model.CheckinRecord
	ttls    map[string]time.Duration
	saveErr error
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]*model.CheckinRecord),
		ttls:    make(map[string]time.Duration),
	}
}

func (s *fakeStore) SaveRecord(ctx context.Context, dateKey string, rec *model.CheckinRecord, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[dateKey] = rec
	s.ttls[dateKey] = ttl
	return nil
}

func (s *fakeStore) GetRecord(ctx context.Context, dateKey string) (*model.CheckinRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.records[dateKey], nil
}

// fakeNotifier 记录投递调用
type fakeNotifier struct {
	calls   int
	lastKey string
	lastRec *model.CheckinRecord
	err     error
}

func (n *fakeNotifier) Dispatch(ctx context.Context, dateKey string, rec *model.CheckinRecord) error {
	n.calls++
	n.lastKey = dateKey
	n.lastRec = rec
	return n.err
}

func newTestService(store RecordStore, notifier Notifier, now time.Time) *CheckInService {
	svc := NewCheckInService(store, notifier)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCompleteCheckinThenStatus(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	// UTC+8 本地时间 2025-03-01 14:05:09
	now := time.Date(2025, 3, 1, 6, 5, 9, 0, time.UTC)
	svc := newTestService(store, notifier, now)

	rec, err := svc.CompleteCheckin(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, rec.CheckedIn)
	assert.Equal(t, "2025/03/01 14:05:09", rec.Time)

	// 保留窗口是一天的两倍
	assert.Equal(t, 2*24*time.Hour, store.ttls["2025-03-01"])

	// 通知在落库后被触发且只触发一次
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "2025-03-01", notifier.lastKey)

	status := svc.GetTodayStatus(context.Background())
	assert.True(t, status.CheckedIn)
	assert.Equal(t, rec, status.Data)
	assert.Equal(t, "2025-03-01", status.Today)
	assert.Equal(t, 14, status.CurrentHour)
	assert.Equal(t, 18, status.RemindHour)
	assert.Equal(t, string(AlertSafe), status.AlertLevel)
}

func TestCompleteCheckinOverwritesSameDay(t *testing.T) {
	store := newFakeStore()
	morning := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)
	svc := newTestService(store, &fakeNotifier{}, morning)

	first, err := svc.CompleteCheckin(context.Background(), nil)
	require.NoError(t, err)

	// 同一天再次签到，新时间戳直接覆盖旧记录
	svc.now = func() time.Time { return morning.Add(3 * time.Hour) }
	second, err := svc.CompleteCheckin(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Time, second.Time)
	assert.Equal(t, second, store.records["2025-03-01"])
}

func TestCompleteCheckinStorageFailure(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("redis down")
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier, time.Now())

	rec, err := svc.CompleteCheckin(context.Background(), nil)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, pkgerrors.StorageWriteFailed)

	// 写失败不能触发通知
	assert.Equal(t, 0, notifier.calls)
}

func TestCompleteCheckinNotifierFailureStillSucceeds(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{err: errors.New("delivery endpoint returned 500")}
	svc := newTestService(store, notifier, time.Now())

	rec, err := svc.CompleteCheckin(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, rec)
	assert.Equal(t, 1, notifier.calls)
}

func TestGetTodayStatusAbsent(t *testing.T) {
	store := newFakeStore()
	// UTC+8 本地 10 点，未签到
	now := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	svc := newTestService(store, &fakeNotifier{}, now)

	status := svc.GetTodayStatus(context.Background())
	assert.False(t, status.CheckedIn)
	assert.Nil(t, status.Data)
	assert.Equal(t, string(AlertWaiting), status.AlertLevel)

	// 本地 20 点仍未签到
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	status = svc.GetTodayStatus(context.Background())
	assert.Equal(t, 20, status.CurrentHour)
	assert.Equal(t, string(AlertOverdue), status.AlertLevel)
}

func TestGetTodayStatusDegradesOnReadFailure(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis timeout")
	now := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	svc := newTestService(store, &fakeNotifier{}, now)

	// 读失败降级为未签到，查询本身不报错
	status := svc.GetTodayStatus(context.Background())
	assert.False(t, status.CheckedIn)
	assert.Nil(t, status.Data)
	assert.Equal(t, string(AlertWaiting), status.AlertLevel)
}

func TestGetTodayRecordAbsentIsNotError(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeNotifier{}, time.Now())

	rec, err := svc.GetTodayRecord(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestDayBoundary(t *testing.T) {
	store := newFakeStore()
	// UTC+8 本地 2025-03-01 23:59:59
	beforeMidnight := time.Date(2025, 3, 1, 15, 59, 59, 0, time.UTC)
	svc := newTestService(store, &fakeNotifier{}, beforeMidnight)

	_, err := svc.CompleteCheckin(context.Background(), nil)
	require.NoError(t, err)

	// 两秒后已是本地新的一天，昨天的记录不影响今天的状态
	svc.now = func() time.Time { return beforeMidnight.Add(2 * time.Second) }
	status := svc.GetTodayStatus(context.Background())

	assert.Equal(t, "2025-03-02", status.Today)
	assert.False(t, status.CheckedIn)
	assert.Equal(t, 0, status.CurrentHour)
	assert.Equal(t, string(AlertWaiting), status.AlertLevel)
}

func TestCompleteCheckinLocationRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeNotifier{}, time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC))

	loc := &model.Location{Lat: 31.23, Lng: 121.47}
	_, err := svc.CompleteCheckin(context.Background(), loc)
	require.NoError(t, err)

	status := svc.GetTodayStatus(context.Background())
	require.NotNil(t, status.Data)
	require.NotNil(t, status.Data.Location)
	assert.Equal(t, 31.23, status.Data.Location.Lat)
	assert.Equal(t, 121.47, status.Data.Location.Lng)
	assert.Contains(t, status.Data.Location.MapLink(), "121.47,31.23")
}
