package notificationrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"portal/internal/adapters/out/postgres/notificationrepo"
	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/notification"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NotificationRepositoryIntegrationTestSuite provides integration tests for
// NotificationRepository, covering the unread counter bookkeeping in
// particular.
type NotificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *notificationrepo.GormNotificationRepository
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&notificationrepo.NotificationDTO{},
		&notificationrepo.CounterDTO{},
	))
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE notifications, notification_counters").Error)

	suite.repository = notificationrepo.NewGormNotificationRepository(suite.db)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) createNotification(
	userID kernel.UUID, createdAt time.Time,
) *notification.Notification {
	n, err := notification.NewNotification(
		kernel.NewUUID(),
		userID,
		notification.DateChangeRequest,
		kernel.NewUUID(),
		"New delivery date suggested for order ORD-2026-0001",
		createdAt,
	)
	suite.Require().NoError(err)
	return n
}

func (suite *NotificationRepositoryIntegrationTestSuite) unreadCount(userID kernel.UUID) int64 {
	var counter notificationrepo.CounterDTO
	err := suite.db.First(&counter, "user_id = ?", userID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0
	}
	suite.Require().NoError(err)
	return counter.UnreadCount
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAdd_BumpsUnreadCounter() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.createNotification(userID, time.Now())))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createNotification(userID, time.Now())))

	suite.Equal(int64(2), suite.unreadCount(userID))

	var count int64
	suite.Require().NoError(suite.db.Model(&notificationrepo.NotificationDTO{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkRead_FlipsRowsAndDecrementsCounter() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	first := suite.createNotification(userID, time.Now())
	second := suite.createNotification(userID, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	err := suite.repository.MarkRead(ctx, userID, []kernel.UUID{first.ID()})
	suite.Require().NoError(err)

	suite.Equal(int64(1), suite.unreadCount(userID))

	var dto notificationrepo.NotificationDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", first.ID().Bytes()).Error)
	suite.True(dto.IsRead)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkRead_AlreadyReadDoesNotDecrementTwice() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	n := suite.createNotification(userID, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, n))

	suite.Require().NoError(suite.repository.MarkRead(ctx, userID, []kernel.UUID{n.ID()}))
	suite.Require().NoError(suite.repository.MarkRead(ctx, userID, []kernel.UUID{n.ID()}))

	suite.Equal(int64(0), suite.unreadCount(userID))
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkRead_OtherUsersRowsAreSkipped() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	intruder := kernel.NewUUID()

	n := suite.createNotification(owner, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, n))

	suite.Require().NoError(suite.repository.MarkRead(ctx, intruder, []kernel.UUID{n.ID()}))

	suite.Equal(int64(1), suite.unreadCount(owner))

	var dto notificationrepo.NotificationDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", n.ID().Bytes()).Error)
	suite.False(dto.IsRead)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestPurgeRead_DeletesOnlyOldReadRows() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	oldRead := suite.createNotification(userID, time.Now().Add(-40*24*time.Hour))
	oldUnread := suite.createNotification(userID, time.Now().Add(-40*24*time.Hour))
	recentRead := suite.createNotification(userID, time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, oldRead))
	suite.Require().NoError(suite.repository.Add(ctx, oldUnread))
	suite.Require().NoError(suite.repository.Add(ctx, recentRead))

	suite.Require().NoError(suite.repository.MarkRead(ctx, userID,
		[]kernel.UUID{oldRead.ID(), recentRead.ID()}))

	purged, err := suite.repository.PurgeRead(ctx, time.Now().Add(-30*24*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)

	var remaining int64
	suite.Require().NoError(suite.db.Model(&notificationrepo.NotificationDTO{}).Count(&remaining).Error)
	suite.Equal(int64(2), remaining)

	// Unread count reflects the one row never marked read.
	suite.Equal(int64(1), suite.unreadCount(userID))
}

func TestNotificationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepositoryIntegrationTestSuite))
}
