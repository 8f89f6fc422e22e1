// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/application/usecase/auth"
	"github.com/balance-board/backend/internal/application/usecase/category"
	"github.com/balance-board/backend/internal/application/usecase/ledger"
	"github.com/balance-board/backend/internal/application/usecase/stats"
	"github.com/balance-board/backend/internal/application/usecase/transfer"
	"github.com/balance-board/backend/internal/infra/server/router"
	"github.com/balance-board/backend/internal/integration/adapters"
	"github.com/balance-board/backend/internal/integration/entrypoint/controller"
	"github.com/balance-board/backend/internal/integration/entrypoint/middleware"
	"github.com/balance-board/backend/internal/integration/events"
	"github.com/balance-board/backend/internal/integration/persistence"
	"github.com/balance-board/backend/internal/integration/persistence/model"
	"github.com/balance-board/backend/test/integration/mock"
)

const (
	testJWTSecret     = "test-jwt-secret-key-for-testing-purposes"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct-horse"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// Infrastructure
	db           *gorm.DB
	notifier     adapter.ChangeNotifier
	tokenService adapter.TokenService
	categoryRepo adapter.CategoryRepository

	// The server is built lazily on the first request so policy steps can
	// still change the wiring after the background ran.
	server        *httptest.Server
	engine        *gin.Engine
	allowNegative bool

	// HTTP
	response     *http.Response
	responseBody []byte

	// Auth
	accessToken string

	// Seeded categories by title
	categories map[string]uuid.UUID
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		notifier := events.NewRedisNotifier(redisClient)
		db := mock.NewDb(
			&model.CategoryModel{},
			&model.TransactionModel{},
			&model.LedgerTotalsModel{},
		)

		tc := &TestContext{
			db:            db,
			notifier:      notifier,
			tokenService:  adapters.NewTokenService(testJWTSecret, 15*time.Minute),
			categoryRepo:  persistence.NewCategoryRepository(db, notifier),
			allowNegative: true,
			categories:    make(map[string]uuid.UUID),
		}

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerGivenSteps(ctx)
	registerRequestSteps(ctx)
	registerResponseSteps(ctx)
}

// ensureServer wires the full application on first use.
func (tc *TestContext) ensureServer() {
	if tc.server != nil {
		return
	}

	clock := adapters.NewSystemClock()
	ledgerRepo := persistence.NewLedgerRepository(tc.db)
	statsRepo := persistence.NewStatsRepository(tc.db, clock)
	transferStore := persistence.NewTransferStore(tc.db, clock, persistence.DefaultMaxConflictRetries)

	passwordService := adapters.NewPasswordService()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		panic("failed to hash test password: " + err.Error())
	}

	loginUseCase := auth.NewLoginAdminUseCase(
		auth.AdminCredentials{
			Email:        testAdminEmail,
			PasswordHash: string(hash),
		},
		passwordService,
		tc.tokenService,
	)

	listCategoriesUseCase := category.NewListCategoriesUseCase(tc.categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(tc.categoryRepo, tc.notifier)
	watchCategoriesUseCase := category.NewWatchCategoriesUseCase(tc.categoryRepo)
	listHistoryUseCase := ledger.NewListHistoryUseCase(ledgerRepo, tc.categoryRepo)

	transferUseCase := transfer.NewTransferFundsUseCase(transferStore, tc.notifier, transfer.Policy{
		AllowNegativeBalance: tc.allowNegative,
	})

	getStatsUseCase := stats.NewGetStatsUseCase(statsRepo)
	watchStatsUseCase := stats.NewWatchStatsUseCase(statsRepo, tc.notifier)

	healthController := controller.NewHealthController(func() bool { return true }, nil)
	authController := controller.NewAuthController(loginUseCase)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		watchCategoriesUseCase,
		listHistoryUseCase,
	)
	transferController := controller.NewTransferController(transferUseCase)
	statsController := controller.NewStatsController(getStatsUseCase, watchStatsUseCase)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transferController,
		statsController,
		middleware.NewRateLimiter(),
		middleware.NewAuthMiddleware(tc.tokenService),
	)
	tc.engine = r.Setup("test")
	tc.server = httptest.NewServer(tc.engine)
}
