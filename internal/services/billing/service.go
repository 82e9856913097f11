package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/pkg/validate"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/platform"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/services/catalog"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrUserNotFound        = errors.New("user not found")
	ErrPackageNotFound     = errors.New("package not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type PlatformClient interface {
	GetUser(ctx context.Context, userID string) (model.User, error)
	AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error)
	InsertTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, error)
	ListAllTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error)
}

type CatalogService interface {
	Get(ctx context.Context, packageID string) (model.Package, error)
}

type MetricsRecorder interface {
	RecordPurchase(outcome string)
}

// Service runs the purchase sequence against the platform: load user, load
// package, check balance, debit, append the ledger row. The check and the
// debit are two independent round trips with nothing between them; concurrent
// purchases against one account can both pass the check.
type Service struct {
	platform PlatformClient
	catalog  CatalogService
	metrics  MetricsRecorder
	logger   *zap.Logger
	now      func() time.Time
}

type Dependencies struct {
	Platform PlatformClient
	Catalog  CatalogService
	Metrics  MetricsRecorder
	Logger   *zap.Logger
}

type PurchaseInput struct {
	PackageID       string
	SmartCardNumber string
	CustomerName    string
	Reference       string
}

type PurchaseResult struct {
	Transaction model.Transaction
	Balance     int64
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		platform: deps.Platform,
		catalog:  deps.Catalog,
		metrics:  deps.Metrics,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Purchase(ctx context.Context, userID string, in PurchaseInput) (PurchaseResult, error) {
	if strings.TrimSpace(userID) == "" {
		return PurchaseResult{}, ErrValidation
	}
	if s.platform == nil || s.catalog == nil {
		return PurchaseResult{}, fmt.Errorf("billing dependencies are not configured")
	}

	packageID := strings.TrimSpace(in.PackageID)
	smartCard := strings.TrimSpace(in.SmartCardNumber)
	if !validate.Required(packageID) || !validate.SmartCardNumber(smartCard) {
		s.recordOutcome("validation_error")
		return PurchaseResult{}, ErrValidation
	}

	// The reference is idempotency-intended but never enforced as unique; a
	// blank one still gets a value so the ledger row is traceable.
	reference := strings.TrimSpace(in.Reference)
	if reference == "" {
		reference = uuid.NewString()
	}

	user, err := s.platform.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			s.recordOutcome("user_not_found")
			return PurchaseResult{}, ErrUserNotFound
		}
		return PurchaseResult{}, fmt.Errorf("load user: %w", err)
	}

	pkg, err := s.catalog.Get(ctx, packageID)
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) || errors.Is(err, ErrPackageNotFound) {
			s.recordOutcome("package_not_found")
			return PurchaseResult{}, ErrPackageNotFound
		}
		return PurchaseResult{}, fmt.Errorf("load package: %w", err)
	}

	details := map[string]any{
		"package_id":        pkg.ID,
		"package_name":      pkg.Name,
		"provider":          pkg.Provider,
		"duration_days":     pkg.DurationDays,
		"smart_card_number": smartCard,
	}
	if name := strings.TrimSpace(in.CustomerName); name != "" {
		details["customer_name"] = name
	}

	// Balance check, read without locking.
	if user.Balance < pkg.Amount {
		s.recordFailedAttempt(ctx, user.ID, pkg.Amount, reference, details, "insufficient balance")
		s.recordOutcome("insufficient_balance")
		return PurchaseResult{}, ErrInsufficientBalance
	}

	newBalance, err := s.platform.AdjustBalance(ctx, user.ID, -pkg.Amount)
	if err != nil {
		s.recordFailedAttempt(ctx, user.ID, pkg.Amount, reference, details, "debit failed")
		s.recordOutcome("debit_error")
		return PurchaseResult{}, fmt.Errorf("debit balance: %w", err)
	}

	row, err := s.platform.InsertTransaction(ctx, model.Transaction{
		UserID:    user.ID,
		Type:      enums.TransactionTypeCableTV,
		Amount:    pkg.Amount,
		Status:    enums.TransactionStatusSuccess,
		Reference: reference,
		Details:   details,
	})
	if err != nil {
		// The debit already happened; the ledger is now behind the balance.
		// Logged, not reconciled.
		s.logger.Error("ledger write failed after debit",
			zap.String("user_id", user.ID),
			zap.String("reference", reference),
			zap.Int64("amount", pkg.Amount),
			zap.Error(err),
		)
		s.recordOutcome("ledger_error")
		return PurchaseResult{}, fmt.Errorf("record transaction: %w", err)
	}

	s.recordOutcome("success")
	return PurchaseResult{Transaction: row, Balance: newBalance}, nil
}

func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	rows, err := s.platform.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return rows, nil
}

func (s *Service) All(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	rows, err := s.platform.ListAllTransactions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	return rows, nil
}

// recordFailedAttempt appends a failed ledger row. Best effort: the purchase
// outcome does not change if this write is lost.
func (s *Service) recordFailedAttempt(ctx context.Context, userID string, amount int64, reference string, details map[string]any, reason string) {
	failedDetails := make(map[string]any, len(details)+1)
	for key, value := range details {
		failedDetails[key] = value
	}
	failedDetails["failure_reason"] = reason

	if _, err := s.platform.InsertTransaction(ctx, model.Transaction{
		UserID:    userID,
		Type:      enums.TransactionTypeCableTV,
		Amount:    amount,
		Status:    enums.TransactionStatusFailed,
		Reference: reference,
		Details:   failedDetails,
	}); err != nil {
		s.logger.Warn("record failed purchase attempt",
			zap.String("user_id", userID),
			zap.String("reference", reference),
			zap.Error(err),
		)
	}
}

func (s *Service) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordPurchase(outcome)
	}
}
