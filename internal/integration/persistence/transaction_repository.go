package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/manjeet0505/Expense/internal/application/adapter"
	"github.com/manjeet0505/Expense/internal/domain/entity"
	domainerror "github.com/manjeet0505/Expense/internal/domain/error"
	"github.com/manjeet0505/Expense/internal/integration/persistence/model"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a gorm-backed transaction repository.
// Deleted transactions are soft-deleted and invisible to every query.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(txn)).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var row model.TransactionModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

func (r *transactionRepository) FindByFilter(
	ctx context.Context,
	filter adapter.TransactionFilter,
	page adapter.TransactionPagination,
) (*adapter.TransactionListResult, error) {
	base := filtered(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	txns, err := r.find(base.Order(newestFirst).Offset((page.Page - 1) * page.Limit).Limit(page.Limit))
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return &adapter.TransactionListResult{
		Transactions: txns,
		Total:        total,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   max(pages, 1),
	}, nil
}

// FindByUserAndDateRange returns the user's transactions dated in [from, to], oldest first.
func (r *transactionRepository) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.Transaction, error) {
	return r.find(r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, created_at ASC"))
}

func (r *transactionRepository) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order(newestFirst).Limit(limit))
}

// GetTotals sums income and expense separately over the filtered rows.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	var sums []struct {
		Type  string
		Total decimal.Decimal
	}
	err := filtered(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	totals := &adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, s := range sums {
		switch entity.TransactionType(s.Type) {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = s.Total
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = s.Total
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (r *transactionRepository) Update(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(model.TransactionFromEntity(txn)).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if res.Error == nil && res.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return res.Error
}

func (r *transactionRepository) find(query *gorm.DB) ([]*entity.Transaction, error) {
	var rows []model.TransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	txns := make([]*entity.Transaction, len(rows))
	for i := range rows {
		txns[i] = rows[i].ToEntity()
	}
	return txns, nil
}

const newestFirst = "date DESC, created_at DESC"

// likeEscaper makes search terms match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// filtered narrows db to the rows selected by f.
func filtered(db *gorm.DB, f adapter.TransactionFilter) *gorm.DB {
	db = db.Where("user_id = ?", f.UserID)
	if f.StartDate != nil {
		db = db.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		db = db.Where("date <= ?", *f.EndDate)
	}
	if f.Category != nil {
		db = db.Where("category = ?", string(*f.Category))
	}
	if f.Type != nil {
		db = db.Where("type = ?", string(*f.Type))
	}
	if f.Search != "" {
		db = db.Where(`LOWER(description) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(f.Search))+"%")
	}
	return db
}
