package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

const (
	tableUsers        = "users"
	tablePackages     = "packages"
	tableTransactions = "transactions"
)

func (c *Client) GetUser(ctx context.Context, userID string) (model.User, error) {
	var rows []model.User
	if err := c.selectRows(ctx, "users.get", tableUsers, eqFilter("id", userID), &rows); err != nil {
		return model.User{}, err
	}
	if len(rows) == 0 {
		return model.User{}, ErrNotFound
	}
	return rows[0], nil
}

func (c *Client) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	var rows []model.User
	if err := c.selectRows(ctx, "users.list", tableUsers, pageQuery(limit, offset, "created_at.desc"), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) GetPackage(ctx context.Context, packageID string) (model.Package, error) {
	var rows []model.Package
	if err := c.selectRows(ctx, "packages.get", tablePackages, eqFilter("id", packageID), &rows); err != nil {
		return model.Package{}, err
	}
	if len(rows) == 0 {
		return model.Package{}, ErrNotFound
	}
	return rows[0], nil
}

func (c *Client) ListPackages(ctx context.Context) ([]model.Package, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "provider.asc,amount.asc")

	var rows []model.Package
	if err := c.selectRows(ctx, "packages.list", tablePackages, query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

type transactionInsert struct {
	UserID    string                  `json:"user_id"`
	Type      enums.TransactionType   `json:"type"`
	Amount    int64                   `json:"amount"`
	Status    enums.TransactionStatus `json:"status"`
	Reference string                  `json:"reference"`
	Details   map[string]any          `json:"details,omitempty"`
}

// InsertTransaction appends one ledger row. The platform assigns id and
// created_at; the returned row carries them.
func (c *Client) InsertTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	headers := c.serviceHeaders()
	headers["Prefer"] = "return=representation"

	payload := transactionInsert{
		UserID:    tx.UserID,
		Type:      tx.Type,
		Amount:    tx.Amount,
		Status:    tx.Status,
		Reference: tx.Reference,
		Details:   tx.Details,
	}

	var rows []model.Transaction
	err := c.do(ctx, "transactions.insert", http.MethodPost, "/rest/v1/"+tableTransactions, nil, headers, payload, &rows)
	if err != nil {
		return model.Transaction{}, err
	}
	if len(rows) == 0 {
		return model.Transaction{}, fmt.Errorf("platform returned no transaction row")
	}
	return rows[0], nil
}

func (c *Client) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, error) {
	query := pageQuery(limit, offset, "created_at.desc")
	query.Set("user_id", "eq."+userID)

	var rows []model.Transaction
	if err := c.selectRows(ctx, "transactions.list", tableTransactions, query, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) ListAllTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	var rows []model.Transaction
	if err := c.selectRows(ctx, "transactions.list_all", tableTransactions, pageQuery(limit, offset, "created_at.desc"), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) selectRows(ctx context.Context, operation, table string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("select") == "" {
		query.Set("select", "*")
	}
	return c.do(ctx, operation, http.MethodGet, "/rest/v1/"+table, query, c.serviceHeaders(), nil, out)
}

func eqFilter(column, value string) url.Values {
	query := url.Values{}
	query.Set(column, "eq."+value)
	query.Set("limit", "1")
	return query
}

func pageQuery(limit, offset int, order string) url.Values {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	if order != "" {
		query.Set("order", order)
	}
	return query
}
