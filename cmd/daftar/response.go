package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/ledger"
	"github.com/MrJamesThe3rd/daftar/internal/lineitem"
	"github.com/MrJamesThe3rd/daftar/internal/reconcile"
	"github.com/MrJamesThe3rd/daftar/internal/stats"
)

type entryResponse struct {
	ID         uuid.UUID       `json:"id"`
	DebtorName string          `json:"debtor_name"`
	Amount     decimal.Decimal `json:"amount"`
	Paid       decimal.Decimal `json:"paid"`
	Remaining  decimal.Decimal `json:"remaining"`
	Products   string          `json:"products,omitempty"`
	Items      []itemResponse  `json:"items,omitempty"`
	ItemStatus string          `json:"item_status"`
	BranchID   int             `json:"branch_id"`
	IsReturned bool            `json:"is_returned"`
	Date       string          `json:"date,omitempty"`
}

type debtorResponse struct {
	Name        string          `json:"name"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
	Returned    decimal.Decimal `json:"returned"`
	Unreturned  decimal.Decimal `json:"unreturned"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Payments    int             `json:"payments"`
}

type queryResponse struct {
	Entries []entryResponse `json:"entries"`
	Stats   stats.Summary   `json:"stats"`
}

type itemResponse struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Paid      decimal.Decimal `json:"paid"`
}

type itemsResponse struct {
	Status  string          `json:"status"`
	Display string          `json:"display"`
	Total   decimal.Decimal `json:"total"`
	Items   []itemResponse  `json:"items"`
}

func toEntryResponse(e *debt.Entry) entryResponse {
	items := e.Items()

	resp := entryResponse{
		ID:         e.ID,
		DebtorName: e.DebtorName,
		Amount:     e.Amount,
		Paid:       e.Paid(),
		Remaining:  e.Remaining(),
		Products:   lineitem.FormatForDisplay(e.Products),
		Items:      toItemResponseList(items.Items),
		ItemStatus: items.Status.String(),
		BranchID:   e.BranchID,
		IsReturned: e.IsReturned,
	}

	if d, ok := e.Date(); ok {
		resp.Date = d.Format(time.DateOnly)
	}

	return resp
}

func toQueryResponse(res *ledger.QueryResult) queryResponse {
	entries := make([]entryResponse, len(res.Entries))
	for i, e := range res.Entries {
		entries[i] = toEntryResponse(e)
	}

	return queryResponse{Entries: entries, Stats: res.Stats}
}

func toDebtorResponseList(summaries []*reconcile.Summary) []debtorResponse {
	resp := make([]debtorResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = debtorResponse{
			Name:        s.Name,
			Count:       s.Count,
			Total:       s.Total,
			Returned:    s.Returned,
			Unreturned:  s.Unreturned,
			Paid:        s.Paid,
			Outstanding: s.Outstanding,
			Payments:    len(s.Payments),
		}
	}

	return resp
}

func toItemResponseList(items []lineitem.LineItem) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = itemResponse{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Paid:      it.Paid,
		}
	}

	return resp
}

func toItemsResponse(src lineitem.Source) itemsResponse {
	res := lineitem.Decode(src)

	return itemsResponse{
		Status:  res.Status.String(),
		Display: lineitem.FormatForDisplay(src),
		Total:   lineitem.Total(res.Items),
		Items:   toItemResponseList(res.Items),
	}
}
