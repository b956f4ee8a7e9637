// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/learnsphere/admin-console/internal/listing"
	"github.com/learnsphere/admin-console/internal/model"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/uikit"
)

// BillingHandler renders the payments and orders screens. Both are
// display-only over static sample collections until the billing backend
// ships; they still run through the shared list controller so search and
// pagination behave like every other screen.
type BillingHandler struct {
	renderer *render.Renderer
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(renderer *render.Renderer) *BillingHandler {
	return &BillingHandler{renderer: renderer}
}

// PaymentsListData holds data for the payments list template.
type PaymentsListData struct {
	Payments   []model.Payment
	Search     string
	TotalCount int
	Pagination uikit.Pagination
}

// Payments handles GET /payments - searchable on user, subscription,
// transaction and course identifiers.
func (h *BillingHandler) Payments(w http.ResponseWriter, r *http.Request) {
	ctl := listing.NewController(model.SamplePayments(), PaymentsPerPage, func(p model.Payment) []string {
		return []string{p.UserID, p.SubscriptionID, p.TransactionID, p.CourseID}
	})
	ctl.SetSearchTerm(uikit.ParseSearchParam(r))
	ctl.SetPage(uikit.ParsePageParam(r))

	data := PaymentsListData{
		Payments:   ctl.PageItems(),
		Search:     ctl.SearchTerm(),
		TotalCount: ctl.FilteredCount(),
		Pagination: uikit.BuildPagination(ctl.CurrentPage(), ctl.FilteredCount(), PaymentsPerPage, RoutePayments, r.URL.Query()),
	}

	if err := h.renderer.Render(w, r, "admin/payments_list", pageData(r, "Payments", "payments", data)); err != nil {
		logAndInternalError(w, "failed to render payments list", "error", err)
	}
}

// OrdersListData holds data for the orders list template.
type OrdersListData struct {
	Orders     []model.Order
	Search     string
	TotalCount int
	Pagination uikit.Pagination
}

// Orders handles GET /orders - searchable on instructor, student and order
// id.
func (h *BillingHandler) Orders(w http.ResponseWriter, r *http.Request) {
	ctl := listing.NewController(model.SampleOrders(), OrdersPerPage, func(o model.Order) []string {
		return []string{o.InstructorName, o.StudentName, o.OrderID}
	})
	ctl.SetSearchTerm(uikit.ParseSearchParam(r))
	ctl.SetPage(uikit.ParsePageParam(r))

	data := OrdersListData{
		Orders:     ctl.PageItems(),
		Search:     ctl.SearchTerm(),
		TotalCount: ctl.FilteredCount(),
		Pagination: uikit.BuildPagination(ctl.CurrentPage(), ctl.FilteredCount(), OrdersPerPage, RouteOrders, r.URL.Query()),
	}

	if err := h.renderer.Render(w, r, "admin/orders_list", pageData(r, "Course Orders", "orders", data)); err != nil {
		logAndInternalError(w, "failed to render orders list", "error", err)
	}
}
