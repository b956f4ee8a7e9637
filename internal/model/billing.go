// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Payment is a display-only payment record. The billing backend is not wired
// up yet, so the payments screen renders a fixed sample collection.
type Payment struct {
	ID             int
	UserID         string
	SubscriptionID string
	CourseID       string
	Amount         float64
	Status         string
	TransactionID  string
	Method         string
	CreatedAt      string
}

// Order is a display-only course order record.
type Order struct {
	ID             int
	OrderID        string
	InstructorName string
	StudentName    string
	OrderDate      string
	OrderCost      string
}

// SamplePayments returns the demonstration payment collection.
func SamplePayments() []Payment {
	return []Payment{
		{ID: 1, UserID: "USR001", SubscriptionID: "SUB123", CourseID: "CRS456", Amount: 299.99, Status: "completed", TransactionID: "TXN789", Method: "credit_card", CreatedAt: "2024-02-20T10:30:00"},
		{ID: 2, UserID: "USR002", SubscriptionID: "SUB124", CourseID: "CRS457", Amount: 199.99, Status: "pending", TransactionID: "TXN790", Method: "paypal", CreatedAt: "2024-02-20T11:30:00"},
		{ID: 3, UserID: "USR003", SubscriptionID: "SUB125", CourseID: "CRS458", Amount: 149.99, Status: "completed", TransactionID: "TXN791", Method: "credit_card", CreatedAt: "2024-02-21T09:15:00"},
		{ID: 4, UserID: "USR004", SubscriptionID: "SUB126", CourseID: "CRS459", Amount: 99.99, Status: "failed", TransactionID: "TXN792", Method: "bank_transfer", CreatedAt: "2024-02-22T14:20:00"},
		{ID: 5, UserID: "USR005", SubscriptionID: "SUB127", CourseID: "CRS460", Amount: 349.99, Status: "completed", TransactionID: "TXN793", Method: "paypal", CreatedAt: "2024-02-23T16:45:00"},
	}
}

// SampleOrders returns the demonstration order collection.
func SampleOrders() []Order {
	return []Order{
		{ID: 1, OrderID: "65d97e1e546cb760930b8c6c", InstructorName: "Jackie", StudentName: "Testing16", OrderDate: "Feb 24, 2024", OrderCost: "450 AUD"},
		{ID: 2, OrderID: "65b642741be44b4b5072a4d2", InstructorName: "John Moffit", StudentName: "Jackie", OrderDate: "Jan 28, 2024", OrderCost: "617.5 USD"},
		{ID: 3, OrderID: "655b3a9c8e85330aa958c052", InstructorName: "Jackie", StudentName: "John Moffit", OrderDate: "Nov 20, 2023", OrderCost: "237.5 USD"},
		{ID: 4, OrderID: "655734aa7f42d84163179882", InstructorName: "Jackie", StudentName: "John Moffit", OrderDate: "Nov 17, 2023", OrderCost: "427.5 AUD"},
		{ID: 5, OrderID: "65321e94bc64036c6b778071", InstructorName: "John Moffit", StudentName: "Appysa", OrderDate: "Oct 20, 2023", OrderCost: "237.5 USD"},
		{ID: 6, OrderID: "65259d2d42102302e4475b2", InstructorName: "Appysa", StudentName: "John Moffit", OrderDate: "Oct 11, 2023", OrderCost: "332.5 USD"},
		{ID: 7, OrderID: "6421be9b5fbbed04fe6f3362", InstructorName: "John Moffit", StudentName: "Jackie", OrderDate: "Mar 27, 2023", OrderCost: "285 USD"},
	}
}
