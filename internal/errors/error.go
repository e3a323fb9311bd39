// Package errors provides the errors returned by the shop service and its stores.
package errors

import "errors"

var ErrCustomerNotFound = errors.New("customer not found")
var ErrProductNotFound = errors.New("product not found")
var ErrItemNotFound = errors.New("item not found")
var ErrEmployeeNotFound = errors.New("employee not found")

var ErrSaleNotFound = errors.New("sale not found")
var ErrSaveSale = errors.New("failed to save sale")
var ErrSaveSaleItem = errors.New("failed to save sale item")
var ErrFailedToFindSale = errors.New("failed to find sale")
var ErrFailedToFindSaleItems = errors.New("failed to find sale items")
var ErrFailedToFindCustomerSales = errors.New("failed to find customer sales")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")

var ErrInvalidFilter = errors.New("invalid filter")
var ErrTransactionFailed = errors.New("failed to record sale")
