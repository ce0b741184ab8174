package models

// Raw column names. Header matching is exact and order-insensitive.
const (
	ColDate            = "date"
	ColRegion          = "region"
	ColProductCategory = "product_category"
	ColSalesAmount     = "sales_amount"
	ColUnitsSold       = "units_sold"
	ColCustomerID      = "customer_id"
	ColSalesRep        = "sales_rep"
)

// Derived column names appended to the cleaned output.
const (
	ColUnitPrice = "unit_price"
	ColYear      = "year"
	ColMonth     = "month"
	ColMonthNum  = "month_num"
	ColQuarter   = "quarter"
	ColWeek      = "week"
)

// RawColumns are required in every input file.
var RawColumns = []string{
	ColDate,
	ColRegion,
	ColProductCategory,
	ColSalesAmount,
	ColUnitsSold,
	ColCustomerID,
	ColSalesRep,
}

// CriticalColumns must be present and parseable for a row to survive cleaning.
var CriticalColumns = []string{
	ColDate,
	ColSalesAmount,
	ColUnitsSold,
	ColRegion,
	ColProductCategory,
}

// CleanedColumns is the column order of the cleaned file.
var CleanedColumns = append(append([]string{}, RawColumns...),
	ColUnitPrice, ColYear, ColMonth, ColMonthNum, ColQuarter, ColWeek)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
