package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/report"
)

// CompanyAll selects every company in the statistics view
const CompanyAll = "all"

// ViewQuery selects the statistics view. Company is "all" or a company ID;
// an empty Date means today in the business time zone.
type ViewQuery struct {
	Company string `form:"company"`
	Date    string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// StatisticsView is the product table of one company, or of all
// companies, for a date
type StatisticsView struct {
	Date        string        `json:"date"`
	CompanyID   *uuid.UUID    `json:"company_id,omitempty"`
	CompanyName string        `json:"company_name"`
	Lines       []report.Line `json:"lines"`
}

// DailyStatusQuery selects the daily status board date
type DailyStatusQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// MonthlyQuery selects the monthly comparison year. CompanyID narrows the
// figures to one company.
type MonthlyQuery struct {
	Year      int        `form:"year" binding:"omitempty,min=2000,max=9999"`
	CompanyID *uuid.UUID `form:"-"`
}

// YearlyQuery selects three consecutive years ending at EndYear
type YearlyQuery struct {
	StartYear int `form:"start_year" binding:"omitempty,min=2000,max=9999"`
	EndYear   int `form:"end_year" binding:"omitempty,min=2000,max=9999"`
}

// PeriodInput is one inclusive date range
type PeriodInput struct {
	From string `json:"from" binding:"required,datetime=2006-01-02"`
	To   string `json:"to" binding:"required,datetime=2006-01-02"`
}

// PeriodRequest compares date ranges for one product, or for every product
// when ProductID is nil
type PeriodRequest struct {
	ProductID *uuid.UUID    `json:"product_id"`
	Periods   []PeriodInput `json:"periods" binding:"required,min=1,dive"`
}

// ProductQuery selects a product comparison; a nil ProductID sums every product
type ProductQuery struct {
	ProductID *uuid.UUID `form:"-"`
	Year      int        `form:"year" binding:"omitempty,min=2000,max=9999"`
}

// ExportFile is a rendered spreadsheet ready for download
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	GeneratedAt time.Time
}

// ContentTypeXLSX is the media type of generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
