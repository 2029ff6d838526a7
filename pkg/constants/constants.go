// Package constants provides shared constants for the subscription-calculator
// application.
package constants

// BaseCurrency is the currency all internal storage and calculation uses.
// Conversion to the display currency happens exactly once, at the output
// boundary.
const BaseCurrency = "RUB"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerMonth is the average number of weeks in a month used to scale
	// weekly usage to monthly usage
	WeeksPerMonth = 4.33

	// LifetimeMonths amortizes a lifetime purchase over a conventional 10 years
	LifetimeMonths = 120

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Recommendation policy thresholds. The rule order in the metrics engine
// matters as much as the numbers; both are fixed policy.
const (
	// CancelImportanceMax flags low importance for the cancel rule
	CancelImportanceMax = 3

	// CancelMonthlyCost is the monthly cost above which a low-importance
	// subscription becomes a cancel candidate
	CancelMonthlyCost = 500.0

	// ReviewUsageHours is the hours-per-month floor below which usage counts
	// as low
	ReviewUsageHours = 5.0

	// ReviewUsageMonthlyCost is the monthly cost above which low usage
	// triggers a review
	ReviewUsageMonthlyCost = 300.0

	// ReviewCostPerHour is the cost-per-hour ceiling beyond which any
	// subscription is reviewed
	ReviewCostPerHour = 200.0

	// ReviewImportanceMax flags moderate-low importance for the last review rule
	ReviewImportanceMax = 4

	// ReviewImportanceCostPerHour pairs with ReviewImportanceMax
	ReviewImportanceCostPerHour = 100.0
)

// Aggregate statistics constants
const (
	// TopValueCount is the size of the top-value list in overall statistics
	TopValueCount = 5

	// LowUsageHours is the hours-per-month floor for the low-usage list
	LowUsageHours = 5.0

	// LowUsageMonthlyCost is the monthly cost floor for the low-usage list
	LowUsageMonthlyCost = 200.0
)

// DateLayout is the format used for subscription start and payment dates.
const DateLayout = "2006-01-02"

// DueSoonDays is the window within which an upcoming payment counts as due soon.
const DueSoonDays = 7

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX is the Excel workbook output format
	OutputFormatXLSX = "xlsx"
)

// Configuration and storage file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultDataFile is the default subscription data file name
	DefaultDataFile = "subscriptions.json"

	// StoreVersion is the version stamp written into data and export documents
	StoreVersion = 1
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for import
	// documents (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
