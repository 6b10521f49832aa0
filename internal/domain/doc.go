// Package domain models hourly air-quality observations from the Beijing
// multi-site PRSA data set and the pure computations the dashboard runs on
// them.
//
// # Data Source
//
// Each monitoring location ships as one CSV file named
//
//	PRSA_Data_<Location>_20130301-20170228.csv
//
// covering 2013-03-01 00:00 through 2017-02-28 23:00, one row per hour.
// Header names may carry surrounding whitespace and are trimmed on load.
//
// # PRSA Data Conventions
//
// Timestamps:
//
//	Built from the integer columns year, month, day and hour. The files carry
//	no zone information; times are treated as wall-clock values and stored
//	in UTC so that calendar arithmetic never crosses a DST boundary.
//
// Missing values:
//
//	"NA" marks a missing reading. Rows whose PM2.5 value is missing are
//	dropped at load time. Missing covariates (TEMP, PRES, WSPM) are kept as
//	[NullFloat] values and skipped by every aggregation that reads them.
//
// Units:
//
//	PM2.5 in µg/m³, TEMP in °C, PRES in hPa, WSPM in m/s.
//
// # Views and Aggregations
//
// A [Table] is immutable once built. [Filter] returns a [View], a copy of
// the contiguous run of rows inside a [DateRange] (end date inclusive of its
// whole day), with weekday and weekend flags derived per row. The
// aggregations ([Correlate], [MonthlyTrend], [CompareWeekend], [Describe])
// are pure functions of a View: the same selection always produces
// bit-identical results.
//
// Weekday indexing follows Monday = 0 .. Sunday = 6; Saturday and Sunday
// form the weekend.
package domain
