package logging

// Standard field names so log lines from different stages can be filtered together.
const (
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldStage      = "stage"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldValue      = "value"
	FieldCount      = "count"
	FieldRemoved    = "removed"
	FieldDelimiter  = "delimiter"
	FieldEncoding   = "encoding"
	FieldFormat     = "format"
	FieldTable      = "table"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOutliers   = "outliers"
)
