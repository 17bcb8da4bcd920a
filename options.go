package folio

import "github.com/tsawler/folio/format"

// loadOptions holds configuration for document loading.
type loadOptions struct {
	// Source interpretation
	title  string        // overrides the source-derived title when non-empty
	format format.Format // explicit format; Unknown means detect from the file

	// Post-processing
	probeImages bool // fill missing image dimensions from local files
	ocrAlt      bool // fill empty image alt text by recognizing image text
}

// defaultOptions returns the default loading options.
func defaultOptions() loadOptions {
	return loadOptions{
		format: format.Unknown,
	}
}

// clone creates a copy of loadOptions. All fields are plain values, so
// a shallow copy suffices.
func (o loadOptions) clone() loadOptions {
	return o
}
