package domain

// Product is an opaque catalog document. The server pages and counts
// products without interpreting any field.
type Product map[string]interface{}
