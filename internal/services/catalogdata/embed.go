package catalogdata

import _ "embed"

// FoodsCSV seeds the catalog with per-100g compositions on first start.
//
//go:embed foods.csv
var FoodsCSV []byte
