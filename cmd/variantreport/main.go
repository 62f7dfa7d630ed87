package main

import (
	variantreport "github.com/dillon-shearer/VariantReportApp"
)

func main() {
	variantreport.Main()
}
