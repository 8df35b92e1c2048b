// Package main provides the stitch CLI for configuring product personalization
// and applying it to a storefront cart.
package main

func main() {
	Execute()
}
