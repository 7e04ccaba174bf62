// Package testfixtures provides sample data, mocks and helpers for TUI tests.
package testfixtures

import (
	"github.com/mark3labs/dispatch/internal/draft"
)

// Customers is a small customer directory.
func Customers() []draft.Option {
	return []draft.Option{
		{Value: "Acme Builders", Label: "Acme Builders"},
		{Value: "Northside Homes", Label: "Northside Homes"},
	}
}

// Operators is a small operator roster keyed by profile id.
func Operators() []draft.Option {
	return []draft.Option{
		{Value: "dana", Label: "Dana Levi"},
		{Value: "omer", Label: "Omer Katz"},
	}
}

// ServiceCall returns a service call with every required field set.
func ServiceCall() *draft.ServiceCall {
	call := draft.NewServiceCall()
	call.ServiceType = "concrete-pumping"
	call.Customer = "Acme Builders"
	call.ProjectSite = "North Yard"
	call.Date = "2026-03-02"
	call.StartTime = "07:30"
	call.PumpType = "boom-36"
	call.Quantity = "42"
	call.VehicleNumber = "12-345-67"
	call.Operator = "dana"
	return call
}

// Certificate returns a certificate converted from ServiceCall with the
// on-site fields filled in.
func Certificate() *draft.Certificate {
	cert := draft.FromServiceCall("call-1", ServiceCall())
	cert.EndTime = "11:00"
	cert.ConcreteType = "b30"
	cert.ElementType = "slab"
	return cert
}
