// Package property holds the typed classification of entity properties and
// converts property values into display and form representations.
//
// A Descriptor is built once per declared property, usually by the reader
// package, and never changes afterwards. Values are normalized per call:
//
//	d := property.MustNew("company", property.ReferenceOne, property.WithTarget("Company"))
//	d.Normalize(employee.Company, property.Display) // "Acme"
//	d.Normalize(employee.Company, property.Form)    // company id
//
// Referenced entities take part in rendering through two capabilities,
// Displayable and Identifiable, rather than through their concrete types.
package property
