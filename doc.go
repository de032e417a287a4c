// Package entityreader classifies the properties of persistent entity types
// and normalizes their values for display and editing.
//
// Entity types are described by annotations (see package schema and its
// field and edge subpackages). A reader.Reader turns the annotations of each
// declared property into a property.Descriptor of one of four kinds:
// identifier, column, single-valued reference or collection reference.
// Descriptors normalize raw values into either a human-readable display
// form or an edit-friendly form.
//
//	src, _ := structtag.New(structtag.WithEntity(Employee{}))
//	descs, err := reader.Extract(src, "Employee")
//	if err != nil {
//	    return err
//	}
//	values, _ := src.Values(emp)
//	row := property.NormalizeAll(descs, values, property.Display)
//
// This package holds the error types shared by the subpackages.
package entityreader

// Version is the module version reported by the command line tool.
const Version = "0.1.0"
